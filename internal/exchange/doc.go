// Package exchange is the store-and-forward transport collaborator:
// per-party mailboxes, an HTTP server to post and drain them, a websocket
// watch feed, and the matching client. It moves envelopes and nothing
// more; authenticity, ordering and retries belong to the negotiating
// parties.
package exchange
