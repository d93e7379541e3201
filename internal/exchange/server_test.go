package exchange_test

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/internal/domain"
	"parley/internal/exchange"
)

func newTestServer(t *testing.T) (*httptest.Server, *exchange.Client) {
	t.Helper()
	srv := exchange.NewServer(exchange.NewMailboxes(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts, exchange.NewClient(ts.URL)
}

func sampleEnvelope(to domain.PartyID) domain.Envelope {
	return domain.Envelope{
		Type: domain.TypeOffer,
		From: "alice",
		To:   to,
		Offer: &domain.Offer{
			SessionID:   "s-1",
			RequesterID: "alice",
			Scope:       "read-profile",
			CreatedAt:   time.Now().UTC(),
			TTLSeconds:  30,
			MAC:         "abc123",
		},
		Timestamp: time.Now().Unix(),
	}
}

func TestExchange_PostFetchAck(t *testing.T) {
	_, client := newTestServer(t)

	require.NoError(t, client.Post(sampleEnvelope("bob")))
	require.NoError(t, client.Post(sampleEnvelope("bob")))

	// Fetch does not consume.
	envs, err := client.Fetch("bob", 0)
	require.NoError(t, err)
	require.Len(t, envs, 2)
	assert.Equal(t, domain.TypeOffer, envs[0].Type)
	require.NotNil(t, envs[0].Offer)
	assert.Equal(t, "read-profile", envs[0].Offer.Scope)

	envs, err = client.Fetch("bob", 1)
	require.NoError(t, err)
	assert.Len(t, envs, 1)

	require.NoError(t, client.Ack("bob", 1))
	envs, err = client.Fetch("bob", 0)
	require.NoError(t, err)
	assert.Len(t, envs, 1)

	// Other mailboxes are untouched.
	envs, err = client.Fetch("carol", 0)
	require.NoError(t, err)
	assert.Empty(t, envs)
}

func TestExchange_AckOutOfRangeCounts(t *testing.T) {
	_, client := newTestServer(t)

	require.NoError(t, client.Post(sampleEnvelope("bob")))

	// Counts come off the wire; a hostile or buggy client must not be
	// able to panic the server or drain more than is queued.
	require.NoError(t, client.Ack("bob", -1))
	envs, err := client.Fetch("bob", 0)
	require.NoError(t, err)
	assert.Len(t, envs, 1)

	require.NoError(t, client.Ack("bob", 100))
	envs, err = client.Fetch("bob", 0)
	require.NoError(t, err)
	assert.Empty(t, envs)
}

func TestExchange_RejectsMissingRecipient(t *testing.T) {
	_, client := newTestServer(t)
	err := client.Post(domain.Envelope{Type: domain.TypeOffer, From: "alice"})
	require.Error(t, err)
}

func TestExchange_Watch(t *testing.T) {
	ts, client := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/watch/bob"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, client.Post(sampleEnvelope("bob")))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env domain.Envelope
	require.NoError(t, conn.ReadJSON(&env))
	assert.Equal(t, domain.TypeOffer, env.Type)
	assert.Equal(t, domain.PartyID("bob"), env.To)

	// The push is a notification; the envelope still waits in the
	// mailbox until acked.
	envs, err := client.Fetch("bob", 0)
	require.NoError(t, err)
	assert.Len(t, envs, 1)
}
