package gate

import "parley/internal/domain"

// AllowAll passes every payload through unchanged. Deployments with a
// real content firewall implement domain.Gate themselves; the handshake
// core trusts whatever the configured gate admits.
type AllowAll struct{}

// Screen implements domain.Gate.
func (AllowAll) Screen(string, map[string]any, map[string]any) error { return nil }

// Compile-time assertion that AllowAll implements domain.Gate.
var _ domain.Gate = AllowAll{}
