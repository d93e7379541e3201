package domain

// OverlayConstraints merges the responder's accepted and modified
// constraint maps into the agreed set. Modified wins key-by-key on
// conflict. Neither input is mutated; the result is always a fresh map.
func OverlayConstraints(accepted, modified map[string]any) map[string]any {
	agreed := make(map[string]any, len(accepted)+len(modified))
	for k, v := range accepted {
		agreed[k] = v
	}
	for k, v := range modified {
		agreed[k] = v
	}
	return agreed
}
