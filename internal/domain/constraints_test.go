package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"parley/internal/domain"
)

func TestOverlayConstraints(t *testing.T) {
	tests := []struct {
		name     string
		accepted map[string]any
		modified map[string]any
		want     map[string]any
	}{
		{
			name:     "modified wins on conflict",
			accepted: map[string]any{"max_x": int64(1000)},
			modified: map[string]any{"max_x": int64(500)},
			want:     map[string]any{"max_x": int64(500)},
		},
		{
			name:     "disjoint keys union",
			accepted: map[string]any{"max_x": int64(1000)},
			modified: map[string]any{"rate": 2.5},
			want:     map[string]any{"max_x": int64(1000), "rate": 2.5},
		},
		{
			name:     "nil inputs produce empty map",
			accepted: nil,
			modified: nil,
			want:     map[string]any{},
		},
		{
			name:     "empty modified keeps accepted",
			accepted: map[string]any{"ops": "READ"},
			modified: map[string]any{},
			want:     map[string]any{"ops": "READ"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.OverlayConstraints(tc.accepted, tc.modified))
		})
	}
}

func TestOverlayConstraints_DoesNotMutateInputs(t *testing.T) {
	accepted := map[string]any{"max_x": int64(1000)}
	modified := map[string]any{"max_x": int64(500)}

	agreed := domain.OverlayConstraints(accepted, modified)
	agreed["max_x"] = int64(1)

	assert.EqualValues(t, 1000, accepted["max_x"])
	assert.EqualValues(t, 500, modified["max_x"])
}
