package audit_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"parley/internal/audit"
)

func TestMemory_RecordsInOrder(t *testing.T) {
	sink := &audit.Memory{}
	sink.Record(audit.Event{Time: time.Now(), Party: "alice", SessionID: "s-1", Op: "create_offer"})
	sink.Record(audit.Event{Time: time.Now(), Party: "bob", SessionID: "s-1", Op: "process_offer", Code: "TIMEOUT", Err: "handshake: TIMEOUT"})

	events := sink.Events()
	assert.Len(t, events, 2)
	assert.Equal(t, "create_offer", events[0].Op)
	assert.Equal(t, "TIMEOUT", events[1].Code)

	// Events returns a copy, not the live slice.
	events[0].Op = "mutated"
	assert.Equal(t, "create_offer", sink.Events()[0].Op)
}

func TestSlog_RecordsBothOutcomes(t *testing.T) {
	sink := audit.NewSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
	sink.Record(audit.Event{Party: "alice", SessionID: "s-1", Op: "create_offer"})
	sink.Record(audit.Event{Party: "alice", SessionID: "s-1", Op: "process_response", Code: "SIGNATURE_INVALID", Err: "handshake: SIGNATURE_INVALID"})
}

func TestNewSlog_NilLoggerDefaults(t *testing.T) {
	assert.NotNil(t, audit.NewSlog(nil).Logger)
}
