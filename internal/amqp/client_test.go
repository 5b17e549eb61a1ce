package amqp

import (
	"testing"
	"time"
)

func TestRowSyncMessageRoundTrip(t *testing.T) {
	msg := NewRowSyncMessage(42)
	if msg.RowID != 42 || msg.Timestamp.IsZero() {
		t.Fatalf("unexpected message: %+v", msg)
	}
	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := RowSyncMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.RowID != 42 || !got.Timestamp.Equal(msg.Timestamp.Truncate(time.Nanosecond)) {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, msg)
	}
}

func TestRowSyncMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := RowSyncMessageFromJSON([]byte("not json")); err == nil {
		t.Fatalf("expected decode error")
	}
}
