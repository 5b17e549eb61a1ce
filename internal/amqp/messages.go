package amqp

import (
	"encoding/json"
	"time"
)

// RowSyncMessage asks the worker to mirror one SQLite ledger row to the
// Google sheet. It carries only the row id; the worker fetches the rest
// from the database.
type RowSyncMessage struct {
	RowID     int64     `json:"row_id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRowSyncMessage(rowID int64) *RowSyncMessage {
	return &RowSyncMessage{RowID: rowID, Timestamp: time.Now()}
}

func (m *RowSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RowSyncMessageFromJSON(data []byte) (*RowSyncMessage, error) {
	var msg RowSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
