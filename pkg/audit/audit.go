// Package audit appends the per-transaction step trail. The trail is
// best-effort observability for the workflow: it is written at the receipt and
// dispatch boundaries of every stage and never read back to make routing
// decisions.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Appender records one processing step of a transaction. Implementations must
// tolerate redelivery: appending the same (transaction, step) key again with
// the same data leaves the trail observably unchanged, never errors.
type Appender interface {
	Append(ctx context.Context, transactionID, step string, data any) error
}

// Record is one immutable entry of the trail.
type Record struct {
	TransactionID string
	Step          string
	CreatedAt     time.Time
	Data          []byte
}

// Memory keeps records in process, keyed like the durable store. Used by tests
// and the local runner.
type Memory struct {
	mu      sync.Mutex
	records map[string]Record
}

func NewMemory() *Memory {
	return &Memory{records: map[string]Record{}}
}

func (m *Memory) Append(ctx context.Context, transactionID, step string, data any) error {
	blob, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal step data: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[transactionID+"/"+step] = Record{
		TransactionID: transactionID,
		Step:          step,
		CreatedAt:     time.Now().UTC(),
		Data:          blob,
	}
	return nil
}

// Get returns the record for a (transaction, step) key, if present.
func (m *Memory) Get(transactionID, step string) (Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[transactionID+"/"+step]
	return record, ok
}

// Records returns a snapshot of every stored record.
func (m *Memory) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	records := make([]Record, 0, len(m.records))
	for _, record := range m.records {
		records = append(records, record)
	}
	return records
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
