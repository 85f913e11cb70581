package favorites

import (
	"context"
	"sort"
	"sync"
)

// Mirror is the in-memory copy of one user's favorite set held by the view
// layer. The ledger call is awaited first; the local set only changes after
// the store confirms, so there is no optimistic-then-rollback window.
type Mirror struct {
	ledger *Ledger
	userID string

	mu  sync.Mutex
	ids map[string]struct{}
}

func NewMirror(ledger *Ledger, userID string, initial []string) *Mirror {
	ids := make(map[string]struct{}, len(initial))
	for _, id := range initial {
		ids[id] = struct{}{}
	}
	return &Mirror{
		ledger: ledger,
		userID: userID,
		ids:    ids,
	}
}

// Add favorites a station and mirrors it locally once the store call
// succeeds.
func (m *Mirror) Add(ctx context.Context, stationID string) error {
	if err := m.ledger.Add(ctx, m.userID, stationID); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids[stationID] = struct{}{}
	return nil
}

// Remove unfavorites a station and mirrors it locally once the store call
// succeeds.
func (m *Mirror) Remove(ctx context.Context, stationID string) error {
	if err := m.ledger.Remove(ctx, m.userID, stationID); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.ids, stationID)
	return nil
}

func (m *Mirror) Contains(stationID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.ids[stationID]
	return ok
}

// IDs returns the mirrored set in a stable order.
func (m *Mirror) IDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.ids))
	for id := range m.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
