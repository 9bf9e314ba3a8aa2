package waybill

import (
	"context"
	"sync"

	"courier/internal/core/ports"
	"courier/internal/pkg/errs"
)

// MemoryArchive keeps waybills in process. It backs deployments without
// object storage and the tests.
type MemoryArchive struct {
	mu       sync.RWMutex
	waybills map[int64]ports.Waybill
}

func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{waybills: make(map[int64]ports.Waybill)}
}

func (a *MemoryArchive) Store(_ context.Context, waybill ports.Waybill) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.waybills[waybill.ItemID] = waybill
	return nil
}

func (a *MemoryArchive) Load(_ context.Context, itemID int64) (ports.Waybill, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	w, ok := a.waybills[itemID]
	if !ok {
		return ports.Waybill{}, errs.NewObjectNotFoundError("waybill", itemID)
	}
	return w, nil
}

func (a *MemoryArchive) Remove(_ context.Context, itemID int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.waybills, itemID)
	return nil
}
