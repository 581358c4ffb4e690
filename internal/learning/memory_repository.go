package learning

import (
	"context"
	"sync"
)

// MemoryReviewLogRepository keeps review logs in process memory.
type MemoryReviewLogRepository struct {
	mu     sync.RWMutex
	logs   []ReviewLog
	nextID int64
}

// NewMemoryReviewLogRepository creates an empty MemoryReviewLogRepository.
func NewMemoryReviewLogRepository() *MemoryReviewLogRepository {
	return &MemoryReviewLogRepository{nextID: 1}
}

func (r *MemoryReviewLogRepository) Create(_ context.Context, log *ReviewLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	log.ID = r.nextID
	r.nextID++
	r.logs = append(r.logs, *log)
	return nil
}

// FindByItem returns logs in insertion order, which is review order for a single process.
func (r *MemoryReviewLogRepository) FindByItem(_ context.Context, itemID string) ([]ReviewLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	logs := []ReviewLog{}
	for _, log := range r.logs {
		if log.ItemID == itemID {
			logs = append(logs, log)
		}
	}
	return logs, nil
}
