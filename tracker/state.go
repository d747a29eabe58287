package tracker

import (
	"sort"
	"sync"
	"time"

	"github.com/Kariqs/chapaquente-api/models"
)

// Snapshot pairs the position an order was given at checkout with the
// position recomputed from the latest poll.
type Snapshot struct {
	OrderID        string             `json:"orderId"`
	Status         models.OrderStatus `json:"status"`
	StoredPosition int                `json:"queuePosition"`
	LivePosition   int                `json:"livePosition"`
	RefreshedAt    time.Time          `json:"refreshedAt"`
}

// State mirrors the last polled orders. It is safe for concurrent use.
type State struct {
	mu          sync.RWMutex
	orders      map[string]models.Order
	queue       []models.QueueEntry
	refreshedAt time.Time
}

func NewState() *State {
	return &State{orders: map[string]models.Order{}}
}

// Replace swaps in a fresh poll. When queue is nil it is derived from
// orders.
func (s *State) Replace(orders []models.Order, queue []models.QueueEntry) {
	byID := make(map[string]models.Order, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
	}

	if queue == nil {
		queue = make([]models.QueueEntry, 0, len(orders))
		for _, o := range orders {
			queue = append(queue, models.QueueEntry{ID: o.ID, Status: o.Status, CreatedAt: o.CreatedAt})
		}
	}
	active := activeQueue(queue)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = byID
	s.queue = active
	s.refreshedAt = time.Now()
}

func activeQueue(entries []models.QueueEntry) []models.QueueEntry {
	active := make([]models.QueueEntry, 0, len(entries))
	for _, e := range entries {
		if e.Status.IsActive() {
			active = append(active, e)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].CreatedAt.Before(active[j].CreatedAt)
	})
	return active
}

// LivePosition is the number of active orders placed before id. It is 0 when
// id is not in the active queue.
func (s *State) LivePosition(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.livePosition(id)
}

func (s *State) livePosition(id string) int {
	for i, e := range s.queue {
		if e.ID == id {
			return i
		}
	}
	return 0
}

// Snapshot reports a tracked order. ok is false for orders that were not part
// of the last poll.
func (s *State) Snapshot(id string) (snap Snapshot, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return Snapshot{}, false
	}
	return Snapshot{
		OrderID:        order.ID,
		Status:         order.Status,
		StoredPosition: order.QueuePosition,
		LivePosition:   s.livePosition(id),
		RefreshedAt:    s.refreshedAt,
	}, true
}

// ActiveCount is the length of the kitchen queue at the last poll.
func (s *State) ActiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.queue)
}
