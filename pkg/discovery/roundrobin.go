package discovery

import "sync"

// RoundRobin rotates over the instances of one service
type RoundRobin struct {
	mu        sync.Mutex
	instances []string
	next      int
}

// NewRoundRobin copies instances into a new pool
func NewRoundRobin(instances []string) *RoundRobin {
	return &RoundRobin{instances: append([]string{}, instances...)}
}

// Next returns the next instance, or "" when the pool is empty
func (rr *RoundRobin) Next() string {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	if len(rr.instances) == 0 {
		return ""
	}
	instance := rr.instances[rr.next]
	rr.next = (rr.next + 1) % len(rr.instances)
	return instance
}

// Instances returns a copy of the pool
func (rr *RoundRobin) Instances() []string {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	return append([]string{}, rr.instances...)
}
