package mtcore

import "sync"

// Semaphore is a bounded counting semaphore whose capacity can be adjusted
// at runtime. It mirrors h2o's h2o_sem_t: current tracks the number of
// available slots (capacity - outstanding Wait calls + completed Post
// calls), and may transiently go negative after a capacity reduction, which
// correctly stalls new Wait calls until enough Post calls restore balance.
type Semaphore struct {
	mu       sync.Mutex
	cond     *sync.Cond
	current  int
	capacity int
}

// NewSemaphore creates a semaphore with the given initial capacity.
func NewSemaphore(capacity int) *Semaphore {
	s := &Semaphore{
		current:  capacity,
		capacity: capacity,
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Wait blocks until current > 0, then decrements it.
func (s *Semaphore) Wait() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.current <= 0 {
		s.cond.Wait()
	}
	s.current--
}

// Post increments current and wakes one waiter.
func (s *Semaphore) Post() {
	s.mu.Lock()
	s.current++
	s.mu.Unlock()
	s.cond.Signal()
}

// SetCapacity adjusts current by new-old capacity and wakes every waiter,
// since a capacity increase may let more than one waiter proceed.
func (s *Semaphore) SetCapacity(new int) {
	s.mu.Lock()
	s.current += new - s.capacity
	s.capacity = new
	s.mu.Unlock()
	s.cond.Broadcast()
}

// Capacity returns the current configured capacity.
func (s *Semaphore) Capacity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.capacity
}

// Close releases the semaphore's resources. It panics if there are
// outstanding acquisitions (current != capacity), matching h2o's
// h2o_sem_destroy assertion.
func (s *Semaphore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != s.capacity {
		panic("mtcore: Semaphore.Close called with outstanding acquisitions")
	}
}
