package testutil

import "sync"

// ScriptedRandom replays queued values. Float64 and IntN draw from separate
// queues; an exhausted queue yields 0. IntN results are reduced modulo n.
type ScriptedRandom struct {
	mu     sync.Mutex
	floats []float64
	ints   []int
}

// NewScriptedRandom creates a ScriptedRandom with the given Float64 values queued.
func NewScriptedRandom(floats ...float64) *ScriptedRandom {
	return &ScriptedRandom{floats: floats}
}

// QueueFloats appends values returned by Float64.
func (s *ScriptedRandom) QueueFloats(v ...float64) *ScriptedRandom {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.floats = append(s.floats, v...)
	return s
}

// QueueInts appends values returned by IntN.
func (s *ScriptedRandom) QueueInts(v ...int) *ScriptedRandom {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ints = append(s.ints, v...)
	return s
}

func (s *ScriptedRandom) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *ScriptedRandom) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.ints) == 0 || n <= 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}
