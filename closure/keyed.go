package closure

import "sync"

// KeyedCounter counts occurrences per key.
// Keys are never forgotten, so memory grows with the number of distinct keys.
type KeyedCounter[K comparable] struct {
	mu     sync.Mutex
	counts map[K]int
}

func NewKeyedCounter[K comparable]() *KeyedCounter[K] {
	return &KeyedCounter[K]{counts: make(map[K]int)}
}

// Record returns how many times key has been recorded, this call included.
func (kc *KeyedCounter[K]) Record(key K) int {
	kc.mu.Lock()
	defer kc.mu.Unlock()
	kc.counts[key]++
	return kc.counts[key]
}

// MakeKeyedCounter returns the Record operation of a fresh KeyedCounter.
func MakeKeyedCounter[K comparable]() func(K) int {
	return NewKeyedCounter[K]().Record
}
