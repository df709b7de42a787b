package impl

import "sync"

// keyedMutex serializes OTP mutation per account so interleaved reset
// requests cannot validate a stale code against a newer expiry.
type keyedMutex struct {
	locks sync.Map // key -> *sync.Mutex
}

func (k *keyedMutex) lock(key string) (unlock func()) {
	v, _ := k.locks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
