package db

import (
	"sync"
	"time"

	"github.com/google/btree"
	"go.uber.org/zap"

	"github.com/distributedio/respd/metrics"
)

// idlePurgeInterval is how long the purge loop sleeps when no key has an expiry
const idlePurgeInterval = time.Minute

type entry struct {
	data     []byte
	expireAt time.Time // zero for keys without expiry
}

type expiration struct {
	at  time.Time
	key string
}

func expirationLess(a, b expiration) bool {
	if a.at.Equal(b.at) {
		return a.key < b.key
	}
	return a.at.Before(b.at)
}

// Store is the in-memory keyspace shared by all clients.
// Keys with an expiry are invisible once expired and are removed by a
// background goroutine which sleeps until the earliest deadline.
type Store struct {
	mu          sync.Mutex
	entries     map[string]*entry
	expirations *btree.BTreeG[expiration]
	closed      bool

	wake chan struct{}
	done chan struct{}
	wg   sync.WaitGroup
}

// Open a store and start its purge goroutine
func Open() *Store {
	s := &Store{
		entries:     make(map[string]*entry),
		expirations: btree.NewG(32, expirationLess),
		wake:        make(chan struct{}, 1),
		done:        make(chan struct{}),
	}
	s.wg.Add(1)
	go s.purgeLoop()
	return s
}

// Get the value of key
func (s *Store) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || e.expired(time.Now()) {
		return nil, ErrKeyNotFound
	}
	return e.data, nil
}

// Set key to hold val, a ttl <= 0 means the key never expires.
// Setting a key replaces its previous expiry.
func (s *Store) Set(key string, val []byte, ttl time.Duration) {
	var expireAt time.Time
	if ttl > 0 {
		expireAt = time.Now().Add(ttl)
	}

	s.mu.Lock()
	notify := false
	if prev, ok := s.entries[key]; ok {
		s.unExpire(key, prev)
	}
	if !expireAt.IsZero() {
		next, ok := s.expirations.Min()
		notify = !ok || expireAt.Before(next.at)
		s.expirations.ReplaceOrInsert(expiration{at: expireAt, key: key})
		metrics.GetMetrics().ExpireKeysTotal.WithLabelValues("added").Inc()
	}
	s.entries[key] = &entry{data: val, expireAt: expireAt}
	s.mu.Unlock()

	if notify {
		s.notify()
	}
}

// Delete keys and return how many existed
func (s *Store) Delete(keys ...string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	n := 0
	for _, key := range keys {
		e, ok := s.entries[key]
		if !ok {
			continue
		}
		if !e.expired(now) {
			n++
		}
		s.unExpire(key, e)
		delete(s.entries, key)
	}
	return n
}

// Exists returns how many of keys exist, a key given twice counts twice
func (s *Store) Exists(keys ...string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	n := 0
	for _, key := range keys {
		if e, ok := s.entries[key]; ok && !e.expired(now) {
			n++
		}
	}
	return n
}

// Len returns the number of keys, including expired keys not purged yet
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close stops the purge goroutine
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.closed = true
	s.mu.Unlock()

	close(s.done)
	s.wg.Wait()
	return nil
}

func (e *entry) expired(now time.Time) bool {
	return !e.expireAt.IsZero() && !now.Before(e.expireAt)
}

// unExpire drops the expiration of e, the caller holds s.mu
func (s *Store) unExpire(key string, e *entry) {
	if e.expireAt.IsZero() {
		return
	}
	s.expirations.Delete(expiration{at: e.expireAt, key: key})
	metrics.GetMetrics().ExpireKeysTotal.WithLabelValues("removed").Inc()
}

func (s *Store) notify() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// purgeExpired removes expired keys and returns the next deadline
func (s *Store) purgeExpired(now time.Time) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for {
		next, ok := s.expirations.Min()
		if !ok {
			break
		}
		if next.at.After(now) {
			if n > 0 {
				zap.L().Debug("purge expired keys", zap.Int("count", n))
			}
			return next.at, true
		}
		s.expirations.DeleteMin()
		delete(s.entries, next.key)
		metrics.GetMetrics().ExpireKeysTotal.WithLabelValues("expired").Inc()
		n++
	}
	if n > 0 {
		zap.L().Debug("purge expired keys", zap.Int("count", n))
	}
	return time.Time{}, false
}

func (s *Store) purgeLoop() {
	defer s.wg.Done()
	timer := time.NewTimer(idlePurgeInterval)
	defer timer.Stop()

	for {
		wait := idlePurgeInterval
		if next, ok := s.purgeExpired(time.Now()); ok {
			wait = time.Until(next)
		}
		timer.Reset(wait)

		select {
		case <-s.done:
			zap.L().Debug("purge goroutine exit")
			return
		case <-s.wake:
		case <-timer.C:
		}
	}
}
