// Package stats holds the process-wide usage counters surfaced by the
// admin commands. Nothing here is persisted; counts reset on restart.
package stats

import "sync"

type Stats struct {
	mu        sync.Mutex
	requests  int64
	downloads int64
	users     map[int64]struct{}
}

type Snapshot struct {
	Requests  int64
	Downloads int64
	Users     int
}

func New() *Stats {
	return &Stats{
		users: make(map[int64]struct{}),
	}
}

// RecordRequest counts one catalog API call.
func (s *Stats) RecordRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++
}

// RecordDownload counts one delivered audio file.
func (s *Stats) RecordDownload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.downloads++
}

// RecordUser marks a user id as seen.
func (s *Stats) RecordUser(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[userID] = struct{}{}
}

func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Requests:  s.requests,
		Downloads: s.downloads,
		Users:     len(s.users),
	}
}

// UserIDs returns every distinct user id seen so far. Used by broadcast.
func (s *Stats) UserIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	return ids
}
