package app

import "sync"

// voteRegistry remembers which voter marked which review helpful. It lives in
// process memory only, so a restart forgets every vote.
type voteRegistry struct {
	mu   sync.Mutex
	seen map[string]map[string]struct{} // voterID -> reviewIDs
}

func newVoteRegistry() *voteRegistry {
	return &voteRegistry{seen: map[string]map[string]struct{}{}}
}

func (v *voteRegistry) has(voterID, reviewID string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.seen[voterID][reviewID]
	return ok
}

func (v *voteRegistry) record(voterID, reviewID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	m, ok := v.seen[voterID]
	if !ok {
		m = map[string]struct{}{}
		v.seen[voterID] = m
	}
	m[reviewID] = struct{}{}
}
