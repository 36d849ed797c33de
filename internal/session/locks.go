package session

import (
	"context"
	"sync"
)

// profileLocks hands out one lock per profile and forgets it once nobody
// holds or waits for it.
type profileLocks struct {
	mu    sync.Mutex
	locks map[string]*profileLock
}

type profileLock struct {
	sem  chan struct{}
	refs int
}

func newProfileLocks() *profileLocks {
	return &profileLocks{locks: make(map[string]*profileLock)}
}

// lock waits for the profile's lock until ctx ends.
func (p *profileLocks) lock(ctx context.Context, profileID string) (unlock func(), err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	l, ok := p.locks[profileID]
	if !ok {
		l = &profileLock{sem: make(chan struct{}, 1)}
		p.locks[profileID] = l
	}
	l.refs++
	p.mu.Unlock()

	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		p.release(profileID, l)
		return nil, ctx.Err()
	}

	return func() {
		<-l.sem
		p.release(profileID, l)
	}, nil
}

func (p *profileLocks) release(profileID string, l *profileLock) {
	p.mu.Lock()
	defer p.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(p.locks, profileID)
	}
}

func (p *profileLocks) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.locks)
}
