package checkout

import "sync"

// submissionGuard enforces single-flight checkout per shopper: a second
// submission while one is outstanding is rejected instead of queued.
type submissionGuard struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

func newSubmissionGuard() *submissionGuard {
	return &submissionGuard{inFlight: make(map[string]struct{})}
}

// acquire reports whether the shopper may start a submission now.
func (g *submissionGuard) acquire(userEmail string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.inFlight[userEmail]; busy {
		return false
	}
	g.inFlight[userEmail] = struct{}{}
	return true
}

func (g *submissionGuard) release(userEmail string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inFlight, userEmail)
}
