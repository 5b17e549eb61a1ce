package google

import (
	"sync"
	"time"
)

// Sheets API quota headroom: at least one second between requests.
const defaultMinInterval = time.Second

// pacer serializes API calls and enforces a minimum interval between
// them. It spaces requests out; it does not make concurrent writers
// safe.
type pacer struct {
	mu       sync.Mutex
	last     time.Time
	interval time.Duration
	sleep    func(time.Duration)
}

func newPacer(interval time.Duration) *pacer {
	return &pacer{interval: interval, sleep: time.Sleep}
}

func (p *pacer) wait() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if elapsed := time.Since(p.last); elapsed < p.interval {
		p.sleep(p.interval - elapsed)
	}
	p.last = time.Now()
}
