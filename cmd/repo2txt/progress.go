package main

import (
	"sync"

	"github.com/schollz/progressbar/v3"

	"github.com/quantmind-br/repo2txt-go/internal/utils"
)

// fetchProgress shows a progress bar for content fetches. The bar is
// created on the first update, once the total is known.
type fetchProgress struct {
	enabled bool

	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

func newFetchProgress(enabled bool) *fetchProgress {
	return &fetchProgress{enabled: enabled}
}

// Update records that done of total files have completed
func (p *fetchProgress) Update(done, total int, _ string) {
	if !p.enabled {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar == nil {
		p.bar = utils.NewProgressBar(total, utils.DescFetching)
	}
	_ = p.bar.Set(done)
}

// Finish completes and removes the bar
func (p *fetchProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
}
