package tasks

import (
	"sync"
	"time"

	"github.com/exovance/site/internal/contact"
	"github.com/exovance/site/internal/logging"
)

// FormCleanup periodically drops idle contact form instances
type FormCleanup struct {
	registry *contact.Registry
	interval time.Duration
	logger   *logging.Logger
	now      func() time.Time
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewFormCleanup creates a new form cleanup task
func NewFormCleanup(registry *contact.Registry, interval time.Duration, logger *logging.Logger) *FormCleanup {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &FormCleanup{
		registry: registry,
		interval: interval,
		logger:   logger,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start begins the cleanup task in the background
func (fc *FormCleanup) Start() {
	fc.wg.Add(1)
	go fc.runPeriodically()
}

// Stop ends the task and waits for a running sweep to finish
func (fc *FormCleanup) Stop() {
	fc.stopOnce.Do(func() { close(fc.done) })
	fc.wg.Wait()
}

func (fc *FormCleanup) runPeriodically() {
	defer fc.wg.Done()

	ticker := time.NewTicker(fc.interval)
	defer ticker.Stop()

	for {
		select {
		case <-fc.done:
			return
		case <-ticker.C:
			fc.cleanup()
		}
	}
}

// cleanup performs one sweep
func (fc *FormCleanup) cleanup() int {
	removed := fc.registry.Sweep(fc.now())
	if removed > 0 {
		fc.logger.Debug("Form cleanup removed %d idle forms, %d remaining", removed, fc.registry.Len())
	}
	return removed
}
