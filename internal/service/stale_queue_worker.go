package service

import (
	"context"
	"log"
	"time"

	"github.com/blacks1k-sc/ParcelVision/internal/domain"
	"github.com/blacks1k-sc/ParcelVision/internal/port"
)

// StaleQueueConfig holds settings for the stale queue watcher.
type StaleQueueConfig struct {
	PollInterval time.Duration
	StaleAfter   time.Duration
}

// StaleQueueWorker watches the valet queue for units that have been pending
// longer than the threshold and raises an alert. The polling browser script
// normally drains the queue within a minute, so anything old means the script
// stopped running.
type StaleQueueWorker struct {
	queue   port.PendingQueue
	alerts  port.AlertSender
	cfg     StaleQueueConfig
	alerted map[string]time.Time
}

// NewStaleQueueWorker creates a new StaleQueueWorker.
func NewStaleQueueWorker(queue port.PendingQueue, alerts port.AlertSender, cfg StaleQueueConfig) *StaleQueueWorker {
	return &StaleQueueWorker{
		queue:   queue,
		alerts:  alerts,
		cfg:     cfg,
		alerted: make(map[string]time.Time),
	}
}

// Start runs the polling loop until ctx is canceled.
func (w *StaleQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	log.Printf("staleQueueWorker: started (poll=%s, staleAfter=%s)", w.cfg.PollInterval, w.cfg.StaleAfter)

	for {
		select {
		case <-ctx.Done():
			log.Printf("staleQueueWorker: shutdown complete")
			return
		case <-ticker.C:
			w.check(ctx, time.Now())
		}
	}
}

// check collects the stale pending units and alerts once per queued entry.
// An entry already alerted on stays silent until it is acknowledged and
// re-enqueued.
func (w *StaleQueueWorker) check(ctx context.Context, now time.Time) {
	pending := w.queue.ListPending()

	live := make(map[string]bool, len(pending))
	var stale []domain.PendingUnit
	for _, p := range pending {
		key := p.Unit + "|" + p.Timestamp
		live[key] = true
		if now.Sub(p.EnqueuedAt) < w.cfg.StaleAfter {
			continue
		}
		if _, done := w.alerted[key]; done {
			continue
		}
		stale = append(stale, p)
		w.alerted[key] = now
	}

	// Forget acknowledged entries so the map does not grow unbounded.
	for key := range w.alerted {
		if !live[key] {
			delete(w.alerted, key)
		}
	}

	if len(stale) == 0 {
		return
	}

	log.Printf("staleQueueWorker: %d unit(s) pending past %s", len(stale), w.cfg.StaleAfter)
	if err := w.alerts.SendStaleQueueAlert(ctx, stale); err != nil {
		log.Printf("staleQueueWorker: alert failed: %v", err)
	}
}
