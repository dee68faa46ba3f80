package jobs

import (
	"context"
	"time"

	"bizdirectory/cmd/internal/infrastructure/metrics"

	"github.com/labstack/gommon/log"
)

const ReconcileInterval = 1 * time.Hour

type BusinessLister interface {
	FindAllIDs() ([]string, error)
}

type RatingUpdater interface {
	UpdateBusinessRating(businessID string) error
}

// RatingReconciler recomputes every listing's aggregate from its approved
// reviews. Recomputation after moderation is allowed to fail silently, this
// job is what brings those listings back in line.
type RatingReconciler struct {
	businesses BusinessLister
	ratings    RatingUpdater
	interval   time.Duration
}

func NewRatingReconciler(businesses BusinessLister, ratings RatingUpdater, interval time.Duration) *RatingReconciler {
	if interval <= 0 {
		interval = ReconcileInterval
	}
	return &RatingReconciler{
		businesses: businesses,
		ratings:    ratings,
		interval:   interval,
	}
}

func (r *RatingReconciler) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	log.Info("Rating reconciler cron started")

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping rating reconciler...")
			return
		case <-ticker.C:
			r.reconcile(ctx)
		}
	}
}

// reconcile returns how many listings failed to update.
func (r *RatingReconciler) reconcile(ctx context.Context) int {
	start := time.Now()
	defer func() {
		metrics.JobDuration.WithLabelValues("rating_reconciler").Observe(time.Since(start).Seconds())
	}()

	ids, err := r.businesses.FindAllIDs()
	if err != nil {
		log.Errorf("Reconciler: failed to list businesses: %v", err)
		return 0
	}

	failed := 0
	for i, id := range ids {
		if ctx.Err() != nil {
			log.Warnf("Reconciler: interrupted after %d of %d businesses", i, len(ids))
			return failed
		}

		if err = r.ratings.UpdateBusinessRating(id); err != nil {
			log.Errorf("Reconciler: %v", err)
			failed++
		}
	}

	log.Debugf("Reconciler: refreshed ratings of %d businesses (%d failed)", len(ids)-failed, len(ids))
	return failed
}
