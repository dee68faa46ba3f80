package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ClaimDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_claim_decisions_total",
			Help: "Ownership claim decisions by outcome",
		},
		[]string{"decision"},
	)

	ClaimPartialFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "directory_claim_partial_failures_total",
			Help: "Claim decisions whose ownership write failed after the status write",
		},
	)

	ReviewModerations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_review_moderations_total",
			Help: "Review moderation actions by action",
		},
		[]string{"action"},
	)

	RatingRecomputeFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "directory_rating_recompute_failures_total",
			Help: "Rating recomputations that failed and were skipped",
		},
	)

	LeadsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_leads_created_total",
			Help: "Leads received, split by whether the business is claimed",
		},
		[]string{"claimed"},
	)

	FeaturedDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_featured_decisions_total",
			Help: "Featured request decisions by outcome",
		},
		[]string{"decision"},
	)

	NotificationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_notification_failures_total",
			Help: "Notifications that could not be delivered",
		},
		[]string{"channel"},
	)

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"route"},
	)

	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "directory_job_duration_seconds",
			Help: "Duration of background job runs in seconds",
		},
		[]string{"job"},
	)
)
