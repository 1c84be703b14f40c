// Package metrics defines and registers all custom Prometheus metrics for
// the job-portal API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jobportal"

// RegistrationsTotal counts successfully created accounts.
// Label:
//   - role: "job-seeker" or "recruiter"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "bad_credentials", "role_mismatch", or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AssetUploadsTotal counts object storage uploads initiated by account
// operations.
// Labels:
//   - kind: "profile_photo" or "resume"
//   - result: "ok" or "error"
var AssetUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "asset_uploads_total",
		Help:      "Total number of asset uploads, by kind and result.",
	},
	[]string{"kind", "result"},
)

// ProfileCacheTotal counts profile cache lookups.
// Label:
//   - result: "hit" or "miss"
var ProfileCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_cache_total",
		Help:      "Total number of profile cache lookups, by result.",
	},
	[]string{"result"},
)

// ActivityQueueDepth tracks the number of account events waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of account events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
