package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ideaboard_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// VotesRecorded counts successful votes recorded in the ledger.
	VotesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ideaboard_votes_recorded_total",
		Help: "Total number of votes accepted by the voting ledger",
	})

	// DuplicateVotes counts vote attempts rejected by the uniqueness constraint.
	DuplicateVotes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ideaboard_votes_duplicate_total",
		Help: "Total number of vote attempts rejected as duplicates",
	})

	// CodeRedemptions counts invitation code redemptions by granted role.
	CodeRedemptions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ideaboard_code_redemptions_total",
		Help: "Total number of successful invitation code redemptions by role",
	}, []string{"role"})

	// StatusChanges counts idea status transitions by target status.
	StatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ideaboard_idea_status_changes_total",
		Help: "Total number of idea status changes by new status",
	}, []string{"status"})
)

// InitMetrics creates the fiberprometheus middleware for HTTP-level metrics.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus middleware as a Fiber handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
