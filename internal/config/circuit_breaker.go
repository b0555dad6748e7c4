package config

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// Circuit breaker names, one per external dependency.
const (
	BreakerRedisSessions = "Redis-Sessions"
	BreakerPostgresUsers = "PostgreSQL-Users"
	BreakerRabbitMQ      = "RabbitMQ-Publisher"
)

// NewCircuitBreaker creates a circuit breaker with standard settings.
// The name parameter uniquely identifies the circuit breaker instance.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	var timeout time.Duration

	// Open-state timeouts line up with the 5s health check timeout for
	// request-path dependencies.
	switch name {
	case BreakerRedisSessions:
		timeout = 5 * time.Second
	case BreakerPostgresUsers:
		timeout = 10 * time.Second
	default:
		timeout = 30 * time.Second
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Error("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
}
