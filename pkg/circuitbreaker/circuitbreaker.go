package circuitbreaker

import (
	"time"

	"github.com/sony/gobreaker/v2"
)

// New returns a breaker that opens once at least three requests were seen and
// 60% or more of them failed. It half-opens again after timeout.
func New[T any](name string, timeout time.Duration) *gobreaker.CircuitBreaker[T] {
	var st gobreaker.Settings
	st.Name = name
	st.Timeout = timeout
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= 3 && failureRatio >= 0.6
	}

	return gobreaker.NewCircuitBreaker[T](st)
}
