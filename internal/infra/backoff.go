package infra

import "time"

const (
	backoffBase = 1 * time.Second
	backoffMax  = 60 * time.Second
)

// CalculateBackoff returns the exponential reconnect delay for the given
// retry count, capped at backoffMax.
func CalculateBackoff(retry int) time.Duration {
	delay := backoffBase << uint(retry)
	if delay <= 0 || delay > backoffMax {
		return backoffMax
	}
	return delay
}
