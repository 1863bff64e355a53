package resilience

import "time"

// FromRetryConfig builds a RetryConfig from plain config values; zero values
// keep the defaults.
func FromRetryConfig(maxAttempts, initialBackoffMs int) RetryConfig {
	var cfg RetryConfig
	if maxAttempts > 0 {
		cfg.MaxAttempts = maxAttempts
	}
	if initialBackoffMs > 0 {
		cfg.InitialBackoff = time.Duration(initialBackoffMs) * time.Millisecond
	}
	cfg.JitterFraction = 0.25
	return cfg
}

// FromBreakerConfig builds a BreakerConfig from plain config values.
func FromBreakerConfig(failureThreshold, resetTimeoutSecs int) BreakerConfig {
	var cfg BreakerConfig
	if failureThreshold > 0 {
		cfg.FailureThreshold = failureThreshold
	}
	if resetTimeoutSecs > 0 {
		cfg.ResetTimeout = time.Duration(resetTimeoutSecs) * time.Second
	}
	return cfg
}
