package reconnect

import (
	"sync"
	"time"

	"valr/pkg/logger"
)

// Manager tracks reconnection attempts for a long-lived connection.
// It implements a fixed-delay retry policy: the exchange enforces its own
// connection-rate limits, so the delay between attempts stays constant
// instead of growing exponentially.
type Manager struct {
	delay       time.Duration
	maxAttempts int // 0 = unlimited

	mu              sync.Mutex
	attempts        int
	totalReconnects int

	logger *logger.Logger
}

// Config configures the reconnect manager
type Config struct {
	Delay       time.Duration // Wait between attempts (e.g. 5s)
	MaxAttempts int           // Max consecutive attempts before giving up (0 = unlimited)
}

// NewManager creates a new reconnect manager with sensible defaults
func NewManager(config Config, log *logger.Logger) *Manager {
	if config.Delay == 0 {
		config.Delay = 5 * time.Second
	}

	return &Manager{
		delay:       config.Delay,
		maxAttempts: config.MaxAttempts,
		logger:      log,
	}
}

// Delay returns the fixed wait before the next attempt
func (m *Manager) Delay() time.Duration {
	return m.delay
}

// ShouldRetry returns whether another reconnection attempt is allowed
func (m *Manager) ShouldRetry() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxAttempts > 0 && m.attempts >= m.maxAttempts {
		return false
	}
	return true
}

// RecordAttempt registers a new reconnection attempt and returns its number
func (m *Manager) RecordAttempt() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.attempts++
	m.logger.Warnw("Reconnection attempt",
		"attempt", m.attempts,
		"max_attempts", m.maxAttempts,
	)
	return m.attempts
}

// RecordSuccess resets the attempt counter after a successful reconnection
func (m *Manager) RecordSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.attempts > 0 {
		m.totalReconnects++
		m.logger.Infow("Reconnection successful, resetting attempt counter",
			"previous_attempts", m.attempts,
			"total_reconnects", m.totalReconnects,
		)
	}
	m.attempts = 0
}

// Reset clears the attempt counter without counting a reconnect
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts = 0
}

// Attempts returns the current consecutive attempt count
func (m *Manager) Attempts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempts
}

// Stats contains reconnection statistics
type Stats struct {
	Attempts        int
	TotalReconnects int
	Delay           time.Duration
	MaxAttempts     int
}

// GetStats returns current reconnect manager stats
func (m *Manager) GetStats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Stats{
		Attempts:        m.attempts,
		TotalReconnects: m.totalReconnects,
		Delay:           m.delay,
		MaxAttempts:     m.maxAttempts,
	}
}
