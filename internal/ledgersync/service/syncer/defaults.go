package syncer

import "time"

const (
	defaultWorkerCount          = 4
	defaultSelectionLimit       = 500
	defaultMaxSubmitAttempts    = 3
	defaultSubmitBackoffInitial = time.Second
	defaultSubmitBackoffMax     = 30 * time.Second
	defaultMaxConfirmationPolls = 60
	defaultPollInitial          = 10 * time.Second
	defaultPollMax              = 2 * time.Minute
	defaultConfirmationTimeout  = 2 * time.Hour
	defaultConfirmationDepth    = 1
	defaultJobRetention         = time.Hour

	defaultWorkerInterval    = time.Minute
	defaultStalePendingAge   = 3 * time.Hour
	defaultFailureBackoff    = 5 * time.Second
	defaultMaxFailureBackoff = 5 * time.Minute

	backoffMultiplier = 2
)

// Config tunes the Coordinator. Zero values fall back to defaults.
type Config struct {
	WorkerCount          int
	SelectionLimit       int
	MaxSubmitAttempts    int
	SubmitBackoffInitial time.Duration
	SubmitBackoffMax     time.Duration
	MaxConfirmationPolls int
	PollInitial          time.Duration
	PollMax              time.Duration
	ConfirmationTimeout  time.Duration
	ConfirmationDepth    uint64
	JobRetention         time.Duration
}

func (c Config) withDefaults() Config {
	if c.WorkerCount <= 0 {
		c.WorkerCount = defaultWorkerCount
	}
	if c.SelectionLimit <= 0 {
		c.SelectionLimit = defaultSelectionLimit
	}
	if c.MaxSubmitAttempts <= 0 {
		c.MaxSubmitAttempts = defaultMaxSubmitAttempts
	}
	if c.SubmitBackoffInitial <= 0 {
		c.SubmitBackoffInitial = defaultSubmitBackoffInitial
	}
	if c.SubmitBackoffMax < c.SubmitBackoffInitial {
		c.SubmitBackoffMax = max(defaultSubmitBackoffMax, c.SubmitBackoffInitial)
	}
	if c.MaxConfirmationPolls <= 0 {
		c.MaxConfirmationPolls = defaultMaxConfirmationPolls
	}
	if c.PollInitial <= 0 {
		c.PollInitial = defaultPollInitial
	}
	if c.PollMax < c.PollInitial {
		c.PollMax = max(defaultPollMax, c.PollInitial)
	}
	if c.ConfirmationTimeout <= 0 {
		c.ConfirmationTimeout = defaultConfirmationTimeout
	}
	if c.ConfirmationDepth == 0 {
		c.ConfirmationDepth = defaultConfirmationDepth
	}
	if c.JobRetention <= 0 {
		c.JobRetention = defaultJobRetention
	}
	return c
}

// WorkerConfig tunes the background Worker.
type WorkerConfig struct {
	Interval          time.Duration
	StalePendingAge   time.Duration
	FailureBackoff    time.Duration
	MaxFailureBackoff time.Duration
}

func (c WorkerConfig) withDefaults() WorkerConfig {
	if c.Interval <= 0 {
		c.Interval = defaultWorkerInterval
	}
	if c.StalePendingAge <= 0 {
		c.StalePendingAge = defaultStalePendingAge
	}
	if c.FailureBackoff <= 0 {
		c.FailureBackoff = defaultFailureBackoff
	}
	if c.MaxFailureBackoff < c.FailureBackoff {
		c.MaxFailureBackoff = max(defaultMaxFailureBackoff, c.FailureBackoff)
	}
	return c
}
