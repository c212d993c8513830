package service

import (
	"math/rand"
	"time"

	"wordvault/internal/config"
)

// DelayPolicy yields the pause inserted between successive dictionary
// lookups. elapsed is the wall time since the batch started. Injectable so
// tests do not depend on wall-clock randomness.
type DelayPolicy interface {
	Next(elapsed time.Duration) time.Duration
}

// randomDelayPolicy is the production pacing heuristic: a short randomized
// pause between lookups, escalating to a longer one roughly every
// escalateEvery of elapsed wall time. Not a formal rate limiter.
type randomDelayPolicy struct {
	shortMin, shortMax time.Duration
	longMin, longMax   time.Duration
	escalateEvery      time.Duration
	lastEscalation     time.Duration
}

// NewRandomDelayPolicy builds the default policy from config. A fresh policy
// is needed per batch because it tracks the last escalation point.
func NewRandomDelayPolicy(cfg *config.Config) DelayPolicy {
	return &randomDelayPolicy{
		shortMin:      time.Duration(cfg.Import.ShortDelayMinMs) * time.Millisecond,
		shortMax:      time.Duration(cfg.Import.ShortDelayMaxMs) * time.Millisecond,
		longMin:       time.Duration(cfg.Import.LongDelayMinMs) * time.Millisecond,
		longMax:       time.Duration(cfg.Import.LongDelayMaxMs) * time.Millisecond,
		escalateEvery: time.Duration(cfg.Import.EscalateEverySec) * time.Second,
	}
}

func (p *randomDelayPolicy) Next(elapsed time.Duration) time.Duration {
	if elapsed-p.lastEscalation >= p.escalateEvery {
		p.lastEscalation = elapsed
		return randomBetween(p.longMin, p.longMax)
	}
	return randomBetween(p.shortMin, p.shortMax)
}

func randomBetween(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}

// NoDelay skips pacing entirely. For tests.
type NoDelay struct{}

func (NoDelay) Next(time.Duration) time.Duration { return 0 }
