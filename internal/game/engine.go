package game

import (
	"time"

	"go.uber.org/zap"
)

// Clock returns the current time. Interaction timestamps and relationship
// decay read it.
type Clock func() time.Time

// Engine runs the simulation rules against immutable character snapshots.
// It holds no per-life state; every operation takes a snapshot and returns a
// new one.
type Engine struct {
	catalog   *Catalog
	rng       Source
	clock     Clock
	education EducationPolicy
	logger    *zap.Logger
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock overrides the wall clock.
func WithClock(clock Clock) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithEducation replaces the default age-driven schooling policy.
func WithEducation(policy EducationPolicy) Option {
	return func(e *Engine) {
		e.education = policy
	}
}

// NewEngine creates an engine that reads tables from catalog and draws from rng.
func NewEngine(catalog *Catalog, rng Source, opts ...Option) *Engine {
	e := &Engine{
		catalog:   catalog,
		rng:       rng,
		clock:     time.Now,
		education: AgeEducation{},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the tables the engine reads from.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}
