package lifecycle

import (
	"context"
	"fmt"

	"github.com/campusworks/claimflow/internal/domain/claim"
)

// Machine tracks a claim's current status and validates transitions against
// a configured lifecycle graph.
type Machine interface {
	// Status returns the current status
	Status() claim.Status

	// CanFire returns true if the trigger is permitted in the current status
	CanFire(trigger Trigger) bool

	// Fire attempts to execute the trigger, advancing to the target status
	// if a permitted transition's guard passes
	Fire(ctx context.Context, trigger Trigger) error

	// PermittedTriggers returns all triggers that can fire in the current status
	PermittedTriggers() []Trigger
}

// GuardFunc evaluates whether a permitted transition should actually be taken
type GuardFunc func(ctx context.Context) bool

// Builder assembles a lifecycle graph and stamps out machines from it
type Builder interface {
	// Configure returns the transition configuration for a status
	Configure(status claim.Status) StatusConfiguration

	// Build creates a machine positioned at the given initial status
	Build(initial claim.Status) Machine
}

// StatusConfiguration configures outgoing transitions for one status
type StatusConfiguration interface {
	// Permit allows a trigger to transition to the target status
	Permit(trigger Trigger, to claim.Status) StatusConfiguration

	// PermitIf allows the transition only when the guard passes at fire time
	PermitIf(trigger Trigger, to claim.Status, guard GuardFunc) StatusConfiguration
}

type transition struct {
	to    claim.Status
	guard GuardFunc
}

type statusConfig struct {
	from        claim.Status
	transitions map[Trigger][]transition
}

type builder struct {
	configs map[claim.Status]*statusConfig
}

type machine struct {
	current claim.Status
	configs map[claim.Status]*statusConfig
}

// NewBuilder creates an empty lifecycle graph builder
func NewBuilder() Builder {
	return &builder{configs: make(map[claim.Status]*statusConfig)}
}

func (b *builder) Configure(status claim.Status) StatusConfiguration {
	if !status.IsValid() {
		panic(fmt.Sprintf("invalid status: %s", status))
	}

	cfg, ok := b.configs[status]
	if !ok {
		cfg = &statusConfig{
			from:        status,
			transitions: make(map[Trigger][]transition),
		}
		b.configs[status] = cfg
	}

	return cfg
}

func (b *builder) Build(initial claim.Status) Machine {
	if !initial.IsValid() {
		panic(fmt.Sprintf("invalid initial status: %s", initial))
	}

	// Copy configurations so later builder mutation cannot affect built machines
	configs := make(map[claim.Status]*statusConfig, len(b.configs))
	for status, cfg := range b.configs {
		transitions := make(map[Trigger][]transition, len(cfg.transitions))
		for trigger, ts := range cfg.transitions {
			transitions[trigger] = append([]transition{}, ts...)
		}
		configs[status] = &statusConfig{from: status, transitions: transitions}
	}

	return &machine{current: initial, configs: configs}
}

func (c *statusConfig) Permit(trigger Trigger, to claim.Status) StatusConfiguration {
	return c.PermitIf(trigger, to, nil)
}

func (c *statusConfig) PermitIf(trigger Trigger, to claim.Status, guard GuardFunc) StatusConfiguration {
	if !to.IsValid() {
		panic(fmt.Sprintf("invalid target status: %s", to))
	}

	c.transitions[trigger] = append(c.transitions[trigger], transition{to: to, guard: guard})
	return c
}

func (m *machine) Status() claim.Status {
	return m.current
}

func (m *machine) CanFire(trigger Trigger) bool {
	cfg, ok := m.configs[m.current]
	if !ok {
		return false
	}
	return len(cfg.transitions[trigger]) > 0
}

func (m *machine) Fire(ctx context.Context, trigger Trigger) error {
	cfg, ok := m.configs[m.current]
	if !ok {
		return fmt.Errorf("%w: cannot fire %s from %s (no configuration)", ErrInvalidTransition, trigger, m.current)
	}

	transitions := cfg.transitions[trigger]
	if len(transitions) == 0 {
		return fmt.Errorf("%w: cannot fire %s from %s", ErrInvalidTransition, trigger, m.current)
	}

	// First transition whose guard passes wins
	for _, t := range transitions {
		if t.guard == nil || t.guard(ctx) {
			m.current = t.to
			return nil
		}
	}

	return fmt.Errorf("%w: trigger %s from %s", ErrGuardFailed, trigger, m.current)
}

func (m *machine) PermittedTriggers() []Trigger {
	cfg, ok := m.configs[m.current]
	if !ok {
		return []Trigger{}
	}

	triggers := make([]Trigger, 0, len(cfg.transitions))
	for trigger := range cfg.transitions {
		triggers = append(triggers, trigger)
	}
	return triggers
}
