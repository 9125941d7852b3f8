// Package ledger owns the hospital state: doctors, patients, sessions and
// the booking workflow that moves appointments between statuses while
// keeping each session's booking counter in step.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"medpulse/internal/metrics"
	"medpulse/internal/model"
	"medpulse/pkg/logging"
)

var tracer = otel.Tracer("medpulse.internal.ledger")

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrCapacityExceeded  = errors.New("session is full")
	ErrInUse             = errors.New("record has dependents")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrAlreadyExists     = errors.New("already exists")
)

// Persister writes a full snapshot after every committed command.
type Persister interface {
	Save(ctx context.Context, snap model.Snapshot) error
}

// CapacityPolicy decides where a session's capacity is enforced.
type CapacityPolicy int

const (
	// CapacityAtRequest rejects requests against a full session but lets
	// approvals through, so pending requests can push a session past
	// maxPatients.
	CapacityAtRequest CapacityPolicy = iota
	// CapacityStrict additionally refuses approvals once the session is full.
	CapacityStrict
)

func ParseCapacityPolicy(s string) (CapacityPolicy, error) {
	switch s {
	case "", "request":
		return CapacityAtRequest, nil
	case "strict":
		return CapacityStrict, nil
	}
	return 0, fmt.Errorf("ledger: unknown capacity policy %q", s)
}

func (p CapacityPolicy) String() string {
	if p == CapacityStrict {
		return "strict"
	}
	return "request"
}

type Option func(*Ledger)

func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func WithIDs(newID func() string) Option {
	return func(l *Ledger) { l.newID = newID }
}

func WithCapacityPolicy(p CapacityPolicy) Option {
	return func(l *Ledger) { l.policy = p }
}

func WithLogger(logger *logging.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

func WithMetrics(m *metrics.LedgerMetrics) Option {
	return func(l *Ledger) { l.metrics = m }
}

// Ledger is the single state container. Every mutator takes the lock,
// applies its change, and persists the full snapshot before returning.
type Ledger struct {
	mu      sync.Mutex
	state   model.Snapshot
	persist Persister

	policy  CapacityPolicy
	now     func() time.Time
	newID   func() string
	logger  *logging.Logger
	metrics *metrics.LedgerMetrics
}

func New(initial model.Snapshot, p Persister, opts ...Option) *Ledger {
	if p == nil {
		panic("ledger: persister required")
	}
	l := &Ledger{
		state:   initial.Clone(),
		persist: p,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = logging.Default()
	}
	return l
}

func (l *Ledger) Policy() CapacityPolicy { return l.policy }

// Snapshot returns a deep copy of the current state.
func (l *Ledger) Snapshot() model.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Clone()
}

// commit persists the state; callers must hold l.mu. The in-memory change
// stays applied even if the write fails.
func (l *Ledger) commit(ctx context.Context, op string) error {
	start := time.Now()
	err := l.persist.Save(ctx, l.state.Clone())
	l.metrics.ObserveSave(time.Since(start).Seconds(), err)
	if err != nil {
		l.logger.Error("snapshot save failed", "op", op, "error", err)
		return fmt.Errorf("ledger: persist after %s: %w", op, err)
	}
	return nil
}

// finish ends the command span, records the outcome and returns err
// unchanged.
func (l *Ledger) finish(span trace.Span, op string, err error) error {
	if err != nil {
		span.RecordError(err)
	}
	span.End()
	l.metrics.ObserveCommand(op, outcome(err))
	return err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrInUse):
		return "in_use"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	default:
		return "error"
	}
}

// Drift describes a session whose counter disagrees with its appointments.
type Drift struct {
	SessionID string
	Counter   int
	Occupied  int
}

// Audit recomputes every session counter from the appointment list and
// returns the sessions that disagree. An empty result means the counters
// are consistent.
func (l *Ledger) Audit() []Drift {
	l.mu.Lock()
	defer l.mu.Unlock()

	occupied := make(map[string]int, len(l.state.Sessions))
	for _, a := range l.state.Appointments {
		if a.Status.Occupies() {
			occupied[a.SessionID]++
		}
	}
	var out []Drift
	for _, s := range l.state.Sessions {
		if s.CurrentBookings != occupied[s.ID] {
			out = append(out, Drift{SessionID: s.ID, Counter: s.CurrentBookings, Occupied: occupied[s.ID]})
		}
	}
	return out
}

func (l *Ledger) sessionIndex(id string) int {
	for i := range l.state.Sessions {
		if l.state.Sessions[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) patientIndex(id string) int {
	for i := range l.state.Patients {
		if l.state.Patients[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) doctorIndex(id string) int {
	for i := range l.state.Doctors {
		if l.state.Doctors[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) appointmentIndex(id string) int {
	for i := range l.state.Appointments {
		if l.state.Appointments[i].ID == id {
			return i
		}
	}
	return -1
}
