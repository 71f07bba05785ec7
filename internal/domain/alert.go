package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Asset identifies one instrument from the configured universe (e.g. "btc").
type Asset string

// Direction says which side of the threshold fires the alert.
type Direction string

const (
	DirectionAbove Direction = "above"
	DirectionBelow Direction = "below"
)

var ErrInvalidDirection = errors.New("invalid direction")

func ParseDirection(input string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "above", ">", ">=":
		return DirectionAbove, nil
	case "below", "<", "<=":
		return DirectionBelow, nil
	default:
		return "", ErrInvalidDirection
	}
}

// Status is the alert lifecycle state.
type Status string

const (
	StatusActive    Status = "active"
	StatusTriggered Status = "triggered"
	StatusPaused    Status = "paused"
	StatusDeleted   Status = "deleted"
)

// transitionTable is the exhaustive set of legal status changes. Anything not
// listed here is rejected at the store boundary. A triggered alert never goes
// back to active, which is what keeps notifications at most once.
var transitionTable = map[Status]map[Status]bool{
	StatusActive:    {StatusTriggered: true, StatusPaused: true, StatusDeleted: true},
	StatusPaused:    {StatusActive: true, StatusDeleted: true},
	StatusTriggered: {StatusDeleted: true},
	StatusDeleted:   {},
}

// CanTransitionTo reports whether next is a legal transition from s.
// A transition to the current status is always legal, so that repeating a
// status write is idempotent.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	return transitionTable[s][next]
}

// TransitionSources returns every status from which next is reachable,
// including next itself (idempotent repeat).
func TransitionSources(next Status) []Status {
	sources := []Status{next}
	for from, allowed := range transitionTable {
		if from != next && allowed[next] {
			sources = append(sources, from)
		}
	}
	return sources
}

// Alert is a persisted threshold watch. AlertID is the externally visible
// handle, distinct from the storage key; everything except Status and
// UpdatedAt is immutable after creation.
type Alert struct {
	ID        uint
	AlertID   string
	OwnerID   int64
	Asset     Asset
	Threshold decimal.Decimal
	Direction Direction
	Status    Status
	Locale    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Crossed reports whether price satisfies the alert condition. Boundaries are
// inclusive: a quote exactly at the threshold fires for both directions.
func (a Alert) Crossed(price decimal.Decimal) bool {
	cmp := price.Cmp(a.Threshold)
	if a.Direction == DirectionBelow {
		return cmp <= 0
	}
	return cmp >= 0
}
