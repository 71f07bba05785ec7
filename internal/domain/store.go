package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("not found")

// AlertStore is the persistence boundary consumed by the evaluation engine.
//
// Methods never return errors: any I/O failure is logged inside the store and
// surfaced as a false/empty result. A degraded store degrades the feature
// (alerts stop being checked that cycle) instead of crashing the process.
type AlertStore interface {
	// Create persists a new alert with a fresh unique handle and status
	// active. Returns (nil, false) on store failure.
	Create(ctx context.Context, owner int64, asset Asset, threshold decimal.Decimal, direction Direction, locale string) (*Alert, bool)
	// GetByID looks up an alert by its external handle.
	GetByID(ctx context.Context, alertID string) (*Alert, bool)
	// ListByOwner returns the owner's alerts in creation order, optionally
	// filtered by status.
	ListByOwner(ctx context.Context, owner int64, status *Status) []Alert
	// ListActive returns a point-in-time snapshot of every active alert.
	ListActive(ctx context.Context) []Alert
	// SetStatus transitions an alert's status and refreshes updated_at.
	// It is idempotent and rejects transitions outside the domain table.
	SetStatus(ctx context.Context, alertID string, status Status) bool
	// Delete physically removes one alert row. The owner-facing path
	// soft-deletes through SetStatus; this exists for retention work.
	Delete(ctx context.Context, alertID string) bool
	// DeleteAllByOwner physically removes all of an owner's alerts and
	// returns how many were removed.
	DeleteAllByOwner(ctx context.Context, owner int64) int64
	// CountByOwner counts the owner's non-deleted alerts.
	CountByOwner(ctx context.Context, owner int64) int64
}

type UserStore interface {
	GetByTelegramID(ctx context.Context, telegramUserID int64) (*User, error)
	Create(ctx context.Context, user *User) error
	SetLocale(ctx context.Context, telegramUserID int64, locale string) error
}
