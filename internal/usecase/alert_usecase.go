package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/NasaVasa/coinsentry/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrUserNotRegistered = errors.New("user not registered")
	ErrUnknownAsset      = errors.New("unknown asset")
	ErrInvalidThreshold  = errors.New("invalid threshold")
	ErrAlertNotFound     = errors.New("alert not found")
	ErrTooManyAlerts     = errors.New("too many alerts")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrBadTransition     = errors.New("status change not allowed")
)

// AlertUsecase is the owner-facing alert surface: validation plus store calls.
// The engine never creates alerts; this is the only creation path, so asset
// membership in the universe is enforced here.
type AlertUsecase struct {
	users       domain.UserStore
	alerts      domain.AlertStore
	universe    map[domain.Asset]bool
	maxPerOwner int
}

func NewAlertUsecase(users domain.UserStore, alerts domain.AlertStore, universe []domain.Asset, maxPerOwner int) *AlertUsecase {
	set := make(map[domain.Asset]bool, len(universe))
	for _, asset := range universe {
		set[asset] = true
	}
	return &AlertUsecase{users: users, alerts: alerts, universe: set, maxPerOwner: maxPerOwner}
}

func (u *AlertUsecase) CreateAlert(ctx context.Context, owner int64, assetInput, directionInput, thresholdInput string) (*domain.Alert, error) {
	user, err := u.users.GetByTelegramID(ctx, owner)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, ErrUserNotRegistered
		}
		return nil, err
	}

	asset := domain.Asset(strings.ToLower(strings.TrimSpace(assetInput)))
	if !u.universe[asset] {
		return nil, ErrUnknownAsset
	}

	direction, err := domain.ParseDirection(directionInput)
	if err != nil {
		return nil, err
	}

	threshold, err := decimal.NewFromString(strings.TrimSpace(thresholdInput))
	if err != nil || threshold.Sign() <= 0 {
		return nil, ErrInvalidThreshold
	}

	if u.maxPerOwner > 0 && u.alerts.CountByOwner(ctx, owner) >= int64(u.maxPerOwner) {
		return nil, ErrTooManyAlerts
	}

	alert, ok := u.alerts.Create(ctx, owner, asset, threshold, direction, user.Locale)
	if !ok {
		return nil, ErrStoreUnavailable
	}
	return alert, nil
}

func (u *AlertUsecase) ListAlerts(ctx context.Context, owner int64) []domain.Alert {
	return u.alerts.ListByOwner(ctx, owner, nil)
}

func (u *AlertUsecase) PauseAlert(ctx context.Context, owner int64, alertID string) error {
	return u.transition(ctx, owner, alertID, domain.StatusPaused)
}

func (u *AlertUsecase) ResumeAlert(ctx context.Context, owner int64, alertID string) error {
	return u.transition(ctx, owner, alertID, domain.StatusActive)
}

// DeleteAlert soft-deletes: the row stays as a tombstone and falls out of
// every candidate set. Physical removal is the retention job's business.
func (u *AlertUsecase) DeleteAlert(ctx context.Context, owner int64, alertID string) error {
	return u.transition(ctx, owner, alertID, domain.StatusDeleted)
}

// ClearAlerts physically removes everything the owner has, tombstones
// included, and returns the count.
func (u *AlertUsecase) ClearAlerts(ctx context.Context, owner int64) int64 {
	return u.alerts.DeleteAllByOwner(ctx, owner)
}

func (u *AlertUsecase) transition(ctx context.Context, owner int64, alertID string, status domain.Status) error {
	alert, ok := u.alerts.GetByID(ctx, alertID)
	if !ok || alert.OwnerID != owner {
		return ErrAlertNotFound
	}
	if !alert.Status.CanTransitionTo(status) {
		return ErrBadTransition
	}
	if !u.alerts.SetStatus(ctx, alertID, status) {
		return ErrStoreUnavailable
	}
	return nil
}
