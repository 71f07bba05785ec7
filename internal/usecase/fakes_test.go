package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NasaVasa/coinsentry/internal/domain"
	"github.com/shopspring/decimal"
)

type fakeAlertStore struct {
	alerts []*domain.Alert
	nextID uint

	failAll        bool
	setStatusCalls int
}

func (s *fakeAlertStore) Create(_ context.Context, owner int64, asset domain.Asset, threshold decimal.Decimal, direction domain.Direction, locale string) (*domain.Alert, bool) {
	if s.failAll {
		return nil, false
	}
	s.nextID++
	alert := &domain.Alert{
		ID:        s.nextID,
		AlertID:   fmt.Sprintf("alert-%d", s.nextID),
		OwnerID:   owner,
		Asset:     asset,
		Threshold: threshold,
		Direction: direction,
		Status:    domain.StatusActive,
		Locale:    locale,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.alerts = append(s.alerts, alert)
	return alert, true
}

func (s *fakeAlertStore) GetByID(_ context.Context, alertID string) (*domain.Alert, bool) {
	if s.failAll {
		return nil, false
	}
	for _, alert := range s.alerts {
		if alert.AlertID == alertID {
			copied := *alert
			return &copied, true
		}
	}
	return nil, false
}

func (s *fakeAlertStore) ListByOwner(_ context.Context, owner int64, status *domain.Status) []domain.Alert {
	if s.failAll {
		return nil
	}
	var out []domain.Alert
	for _, alert := range s.alerts {
		if alert.OwnerID != owner {
			continue
		}
		if status != nil && alert.Status != *status {
			continue
		}
		out = append(out, *alert)
	}
	return out
}

func (s *fakeAlertStore) ListActive(_ context.Context) []domain.Alert {
	if s.failAll {
		return nil
	}
	var out []domain.Alert
	for _, alert := range s.alerts {
		if alert.Status == domain.StatusActive {
			out = append(out, *alert)
		}
	}
	return out
}

func (s *fakeAlertStore) SetStatus(_ context.Context, alertID string, status domain.Status) bool {
	s.setStatusCalls++
	if s.failAll {
		return false
	}
	for _, alert := range s.alerts {
		if alert.AlertID != alertID {
			continue
		}
		if !alert.Status.CanTransitionTo(status) {
			return false
		}
		alert.Status = status
		alert.UpdatedAt = time.Now()
		return true
	}
	return false
}

func (s *fakeAlertStore) Delete(_ context.Context, alertID string) bool {
	if s.failAll {
		return false
	}
	for i, alert := range s.alerts {
		if alert.AlertID == alertID {
			s.alerts = append(s.alerts[:i], s.alerts[i+1:]...)
			return true
		}
	}
	return false
}

func (s *fakeAlertStore) DeleteAllByOwner(_ context.Context, owner int64) int64 {
	if s.failAll {
		return 0
	}
	var kept []*domain.Alert
	var removed int64
	for _, alert := range s.alerts {
		if alert.OwnerID == owner {
			removed++
			continue
		}
		kept = append(kept, alert)
	}
	s.alerts = kept
	return removed
}

func (s *fakeAlertStore) CountByOwner(_ context.Context, owner int64) int64 {
	if s.failAll {
		return 0
	}
	var count int64
	for _, alert := range s.alerts {
		if alert.OwnerID == owner && alert.Status != domain.StatusDeleted {
			count++
		}
	}
	return count
}

func (s *fakeAlertStore) statusOf(alertID string) domain.Status {
	for _, alert := range s.alerts {
		if alert.AlertID == alertID {
			return alert.Status
		}
	}
	return ""
}

type fakeUserStore struct {
	users    map[int64]*domain.User
	getCalls int
	err      error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*domain.User)}
}

func (s *fakeUserStore) GetByTelegramID(_ context.Context, id int64) (*domain.User, error) {
	s.getCalls++
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) Create(_ context.Context, user *domain.User) error {
	if s.err != nil {
		return s.err
	}
	user.ID = uint(len(s.users) + 1)
	s.users[user.TelegramUserID] = user
	return nil
}

func (s *fakeUserStore) SetLocale(_ context.Context, id int64, locale string) error {
	if s.err != nil {
		return s.err
	}
	user, ok := s.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	user.Locale = locale
	return nil
}

type fakePriceSource struct {
	quotes map[domain.Asset]domain.Quote
	err    error
	calls  int
}

func (s *fakePriceSource) Quotes(_ context.Context, _ []domain.Asset) (map[domain.Asset]domain.Quote, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.quotes, nil
}

type sentNotification struct {
	alert domain.Alert
	quote domain.Quote
}

type fakeNotifier struct {
	sent []sentNotification
	err  error
}

func (n *fakeNotifier) NotifyTriggered(_ context.Context, alert domain.Alert, quote domain.Quote) error {
	n.sent = append(n.sent, sentNotification{alert: alert, quote: quote})
	return n.err
}

type fakeCatalog struct{ locales map[string]bool }

func (c fakeCatalog) Supported(locale string) bool { return c.locales[locale] }

var errStoreDown = errors.New("store down")
