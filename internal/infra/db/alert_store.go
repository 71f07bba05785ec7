package db

import (
	"context"

	"github.com/NasaVasa/coinsentry/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AlertStore is the gorm-backed domain.AlertStore. Per the availability
// trade-off, I/O failures are logged here and surfaced as false/empty results
// rather than errors; the engine degrades instead of crashing.
type AlertStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewAlertStore(db *gorm.DB, logger *zap.Logger) *AlertStore {
	return &AlertStore{db: db, logger: logger}
}

func (s *AlertStore) Create(ctx context.Context, owner int64, asset domain.Asset, threshold decimal.Decimal, direction domain.Direction, locale string) (*domain.Alert, bool) {
	model := alertModel{
		AlertID:   uuid.NewString(),
		OwnerID:   owner,
		Asset:     string(asset),
		Threshold: threshold.String(),
		Direction: string(direction),
		Status:    string(domain.StatusActive),
		Locale:    locale,
	}
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		s.logger.Error("failed to create alert", zap.Int64("owner_id", owner), zap.Error(err))
		return nil, false
	}
	alert, err := mapAlertToDomain(model)
	if err != nil {
		s.logger.Error("failed to map created alert", zap.String("alert_id", model.AlertID), zap.Error(err))
		return nil, false
	}
	s.logger.Info("alert created",
		zap.String("alert_id", alert.AlertID),
		zap.Int64("owner_id", owner),
		zap.String("asset", string(asset)),
		zap.String("direction", string(direction)),
		zap.String("threshold", threshold.String()),
	)
	return alert, true
}

func (s *AlertStore) GetByID(ctx context.Context, alertID string) (*domain.Alert, bool) {
	var model alertModel
	if err := s.db.WithContext(ctx).Where("alert_id = ?", alertID).First(&model).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			s.logger.Error("failed to get alert", zap.String("alert_id", alertID), zap.Error(err))
		}
		return nil, false
	}
	alert, err := mapAlertToDomain(model)
	if err != nil {
		s.logger.Error("failed to map alert", zap.String("alert_id", alertID), zap.Error(err))
		return nil, false
	}
	return alert, true
}

func (s *AlertStore) ListByOwner(ctx context.Context, owner int64, status *domain.Status) []domain.Alert {
	query := s.db.WithContext(ctx).Where("owner_id = ?", owner)
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}
	var models []alertModel
	if err := query.Order("id").Find(&models).Error; err != nil {
		s.logger.Error("failed to list alerts", zap.Int64("owner_id", owner), zap.Error(err))
		return nil
	}
	return s.mapAlertsToDomain(models)
}

func (s *AlertStore) ListActive(ctx context.Context) []domain.Alert {
	var models []alertModel
	if err := s.db.WithContext(ctx).Where("status = ?", string(domain.StatusActive)).Order("id").Find(&models).Error; err != nil {
		s.logger.Error("failed to list active alerts", zap.Error(err))
		return nil
	}
	return s.mapAlertsToDomain(models)
}

// SetStatus performs the transition with a guarded UPDATE: the row must
// currently hold a status from which the target is legal (or the target
// itself, making repeats idempotent). Illegal transitions and missing rows
// both report false.
func (s *AlertStore) SetStatus(ctx context.Context, alertID string, status domain.Status) bool {
	sources := domain.TransitionSources(status)
	from := make([]string, 0, len(sources))
	for _, src := range sources {
		from = append(from, string(src))
	}

	result := s.db.WithContext(ctx).
		Model(&alertModel{}).
		Where("alert_id = ? AND status IN ?", alertID, from).
		Update("status", string(status))
	if result.Error != nil {
		s.logger.Error("failed to update alert status",
			zap.String("alert_id", alertID),
			zap.String("status", string(status)),
			zap.Error(result.Error),
		)
		return false
	}
	if result.RowsAffected == 0 {
		s.logger.Warn("alert status transition rejected",
			zap.String("alert_id", alertID),
			zap.String("status", string(status)),
		)
		return false
	}
	s.logger.Info("alert status updated",
		zap.String("alert_id", alertID),
		zap.String("status", string(status)),
	)
	return true
}

func (s *AlertStore) Delete(ctx context.Context, alertID string) bool {
	result := s.db.WithContext(ctx).Where("alert_id = ?", alertID).Delete(&alertModel{})
	if result.Error != nil {
		s.logger.Error("failed to delete alert", zap.String("alert_id", alertID), zap.Error(result.Error))
		return false
	}
	return result.RowsAffected > 0
}

func (s *AlertStore) DeleteAllByOwner(ctx context.Context, owner int64) int64 {
	result := s.db.WithContext(ctx).Where("owner_id = ?", owner).Delete(&alertModel{})
	if result.Error != nil {
		s.logger.Error("failed to delete alerts", zap.Int64("owner_id", owner), zap.Error(result.Error))
		return 0
	}
	return result.RowsAffected
}

func (s *AlertStore) CountByOwner(ctx context.Context, owner int64) int64 {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&alertModel{}).
		Where("owner_id = ? AND status <> ?", owner, string(domain.StatusDeleted)).
		Count(&count).Error
	if err != nil {
		s.logger.Error("failed to count alerts", zap.Int64("owner_id", owner), zap.Error(err))
		return 0
	}
	return count
}

func (s *AlertStore) mapAlertsToDomain(models []alertModel) []domain.Alert {
	alerts := make([]domain.Alert, 0, len(models))
	for _, model := range models {
		alert, err := mapAlertToDomain(model)
		if err != nil {
			s.logger.Warn("skipping unmappable alert row", zap.String("alert_id", model.AlertID), zap.Error(err))
			continue
		}
		alerts = append(alerts, *alert)
	}
	return alerts
}

func mapAlertToDomain(model alertModel) (*domain.Alert, error) {
	threshold, err := decimal.NewFromString(model.Threshold)
	if err != nil {
		return nil, err
	}
	return &domain.Alert{
		ID:        model.ID,
		AlertID:   model.AlertID,
		OwnerID:   model.OwnerID,
		Asset:     domain.Asset(model.Asset),
		Threshold: threshold,
		Direction: domain.Direction(model.Direction),
		Status:    domain.Status(model.Status),
		Locale:    model.Locale,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}
