package usecase

import (
	"context"
	"fmt"

	"github.com/NasaVasa/coinsentry/internal/domain"
	"go.uber.org/zap"
)

// Notifier delivers a triggered-alert message to the owner. Best effort: a
// send failure is the caller's to log and ignore.
type Notifier interface {
	NotifyTriggered(ctx context.Context, alert domain.Alert, quote domain.Quote) error
}

// CheckerUsecase runs one evaluation cycle: fetch quotes for the universe,
// snapshot active alerts, flip crossed ones to triggered, then dispatch
// notifications. Status moves before the send so a failed send can never
// re-trigger on the next cycle.
type CheckerUsecase struct {
	source   domain.PriceSource
	alerts   domain.AlertStore
	notifier Notifier
	universe []domain.Asset
	logger   *zap.Logger
}

func NewCheckerUsecase(source domain.PriceSource, alerts domain.AlertStore, notifier Notifier, universe []domain.Asset, logger *zap.Logger) *CheckerUsecase {
	return &CheckerUsecase{
		source:   source,
		alerts:   alerts,
		notifier: notifier,
		universe: universe,
		logger:   logger,
	}
}

type triggerEvent struct {
	alert domain.Alert
	quote domain.Quote
}

// RunCycle executes one check cycle. A fetch failure after exhausted retries
// aborts the whole cycle before any alert is read or mutated.
func (c *CheckerUsecase) RunCycle(ctx context.Context) error {
	quotes, err := c.source.Quotes(ctx, c.universe)
	if err != nil {
		c.logger.Warn("cycle aborted: quote fetch failed", zap.Error(err))
		return fmt.Errorf("quote fetch: %w", err)
	}

	alerts := c.alerts.ListActive(ctx)
	if len(alerts) == 0 {
		c.logger.Debug("cycle complete: no active alerts")
		return nil
	}

	var fired []triggerEvent
	for _, alert := range alerts {
		quote, ok := quotes[alert.Asset]
		if !ok {
			// Market-data gap for this asset; the alert stays active
			// and gets another look next cycle.
			c.logger.Debug("no quote for alert asset, skipping",
				zap.String("alert_id", alert.AlertID),
				zap.String("asset", string(alert.Asset)),
			)
			continue
		}
		if !alert.Crossed(quote.Price) {
			continue
		}
		if !c.alerts.SetStatus(ctx, alert.AlertID, domain.StatusTriggered) {
			// Lost the transition: either the store degraded or the
			// owner changed the alert concurrently. Either way this
			// alert must not be notified.
			c.logger.Warn("could not mark alert triggered, skipping notification",
				zap.String("alert_id", alert.AlertID),
			)
			continue
		}
		fired = append(fired, triggerEvent{alert: alert, quote: quote})
	}

	for _, event := range fired {
		if err := c.notifier.NotifyTriggered(ctx, event.alert, event.quote); err != nil {
			c.logger.Warn("trigger notification failed",
				zap.String("alert_id", event.alert.AlertID),
				zap.Int64("owner_id", event.alert.OwnerID),
				zap.Error(err),
			)
		}
	}

	c.logger.Info("cycle complete",
		zap.Int("active_alerts", len(alerts)),
		zap.Int("triggered", len(fired)),
	)
	return nil
}

// Snapshot fetches current quotes for the universe outside a cycle, for the
// on-demand price command.
func (c *CheckerUsecase) Snapshot(ctx context.Context) (map[domain.Asset]domain.Quote, error) {
	return c.source.Quotes(ctx, c.universe)
}

// Universe returns the fixed asset universe in configuration order.
func (c *CheckerUsecase) Universe() []domain.Asset {
	return c.universe
}
