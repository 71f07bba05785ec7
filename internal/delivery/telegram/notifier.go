package telegram

import (
	"context"
	"strings"

	"github.com/NasaVasa/coinsentry/internal/domain"
	"github.com/NasaVasa/coinsentry/internal/i18n"
	"github.com/NasaVasa/coinsentry/internal/usecase"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Notifier delivers trigger messages over Telegram. The current locale
// preference is read through the cache at send time so a language change
// applies to alerts created before it; the locale snapshotted on the alert is
// the fallback if the owner record vanished.
type Notifier struct {
	api      *tgbotapi.BotAPI
	catalog  *i18n.Catalog
	prefs    *usecase.PrefCache
	currency string
	logger   *zap.Logger
}

func NewNotifier(api *tgbotapi.BotAPI, catalog *i18n.Catalog, prefs *usecase.PrefCache, currency string, logger *zap.Logger) *Notifier {
	return &Notifier{api: api, catalog: catalog, prefs: prefs, currency: currency, logger: logger}
}

func (n *Notifier) NotifyTriggered(ctx context.Context, alert domain.Alert, quote domain.Quote) error {
	locale := n.prefs.Locale(ctx, alert.OwnerID)
	if !n.catalog.Supported(locale) {
		locale = alert.Locale
	}

	text := n.catalog.T(locale, "alert_triggered", map[string]string{
		"asset":     strings.ToUpper(string(alert.Asset)),
		"direction": n.catalog.T(locale, "direction_"+string(alert.Direction), nil),
		"threshold": alert.Threshold.String(),
		"price":     quote.Price.String(),
		"currency":  strings.ToUpper(n.currency),
	})

	n.logger.Info("sending trigger notification",
		zap.String("alert_id", alert.AlertID),
		zap.Int64("owner_id", alert.OwnerID),
		zap.String("locale", locale),
	)
	msg := tgbotapi.NewMessage(alert.OwnerID, text)
	if _, err := n.api.Send(msg); err != nil {
		n.logger.Warn("trigger notification send failed",
			zap.String("alert_id", alert.AlertID),
			zap.Int64("owner_id", alert.OwnerID),
			zap.Error(err),
		)
		return err
	}
	return nil
}
