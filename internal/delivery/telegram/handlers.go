package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/NasaVasa/coinsentry/internal/domain"
	"github.com/NasaVasa/coinsentry/internal/i18n"
	"github.com/NasaVasa/coinsentry/internal/usecase"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handlers struct {
	userUC   *usecase.UserUsecase
	alertUC  *usecase.AlertUsecase
	checker  *usecase.CheckerUsecase
	prefs    *usecase.PrefCache
	catalog  *i18n.Catalog
	currency string
	maxAlert int
	logger   *zap.Logger
}

func NewHandlers(
	userUC *usecase.UserUsecase,
	alertUC *usecase.AlertUsecase,
	checker *usecase.CheckerUsecase,
	prefs *usecase.PrefCache,
	catalog *i18n.Catalog,
	currency string,
	maxAlert int,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		userUC:   userUC,
		alertUC:  alertUC,
		checker:  checker,
		prefs:    prefs,
		catalog:  catalog,
		currency: currency,
		maxAlert: maxAlert,
		logger:   logger,
	}
}

func (h *Handlers) HandleUpdate(ctx context.Context, api *tgbotapi.BotAPI, update tgbotapi.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	if update.Message.IsCommand() {
		h.handleCommand(ctx, api, update)
	}
}

func (h *Handlers) handleCommand(ctx context.Context, api *tgbotapi.BotAPI, update tgbotapi.Update) {
	command := update.Message.Command()
	args := update.Message.CommandArguments()
	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	h.logger.Info("telegram command received",
		zap.Int64("chat_id", chatID),
		zap.Int64("telegram_user_id", userID),
		zap.String("command", command),
	)

	locale := h.prefs.Locale(ctx, userID)

	switch command {
	case "start":
		user, err := h.userUC.StartOrGetUser(ctx, userID, update.Message.From.UserName, update.Message.From.LanguageCode)
		if err != nil {
			h.logger.Warn("start command failed", zap.Int64("telegram_user_id", userID), zap.Error(err))
			h.reply(api, chatID, h.catalog.T(locale, "error_general", nil))
			return
		}
		h.reply(api, chatID, h.catalog.T(user.Locale, "start", map[string]string{"help": h.helpText(user.Locale)}))
	case "help":
		h.reply(api, chatID, h.helpText(locale))
	case "alert":
		h.handleCreateAlert(ctx, api, chatID, userID, locale, args)
	case "alerts":
		h.handleListAlerts(ctx, api, chatID, userID, locale)
	case "pause":
		h.handleTransition(ctx, api, chatID, userID, locale, args, h.alertUC.PauseAlert, "alert_paused")
	case "resume":
		h.handleTransition(ctx, api, chatID, userID, locale, args, h.alertUC.ResumeAlert, "alert_resumed")
	case "delete":
		h.handleTransition(ctx, api, chatID, userID, locale, args, h.alertUC.DeleteAlert, "alert_deleted")
	case "clear":
		count := h.alertUC.ClearAlerts(ctx, userID)
		h.reply(api, chatID, h.catalog.T(locale, "alerts_cleared", map[string]string{"count": strconv.FormatInt(count, 10)}))
	case "price":
		h.handlePrice(ctx, api, chatID, locale)
	case "language":
		h.handleLanguage(ctx, api, chatID, userID, locale, args)
	}
}

func (h *Handlers) handleCreateAlert(ctx context.Context, api *tgbotapi.BotAPI, chatID, userID int64, locale, args string) {
	asset, direction, threshold, err := ParseAlertArgs(args)
	if err != nil {
		h.reply(api, chatID, h.catalog.T(locale, "alert_usage", nil))
		return
	}
	alert, err := h.alertUC.CreateAlert(ctx, userID, asset, direction, threshold)
	if err != nil {
		h.logger.Warn("alert create failed", zap.Int64("telegram_user_id", userID), zap.Error(err))
		h.reply(api, chatID, h.alertErrorMessage(locale, err))
		return
	}
	h.reply(api, chatID, h.catalog.T(locale, "alert_created", map[string]string{
		"asset":     strings.ToUpper(string(alert.Asset)),
		"direction": h.catalog.T(locale, "direction_"+string(alert.Direction), nil),
		"threshold": alert.Threshold.String(),
		"currency":  strings.ToUpper(h.currency),
		"id":        alert.AlertID,
	}))
}

func (h *Handlers) handleListAlerts(ctx context.Context, api *tgbotapi.BotAPI, chatID, userID int64, locale string) {
	alerts := h.alertUC.ListAlerts(ctx, userID)
	visible := make([]domain.Alert, 0, len(alerts))
	for _, alert := range alerts {
		if alert.Status != domain.StatusDeleted {
			visible = append(visible, alert)
		}
	}
	if len(visible) == 0 {
		h.reply(api, chatID, h.catalog.T(locale, "alerts_empty", nil))
		return
	}
	var builder strings.Builder
	builder.WriteString(h.catalog.T(locale, "alerts_header", nil))
	for _, alert := range visible {
		builder.WriteString("\n")
		builder.WriteString(h.catalog.T(locale, "alerts_line", map[string]string{
			"id":        alert.AlertID,
			"status":    string(alert.Status),
			"asset":     strings.ToUpper(string(alert.Asset)),
			"direction": h.catalog.T(locale, "direction_"+string(alert.Direction), nil),
			"threshold": alert.Threshold.String(),
			"currency":  strings.ToUpper(h.currency),
		}))
	}
	h.reply(api, chatID, builder.String())
}

func (h *Handlers) handleTransition(ctx context.Context, api *tgbotapi.BotAPI, chatID, userID int64, locale, args string, op func(context.Context, int64, string) error, successKey string) {
	alertID, err := ParseAlertID(args)
	if err != nil {
		h.reply(api, chatID, h.catalog.T(locale, "alert_not_found", nil))
		return
	}
	if err := op(ctx, userID, alertID); err != nil {
		h.reply(api, chatID, h.alertErrorMessage(locale, err))
		return
	}
	h.reply(api, chatID, h.catalog.T(locale, successKey, nil))
}

func (h *Handlers) handlePrice(ctx context.Context, api *tgbotapi.BotAPI, chatID int64, locale string) {
	quotes, err := h.checker.Snapshot(ctx)
	if err != nil {
		h.logger.Warn("price snapshot failed", zap.Error(err))
		h.reply(api, chatID, h.catalog.T(locale, "price_unavailable", nil))
		return
	}
	var builder strings.Builder
	builder.WriteString(h.catalog.T(locale, "price_header", map[string]string{"currency": strings.ToUpper(h.currency)}))
	for _, asset := range h.checker.Universe() {
		quote, ok := quotes[asset]
		if !ok {
			continue
		}
		builder.WriteString("\n")
		builder.WriteString(h.catalog.T(locale, "price_line", map[string]string{
			"asset": strings.ToUpper(string(asset)),
			"price": quote.Price.String(),
		}))
	}
	h.reply(api, chatID, builder.String())
}

func (h *Handlers) handleLanguage(ctx context.Context, api *tgbotapi.BotAPI, chatID, userID int64, locale, args string) {
	requested, err := ParseLocaleArg(args)
	if err != nil {
		h.reply(api, chatID, h.catalog.T(locale, "language_usage", map[string]string{
			"locales": strings.Join(h.catalog.Locales(), "|"),
		}))
		return
	}
	if err := h.userUC.SetLocale(ctx, userID, requested); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUnsupportedLocale):
			h.reply(api, chatID, h.catalog.T(locale, "language_usage", map[string]string{
				"locales": strings.Join(h.catalog.Locales(), "|"),
			}))
		case errors.Is(err, usecase.ErrUserNotRegistered):
			h.reply(api, chatID, h.catalog.T(locale, "not_registered", nil))
		default:
			h.logger.Warn("language change failed", zap.Int64("telegram_user_id", userID), zap.Error(err))
			h.reply(api, chatID, h.catalog.T(locale, "error_general", nil))
		}
		return
	}
	// confirm in the new language
	h.reply(api, chatID, h.catalog.T(requested, "language_set", nil))
}

func (h *Handlers) alertErrorMessage(locale string, err error) string {
	switch {
	case errors.Is(err, usecase.ErrUserNotRegistered):
		return h.catalog.T(locale, "not_registered", nil)
	case errors.Is(err, usecase.ErrUnknownAsset):
		return h.catalog.T(locale, "alert_unknown_asset", map[string]string{"assets": h.assetList()})
	case errors.Is(err, domain.ErrInvalidDirection):
		return h.catalog.T(locale, "alert_invalid_direction", nil)
	case errors.Is(err, usecase.ErrInvalidThreshold):
		return h.catalog.T(locale, "alert_invalid_threshold", nil)
	case errors.Is(err, usecase.ErrTooManyAlerts):
		return h.catalog.T(locale, "alert_limit_reached", map[string]string{"max": strconv.Itoa(h.maxAlert)})
	case errors.Is(err, usecase.ErrAlertNotFound):
		return h.catalog.T(locale, "alert_not_found", nil)
	case errors.Is(err, usecase.ErrBadTransition):
		return h.catalog.T(locale, "alert_bad_transition", nil)
	default:
		return h.catalog.T(locale, "error_general", nil)
	}
}

func (h *Handlers) helpText(locale string) string {
	return h.catalog.T(locale, "help", map[string]string{
		"assets":   h.assetList(),
		"currency": strings.ToUpper(h.currency),
	})
}

func (h *Handlers) assetList() string {
	assets := h.checker.Universe()
	names := make([]string, 0, len(assets))
	for _, asset := range assets {
		names = append(names, string(asset))
	}
	return strings.Join(names, ", ")
}

func (h *Handlers) reply(api *tgbotapi.BotAPI, chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := api.Send(msg); err != nil {
		h.logger.Warn("failed to send reply", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
