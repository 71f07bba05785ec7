package usecase

import (
	"context"
	"errors"

	"github.com/NasaVasa/coinsentry/internal/domain"
)

var ErrUnsupportedLocale = errors.New("unsupported locale")

// Catalog is the slice of the localization layer the user surface needs.
type Catalog interface {
	Supported(locale string) bool
}

type UserUsecase struct {
	users         domain.UserStore
	prefs         *PrefCache
	catalog       Catalog
	defaultLocale string
}

func NewUserUsecase(users domain.UserStore, prefs *PrefCache, catalog Catalog, defaultLocale string) *UserUsecase {
	return &UserUsecase{users: users, prefs: prefs, catalog: catalog, defaultLocale: defaultLocale}
}

// StartOrGetUser registers the owner on first contact. The Telegram language
// code seeds the locale preference when the catalog carries it.
func (u *UserUsecase) StartOrGetUser(ctx context.Context, telegramUserID int64, username, languageCode string) (*domain.User, error) {
	user, err := u.users.GetByTelegramID(ctx, telegramUserID)
	if err == nil {
		return user, nil
	}
	if err != domain.ErrNotFound {
		return nil, err
	}

	locale := u.defaultLocale
	if u.catalog.Supported(languageCode) {
		locale = languageCode
	}
	newUser := &domain.User{
		TelegramUserID: telegramUserID,
		Username:       username,
		Locale:         locale,
	}
	if err := u.users.Create(ctx, newUser); err != nil {
		return nil, err
	}
	return newUser, nil
}

func (u *UserUsecase) SetLocale(ctx context.Context, telegramUserID int64, locale string) error {
	if !u.catalog.Supported(locale) {
		return ErrUnsupportedLocale
	}
	if err := u.users.SetLocale(ctx, telegramUserID, locale); err != nil {
		if err == domain.ErrNotFound {
			return ErrUserNotRegistered
		}
		return err
	}
	u.prefs.Invalidate(telegramUserID)
	return nil
}
