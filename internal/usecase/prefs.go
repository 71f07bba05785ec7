package usecase

import (
	"context"
	"sync"

	"github.com/NasaVasa/coinsentry/internal/domain"
	"go.uber.org/zap"
)

// PrefCache is a read-through cache of owner locale preferences, keyed by
// Telegram user ID. The notification dispatcher consults it on every send so
// a locale change applies to alerts created before the change. Updates go
// through Invalidate; the next read refetches.
type PrefCache struct {
	users         domain.UserStore
	defaultLocale string
	logger        *zap.Logger

	mu      sync.RWMutex
	locales map[int64]string
}

func NewPrefCache(users domain.UserStore, defaultLocale string, logger *zap.Logger) *PrefCache {
	return &PrefCache{
		users:         users,
		defaultLocale: defaultLocale,
		logger:        logger,
		locales:       make(map[int64]string),
	}
}

// Locale returns the owner's preferred locale, reading through to the user
// store on a miss. Store failures fall back to the default locale without
// populating the cache.
func (p *PrefCache) Locale(ctx context.Context, owner int64) string {
	p.mu.RLock()
	locale, ok := p.locales[owner]
	p.mu.RUnlock()
	if ok {
		return locale
	}

	user, err := p.users.GetByTelegramID(ctx, owner)
	if err != nil {
		if err != domain.ErrNotFound {
			p.logger.Warn("locale lookup failed", zap.Int64("owner_id", owner), zap.Error(err))
		}
		return p.defaultLocale
	}

	locale = user.Locale
	if locale == "" {
		locale = p.defaultLocale
	}
	p.mu.Lock()
	p.locales[owner] = locale
	p.mu.Unlock()
	return locale
}

func (p *PrefCache) Invalidate(owner int64) {
	p.mu.Lock()
	delete(p.locales, owner)
	p.mu.Unlock()
}
