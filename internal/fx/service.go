package fx

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"
)

// Service coordinates rate refreshes against the shared store. Scheduled and
// forced refreshes go through the same path; concurrent forced refreshes are
// collapsed into a single provider call.
type Service struct {
	provider Provider
	store    *Store
	cache    *Cache
	logger   *slog.Logger
	group    singleflight.Group
}

// NewService constructs the refresh service. cache may be nil.
func NewService(provider Provider, store *Store, cache *Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{provider: provider, store: store, cache: cache, logger: logger}
}

// Store exposes the backing rate store.
func (s *Service) Store() *Store { return s.store }

// Bootstrap seeds the store from the cached snapshot, if one exists. A miss
// is not an error: the store keeps failing closed until the first refresh.
func (s *Service) Bootstrap(ctx context.Context) error {
	table, ok, err := s.cache.Load(ctx)
	if err != nil {
		return fmt.Errorf("fx: load cached table: %w", err)
	}
	if !ok {
		return nil
	}
	version := s.store.Replace(table)
	s.logger.Info("rate table restored from cache",
		slog.Int("currencies", len(table.Currencies())),
		slog.Uint64("version", version))
	return nil
}

// AutoRefresh refreshes the table on a fixed cadence until ctx is cancelled.
// observe may be nil; it receives the outcome of every attempt.
func (s *Service) AutoRefresh(ctx context.Context, every time.Duration, observe func(error)) {
	if every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, err := s.Refresh(ctx)
			if observe != nil {
				observe(err)
			}
			if err != nil {
				s.logger.Warn("scheduled rate refresh failed", slog.Any("error", err))
			}
		}
	}
}

// Refresh fetches a fresh table and installs it as one atomic replacement.
// On provider failure the previous table stays in place.
func (s *Service) Refresh(ctx context.Context) (Table, error) {
	v, err, _ := s.group.Do("refresh", func() (interface{}, error) {
		table, err := s.provider.Fetch(ctx)
		if err != nil {
			return Table{}, err
		}
		version := s.store.Replace(table)
		if err := s.cache.Save(ctx, table); err != nil {
			s.logger.Warn("persist rate table", slog.Any("error", err))
		}
		s.logger.Info("rate table refreshed",
			slog.Int("currencies", len(table.Currencies())),
			slog.Uint64("version", version))
		return table, nil
	})
	if err != nil {
		return Table{}, err
	}
	return v.(Table), nil
}
