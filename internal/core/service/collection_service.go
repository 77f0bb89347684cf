package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/greenfield-farms/farm-manager/internal/core/domain"
	"github.com/greenfield-farms/farm-manager/internal/core/ports"
)

// CollectionService reads and writes one collection through its row store.
// Writes are never applied to anything held by the caller: a successful
// Submit is followed by an explicit Reload.
type CollectionService[T any] struct {
	name   string
	store  ports.RowStore[T]
	reload ports.Query
	log    zerolog.Logger
}

// NewCollectionService returns a service whose Reload runs reloadQuery.
func NewCollectionService[T any](name string, store ports.RowStore[T], reloadQuery ports.Query, log zerolog.Logger) *CollectionService[T] {
	return &CollectionService[T]{
		name:   name,
		store:  store,
		reload: reloadQuery,
		log:    log.With().Str("collection", name).Logger(),
	}
}

func (s *CollectionService[T]) Name() string { return s.name }

func (s *CollectionService[T]) List(ctx context.Context, q ports.Query) ([]T, error) {
	if len(q.Joins) == 0 {
		q.Joins = s.reload.Joins
	}
	if q.SortBy == "" {
		q.SortBy, q.Desc = s.reload.SortBy, s.reload.Desc
	}
	rows, err := s.store.Select(ctx, q)
	if err != nil {
		s.log.Error().Err(err).Msg("select failed")
		return nil, err
	}
	return rows, nil
}

// Reload fetches the whole collection, replacing whatever the caller held.
func (s *CollectionService[T]) Reload(ctx context.Context) ([]T, error) {
	return s.List(ctx, s.reload)
}

// Submit performs a single write and reports its outcome.
func (s *CollectionService[T]) Submit(ctx context.Context, w ports.Write[T]) ports.WriteResult[T] {
	var (
		row T
		err error
	)
	switch w.Kind {
	case ports.WriteCreate:
		row, err = s.store.Insert(ctx, w.Row)
	case ports.WriteUpdate:
		if w.ID == "" {
			err = fmt.Errorf("%w: id is required", domain.ErrValidation)
			break
		}
		row, err = s.store.Update(ctx, w.ID, w.Row)
	case ports.WriteDelete:
		if w.ID == "" {
			err = fmt.Errorf("%w: id is required", domain.ErrValidation)
			break
		}
		err = s.store.Delete(ctx, w.ID)
	default:
		err = fmt.Errorf("%w: unknown write %q", domain.ErrValidation, w.Kind)
	}

	if err != nil {
		s.log.Error().Err(err).Str("op", string(w.Kind)).Str("id", w.ID).Msg("write failed")
		return ports.WriteResult[T]{Err: err}
	}

	s.log.Info().Str("op", string(w.Kind)).Str("id", w.ID).Msg("write committed")
	return ports.WriteResult[T]{OK: true, Row: row}
}
