package voyagekit

import (
	"context"

	"github.com/voyagekit/voyagekit.go/pkg/pagectrl"
)

// pageSource adapts a Collection to the controller's Source interface.
type pageSource[T any] struct {
	col *Collection[T]
}

func (s pageSource[T]) List(ctx context.Context, page int) (pagectrl.Page[T], error) {
	res, err := s.col.List(ctx, page)
	return pagectrl.Page[T]{Items: res.Data, Total: res.Total}, err
}

func (s pageSource[T]) Query(ctx context.Context, field, value string, page int) (pagectrl.Page[T], error) {
	res, err := s.col.Query(ctx, field, value, page)
	return pagectrl.Page[T]{Items: res.Data, Total: res.Total}, err
}

func (s pageSource[T]) Get(ctx context.Context, id string) (T, error) {
	return s.col.Get(ctx, id)
}

// NewController builds the dashboard-page controller for a collection,
// wired to the client's shared cache, store and logger, with the entity's
// search precedence and the standard 10-row page size.
func NewController[T any](col *Collection[T]) *pagectrl.Controller[T] {
	return pagectrl.New(pagectrl.Config[T]{
		Namespace:  col.entity.Namespace,
		Source:     pageSource[T]{col: col},
		Store:      col.client.store,
		Cache:      col.client.cache,
		Precedence: col.entity.SearchFields,
		Logger:     col.client.logger,
	})
}

// CreateIn runs a create through the controller's mutation path: the
// namespace's cached reads are invalidated and the new record lands in the
// detail slot.
func CreateIn[T any](ctx context.Context, ctrl *pagectrl.Controller[T], col *Collection[T], form *Form) (T, error) {
	return ctrl.Mutate(ctx, func(ctx context.Context) (T, error) {
		return col.Create(ctx, form)
	})
}

// UpdateIn is the update counterpart of CreateIn.
func UpdateIn[T any](ctx context.Context, ctrl *pagectrl.Controller[T], col *Collection[T], id string, form *Form) (T, error) {
	return ctrl.Mutate(ctx, func(ctx context.Context) (T, error) {
		return col.Update(ctx, id, form)
	})
}
