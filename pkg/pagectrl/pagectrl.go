// Package pagectrl implements the list/search/pagination flow used by every
// admin dashboard page: filter state, single-active-field search, page
// clamping, and the mutual exclusion between the plain paginated fetch and
// the search fetch. Results are published to the mirror store so other UI
// regions can read them without refetching.
package pagectrl

import (
	"context"
	"strconv"
	"sync"

	"github.com/voyagekit/voyagekit.go/pkg/logger"
	"github.com/voyagekit/voyagekit.go/pkg/mirror"
	"github.com/voyagekit/voyagekit.go/pkg/querycache"
)

// DefaultPageSize matches the fixed 10-rows-per-page of the admin tables.
const DefaultPageSize = 10

// Page is one page of a collection plus the server-side total for the
// active filter. Total is never the length of Items.
type Page[T any] struct {
	Items []T
	Total int
}

// Source is the remote access surface a Controller drives.
type Source[T any] interface {
	List(ctx context.Context, page int) (Page[T], error)
	Query(ctx context.Context, field, value string, page int) (Page[T], error)
	Get(ctx context.Context, id string) (T, error)
}

type Config[T any] struct {
	Namespace mirror.Namespace
	Source    Source[T]
	Store     *mirror.Store
	Cache     *querycache.QueryCache

	// Precedence is the ordered list of search field names for this entity,
	// e.g. hotel > country > tier. When several filters are non-empty, only
	// the first matching field is sent; secondary filters are ignored.
	Precedence []string

	PageSize int
	Logger   logger.Logger
}

type Controller[T any] struct {
	cfg Config[T]

	mu      sync.Mutex
	filters map[string]string
	page    int
	loading bool
	lastErr error
}

func New[T any](cfg Config[T]) *Controller[T] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNoop()
	}
	return &Controller[T]{
		cfg:     cfg,
		filters: make(map[string]string),
		page:    1,
	}
}

// SetFilter updates one filter input. Any change resets to page 1.
func (c *Controller[T]) SetFilter(field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if value == "" {
		delete(c.filters, field)
	} else {
		c.filters[field] = value
	}
	c.page = 1
}

// ClearFilters returns to the unfiltered paginated view.
func (c *Controller[T]) ClearFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters = make(map[string]string)
	c.page = 1
}

// IsSearching reports whether at least one filter is non-empty.
func (c *Controller[T]) IsSearching() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _, searching := c.activeFieldLocked()
	return searching
}

// activeFieldLocked resolves the single field sent to the query endpoint:
// first non-empty filter in precedence order wins.
func (c *Controller[T]) activeFieldLocked() (field, value string, ok bool) {
	for _, f := range c.cfg.Precedence {
		if v := c.filters[f]; v != "" {
			return f, v, true
		}
	}
	return "", "", false
}

// Page returns the current page number.
func (c *Controller[T]) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// TotalPages derives the page count from the store's mirrored total.
func (c *Controller[T]) TotalPages() int {
	total := c.cfg.Store.Total(c.cfg.Namespace)
	if total <= 0 {
		return 0
	}
	return (total + c.cfg.PageSize - 1) / c.cfg.PageSize
}

// SetPage clamps n into [1, TotalPages] and records it. Before the first
// load the total is unknown and no upper clamp applies.
func (c *Controller[T]) SetPage(n int) {
	max := c.TotalPages()
	c.mu.Lock()
	defer c.mu.Unlock()
	if n < 1 {
		n = 1
	}
	if max > 0 && n > max {
		n = max
	}
	c.page = n
}

// IsLoading reports whether a Load is in flight.
func (c *Controller[T]) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the error of the most recent load, nil after a success. The
// mirrored data stays whatever was last successfully loaded either way.
func (c *Controller[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Load fetches the current view. The plain paginated lookup is enabled only
// while no filter is active, and the search lookup only while one is; exactly
// one of the two can hit the network per load, so they never race to write
// the same store slot. The search path uses a distinct operation tag for
// page 1 versus deeper pages, keeping the two key families apart the same
// way the portal split its search into two fetch instances.
func (c *Controller[T]) Load(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	page := c.page
	field, value, searching := c.activeFieldLocked()
	c.loading = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
	}()

	ns := string(c.cfg.Namespace)

	listKey := querycache.Key{
		Namespace: ns,
		Op:        "list",
		Params:    []string{strconv.Itoa(page)},
	}
	listRes, listErr := querycache.Lookup(ctx, c.cfg.Cache, listKey, !searching,
		func(ctx context.Context) (Page[T], error) {
			return c.cfg.Source.List(ctx, page)
		})

	searchOp := "search"
	if page > 1 {
		searchOp = "search-paged"
	}
	searchKey := querycache.Key{
		Namespace: ns,
		Op:        searchOp,
		Params:    []string{field, value, strconv.Itoa(page)},
	}
	searchRes, searchErr := querycache.Lookup(ctx, c.cfg.Cache, searchKey, searching,
		func(ctx context.Context) (Page[T], error) {
			return c.cfg.Source.Query(ctx, field, value, page)
		})

	res, err := listRes, listErr
	if searching {
		res, err = searchRes, searchErr
	}

	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()

	if err != nil {
		// Previous store contents stay in place; the view keeps showing
		// whatever was last successfully loaded.
		c.cfg.Logger.Error("load failed", "namespace", ns, "page", page, "err", err)
		return mirror.AllOf[T](c.cfg.Store, c.cfg.Namespace), err
	}

	c.cfg.Store.SetAll(c.cfg.Namespace, res.Data.Items)
	c.cfg.Store.SetTotal(c.cfg.Namespace, res.Data.Total)
	return res.Data.Items, nil
}

// Refresh drops the namespace's cached lookups and loads again.
func (c *Controller[T]) Refresh(ctx context.Context) ([]T, error) {
	c.cfg.Cache.Invalidate(ctx, string(c.cfg.Namespace))
	return c.Load(ctx)
}

// LoadDetail fetches one record by id and mirrors it into the namespace's
// single slot. Disabled until an id is known.
func (c *Controller[T]) LoadDetail(ctx context.Context, id string) (T, error) {
	key := querycache.Key{
		Namespace: string(c.cfg.Namespace),
		Op:        "detail",
		Params:    []string{id},
	}
	res, err := querycache.Lookup(ctx, c.cfg.Cache, key, id != "",
		func(ctx context.Context) (T, error) {
			return c.cfg.Source.Get(ctx, id)
		})
	if err != nil {
		c.mu.Lock()
		c.lastErr = err
		c.mu.Unlock()
		var zero T
		c.cfg.Logger.Error("detail load failed", "namespace", string(c.cfg.Namespace), "id", id, "err", err)
		return zero, err
	}
	c.cfg.Store.SetSingle(c.cfg.Namespace, res.Data)
	return res.Data, nil
}

// CloseDetail clears the detail slot. Must be called when a detail view
// closes so the next one never renders the previous record.
func (c *Controller[T]) CloseDetail() {
	c.cfg.Store.ClearSingle(c.cfg.Namespace)
}

// Mutate runs a create or update. On success the namespace's cached lookups
// are invalidated, so the next Load refetches, and the decoded record is
// written straight into the detail slot so an open detail view updates
// without waiting for that refetch.
func (c *Controller[T]) Mutate(ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	result, err := querycache.Mutate(ctx, c.cfg.Cache, string(c.cfg.Namespace), fn)
	if err != nil {
		var zero T
		return zero, err
	}
	c.cfg.Store.SetSingle(c.cfg.Namespace, result)
	return result, nil
}
