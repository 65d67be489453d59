package voyagekit

import (
	"errors"
	"net/http"
	"time"

	"github.com/voyagekit/voyagekit.go/pkg/cache"
	"github.com/voyagekit/voyagekit.go/pkg/logger"
	"github.com/voyagekit/voyagekit.go/pkg/mirror"
	"github.com/voyagekit/voyagekit.go/pkg/querycache"
	"github.com/voyagekit/voyagekit.go/pkg/rest"
)

// Client is the entry point of the SDK. It owns the HTTP connection, the
// query cache and the mirror store; collections and controllers are built
// from it and share all three.
type Client struct {
	conn   *rest.Connection
	logger logger.Logger
	cache  *querycache.QueryCache
	store  *mirror.Store
}

type options struct {
	token      string
	timeout    time.Duration
	httpClient *http.Client
	logger     logger.Logger
	backend    cache.Cache
	freshness  time.Duration
}

type Option func(*options)

// WithToken sets the bearer token attached to every request.
func WithToken(token string) Option {
	return func(o *options) { o.token = token }
}

// WithTimeout overrides the connection's default 10s timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithHTTPClient swaps the underlying http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithLogger sets the logger shared by every layer. Defaults to a no-op.
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithCacheBackend swaps the query cache's storage, e.g. for a Redis cache
// shared between processes. Defaults to in-process memory.
func WithCacheBackend(c cache.Cache) Option {
	return func(o *options) { o.backend = c }
}

// WithFreshness overrides the 5 minute freshness window.
func WithFreshness(d time.Duration) Option {
	return func(o *options) { o.freshness = d }
}

// New creates a Client for the backend at baseURL, e.g.
// "http://localhost:5000".
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("voyagekit: base URL not set")
	}

	o := options{
		logger:    logger.NewNoop(),
		backend:   cache.NewMemory(),
		freshness: querycache.DefaultFreshness,
	}
	for _, opt := range opts {
		opt(&o)
	}

	conn := rest.New(baseURL).SetLogger(o.logger)
	if o.token != "" {
		conn.SetToken(o.token)
	}
	if o.httpClient != nil {
		conn.SetHTTPClient(o.httpClient)
	}
	if o.timeout > 0 {
		conn.SetTimeout(o.timeout)
	}

	return &Client{
		conn:   conn,
		logger: o.logger,
		cache: querycache.New(o.backend,
			querycache.WithFreshness(o.freshness),
			querycache.WithLogger(o.logger)),
		store: mirror.New(),
	}, nil
}

// Store returns the mirror store shared by every controller built from this
// client.
func (c *Client) Store() *mirror.Store { return c.store }

// Cache returns the query cache, e.g. for wiring the live feed's
// invalidation.
func (c *Client) Cache() *querycache.QueryCache { return c.cache }

func (c *Client) Hotels() *Collection[Hotel] {
	return newCollection[Hotel](c, EntityHotel)
}

func (c *Client) FoodOptions() *Collection[FoodOption] {
	return newCollection[FoodOption](c, EntityFoodOption)
}

func (c *Client) Locations() *Collection[ItineraryLocation] {
	return newCollection[ItineraryLocation](c, EntityLocation)
}

func (c *Client) Packages() *Collection[Package] {
	return newCollection[Package](c, EntityPackage)
}

func (c *Client) Bookings() *Collection[Booking] {
	return newCollection[Booking](c, EntityBooking)
}

func (c *Client) Reviews() *Collection[Review] {
	return newCollection[Review](c, EntityReview)
}
