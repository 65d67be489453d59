// Package live subscribes to the backend's admin change feed. The backend
// pushes one event per create/update/delete; the feed drops the matching
// cache namespace so the next lookup refetches instead of serving a result
// that predates the change. Reconnecting after a dropped connection is the
// caller's concern.
package live

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/voyagekit/voyagekit.go/pkg/logger"
	"github.com/voyagekit/voyagekit.go/pkg/mirror"
	"github.com/voyagekit/voyagekit.go/pkg/querycache"
)

// Event is one change notification.
type Event struct {
	Entity string `json:"entity"`
	Action string `json:"action"` // created, updated or deleted
	ID     string `json:"id"`
}

type Feed struct {
	conn   *websocket.Conn
	logger logger.Logger
}

type Option func(*Feed)

func WithLogger(l logger.Logger) Option {
	return func(f *Feed) { f.logger = l }
}

// Dial connects to the feed endpoint, e.g. "ws://host/api/admin/live".
func Dial(url string, opts ...Option) (*Feed, error) {
	dialer := *websocket.DefaultDialer
	dialer.EnableCompression = true

	header := http.Header{}
	header.Set("X-Session-ID", uuid.NewString())

	conn, _, err := dialer.Dial(url, header)
	if err != nil {
		return nil, err
	}

	f := &Feed{conn: conn, logger: logger.NewNoop()}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Run reads events until the connection drops or ctx is done, calling
// handler for each one.
func (f *Feed) Run(ctx context.Context, handler func(Event)) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			f.conn.Close()
		case <-done:
		}
	}()

	for {
		var ev Event
		if err := f.conn.ReadJSON(&ev); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		handler(ev)
	}
}

// Invalidate runs the feed and drops the cache namespace for every event
// whose entity path segment appears in namespaces.
func (f *Feed) Invalidate(ctx context.Context, qc *querycache.QueryCache, namespaces map[string]mirror.Namespace) error {
	return f.Run(ctx, func(ev Event) {
		ns, ok := namespaces[ev.Entity]
		if !ok {
			f.logger.Debug("ignoring event for unknown entity", "entity", ev.Entity)
			return
		}
		qc.Invalidate(ctx, string(ns))
		f.logger.Debug("invalidated namespace",
			"namespace", string(ns), "action", ev.Action, "id", ev.ID)
	})
}

// Close sends a proper close frame before tearing the connection down.
func (f *Feed) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := f.conn.WriteMessage(websocket.CloseMessage, msg); err != nil {
		f.conn.Close()
		return err
	}
	return f.conn.Close()
}
