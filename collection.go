package voyagekit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/buger/jsonparser"
)

// DefaultPickerLimit caps unpaginated picker results when the caller passes
// no limit.
const DefaultPickerLimit = 50

// ListResult is one page of records plus the server-side total for the
// active filter. Total is the server's count, never len(Data).
type ListResult[T any] struct {
	Data  []T
	Total int
}

// Collection binds an Entity to its record type and exposes the remote
// operations of that entity's REST surface.
type Collection[T any] struct {
	client *Client
	entity Entity
}

func newCollection[T any](c *Client, e Entity) *Collection[T] {
	return &Collection[T]{client: c, entity: e}
}

func (col *Collection[T]) Entity() Entity { return col.entity }

func (col *Collection[T]) base() string {
	return "/api/admin/" + col.entity.Name
}

// List fetches one page of the unfiltered collection. Pages are 1-based;
// anything below 1 is treated as page 1.
func (col *Collection[T]) List(ctx context.Context, page int) (ListResult[T], error) {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))

	body, err := col.client.conn.Get(ctx, col.base(), q)
	if err != nil {
		return ListResult[T]{}, err
	}
	return decodeList[T](body, col.entity.TotalKey)
}

// Query fetches one page filtered by a single field. The backend accepts
// exactly one field per request.
func (col *Collection[T]) Query(ctx context.Context, field, value string, page int) (ListResult[T], error) {
	if field == "" {
		return ListResult[T]{}, errors.New("voyagekit: query field required")
	}
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set(field, value)
	q.Set("page", strconv.Itoa(page))

	body, err := col.client.conn.Get(ctx, col.base()+"/query", q)
	if err != nil {
		return ListResult[T]{}, err
	}
	return decodeList[T](body, col.entity.TotalKey)
}

// Get fetches one record by id. The detail envelope is normalized before
// decoding, see unwrapDetail.
func (col *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if id == "" {
		return zero, errors.New("voyagekit: id required")
	}

	body, err := col.client.conn.Get(ctx, col.base()+"/"+url.PathEscape(id), nil)
	if err != nil {
		return zero, err
	}
	return decodeDetail[T](body)
}

// Picker fetches the lightweight unpaginated typeahead list backing
// multi-select dialogs. An empty query returns the server's default set.
func (col *Collection[T]) Picker(ctx context.Context, query string, limit int) ([]T, error) {
	if limit <= 0 {
		limit = DefaultPickerLimit
	}
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))

	body, err := col.client.conn.Get(ctx, col.base()+"/picker", q)
	if err != nil {
		return nil, err
	}

	data, _, _, err := jsonparser.Get(body, "data")
	if err != nil {
		return nil, fmt.Errorf("voyagekit: picker envelope: %w", err)
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("voyagekit: decode picker: %w", err)
	}
	return items, nil
}

// Create submits a multipart form to the entity's create endpoint and
// returns the decoded record.
func (col *Collection[T]) Create(ctx context.Context, form *Form) (T, error) {
	var zero T
	body, contentType, err := form.encode()
	if err != nil {
		return zero, err
	}

	path := col.base() + "/create-" + col.entity.Name
	resp, err := col.client.conn.Do(ctx, http.MethodPost, path, nil, body, contentType)
	if err != nil {
		return zero, err
	}
	return decodeDetail[T](resp)
}

// Update submits a multipart form to the entity's update endpoint and
// returns the decoded record.
func (col *Collection[T]) Update(ctx context.Context, id string, form *Form) (T, error) {
	var zero T
	if id == "" {
		return zero, errors.New("voyagekit: id required")
	}
	body, contentType, err := form.encode()
	if err != nil {
		return zero, err
	}

	path := col.base() + "/update-" + col.entity.Name + "/" + url.PathEscape(id)
	resp, err := col.client.conn.Do(ctx, http.MethodPut, path, nil, body, contentType)
	if err != nil {
		return zero, err
	}
	return decodeDetail[T](resp)
}

// decodeList parses the {data: [...], total<Entity>: n} list envelope. The
// total key differs per entity, so it is read with jsonparser instead of a
// static struct.
func decodeList[T any](body []byte, totalKey string) (ListResult[T], error) {
	var res ListResult[T]

	data, _, _, err := jsonparser.Get(body, "data")
	if err != nil {
		return res, fmt.Errorf("voyagekit: list envelope: %w", err)
	}
	if err := json.Unmarshal(data, &res.Data); err != nil {
		return res, fmt.Errorf("voyagekit: decode list: %w", err)
	}

	total, err := jsonparser.GetInt(body, totalKey)
	if err != nil {
		return res, fmt.Errorf("voyagekit: list envelope missing %q: %w", totalKey, err)
	}
	res.Total = int(total)
	return res, nil
}

func decodeDetail[T any](body []byte) (T, error) {
	var zero T
	raw, err := unwrapDetail(body)
	if err != nil {
		return zero, err
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, fmt.Errorf("voyagekit: decode detail: %w", err)
	}
	return v, nil
}
