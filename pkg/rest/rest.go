// Package rest is the low-level HTTP layer of the SDK. It owns the base URL,
// auth token and http.Client, and maps non-2xx responses to *APIError.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/voyagekit/voyagekit.go/pkg/logger"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// Connection makes HTTP calls against a single backend host.
type Connection struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     logger.Logger
}

func New(baseURL string) *Connection {
	return &Connection{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger.NewNoop(),
	}
}

func (c *Connection) SetTimeout(timeout time.Duration) *Connection {
	c.httpClient.Timeout = timeout
	return c
}

func (c *Connection) SetHTTPClient(client *http.Client) *Connection {
	c.httpClient = client
	return c
}

func (c *Connection) SetToken(token string) *Connection {
	c.token = token
	return c
}

func (c *Connection) SetLogger(l logger.Logger) *Connection {
	c.logger = l
	return c
}

func (c *Connection) BaseURL() string {
	return c.baseURL
}

// Get issues a GET for path with the given query and returns the raw body.
func (c *Connection) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.Do(ctx, http.MethodGet, path, query, nil, "")
}

// GetJSON issues a GET and decodes the body into dest.
func (c *Connection) GetJSON(ctx context.Context, path string, query url.Values, dest any) error {
	body, err := c.Get(ctx, path, query)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, dest)
}

// Do builds and executes one request. body may be nil; contentType is only
// set when body is non-nil.
func (c *Connection) Do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	if body == nil {
		body = http.NoBody
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return c.makeRequest(req)
}

func (c *Connection) makeRequest(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return respBytes, nil
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Method:     req.Method,
		Path:       req.URL.Path,
		Message:    errorMessage(respBytes),
	}
	c.logger.Debug("request failed",
		"method", req.Method, "path", req.URL.Path, "status", resp.StatusCode)
	return nil, apiErr
}

// errorMessage pulls a human-readable message out of an error body. The
// backend is inconsistent here too: some handlers use {"error": ...},
// others {"message": ...}.
func errorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}

// EncodeMultipart writes fields and files into a multipart body and returns
// the body with its content type.
func EncodeMultipart(fields map[string]string, files []File) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return nil, "", err
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

// File is one attachment in a multipart submission.
type File struct {
	Field   string
	Name    string
	Content io.Reader
}
