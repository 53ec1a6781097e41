package console

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/staffdesk/workforce-console/internal"
)

// Record is one backend entity as the console sees it: an untyped key-value
// record with known fields used for rendering and form binding.
type Record map[string]interface{}

// Str renders a field for display. Numbers decoded from JSON arrive as
// float64; integral values are printed without a fraction.
func (r Record) Str(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Int64 reads a numeric field; ok is false when absent or non-numeric.
func (r Record) Int64(key string) (int64, bool) {
	v, ok := r[key].(float64)
	if !ok {
		return 0, false
	}
	return int64(v), true
}

// Result is the parsed body of a mutation response. The contract is fixed:
// a "message" field marks success, an "error" field marks a backend-reported
// failure. Notification kind is branched purely on the presence of "error".
type Result map[string]interface{}

func (res Result) Message() string {
	if m, ok := res["message"].(string); ok {
		return m
	}
	return ""
}

func (res Result) ErrorText() string {
	if e, ok := res["error"].(string); ok {
		return e
	}
	return ""
}

func (res Result) IsError() bool {
	_, ok := res["error"]
	return ok
}

// Client is the one place console code talks HTTP from. Every call decodes
// the JSON body regardless of HTTP status; callers inspect the payload shape.
// There is no retry: every failure is terminal for that single operation.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
		logger:     logger,
	}
}

// FetchList retrieves a full collection. A backend that answers with an
// error-shaped object instead of an array surfaces as an external error.
func (c *Client) FetchList(ctx context.Context, path string) ([]Record, error) {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var records []Record
	if err := json.Unmarshal(body, &records); err == nil {
		return records, nil
	}

	var res Result
	if err := json.Unmarshal(body, &res); err == nil && res.IsError() {
		return nil, internal.NewExternalError(res.ErrorText(), nil)
	}
	return nil, internal.NewExternalError("unexpected response from workforce API", nil)
}

// FetchOne retrieves a single record, always fresh; list snapshots are never
// reused for editing.
func (c *Client) FetchOne(ctx context.Context, path string) (Record, error) {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var record Record
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, internal.NewExternalError("unexpected response from workforce API", err)
	}
	if errText, ok := record["error"].(string); ok {
		return nil, internal.NewExternalError(errText, nil)
	}
	return record, nil
}

// Send issues a POST or PUT carrying a JSON payload.
func (c *Client) Send(ctx context.Context, path, method string, payload interface{}) (Result, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, internal.NewInternalError("failed to encode payload", err)
	}

	body, err := c.do(ctx, method, path, encoded)
	if err != nil {
		return nil, err
	}
	return c.decodeResult(body)
}

// Remove issues a DELETE.
func (c *Client) Remove(ctx context.Context, path string) (Result, error) {
	body, err := c.do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return nil, err
	}
	return c.decodeResult(body)
}

func (c *Client) decodeResult(body []byte) (Result, error) {
	var res Result
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, internal.NewExternalError("unexpected response from workforce API", err)
	}
	return res, nil
}

// do is the single transport guard: every request, timeout, and read error
// funnels through here so failures surface uniformly.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	ctx, cancel := internal.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reqBody *bytes.Buffer
	if payload != nil {
		reqBody = bytes.NewBuffer(payload)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, internal.NewInternalError("failed to build request", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("workforce API unreachable", "method", method, "path", path, "error", err)
		return nil, internal.NewExternalError("could not reach workforce API", err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, internal.NewExternalError("could not read workforce API response", err)
	}

	c.logger.Debug("workforce API call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
	)
	return buf.Bytes(), nil
}
