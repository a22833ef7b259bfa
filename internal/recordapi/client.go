package recordapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/kubb-counter/internal/core"
	"github.com/vovakirdan/kubb-counter/internal/registry"
)

// Client is a core.RecordStore backed by a remote record service.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

var _ core.RecordStore = (*Client)(nil)

func init() {
	registry.Register("http", "remote record service", func(opts registry.Options) (registry.Backend, error) {
		c, err := NewClient(opts.APIURL, opts.Timeout)
		if err != nil {
			return nil, err
		}
		return c, nil
	})
}

// NewClient creates a client for the service at baseURL.
// A timeout <= 0 leaves requests bounded only by their context.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("recordapi: invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("recordapi: base URL %q must be http or https", baseURL)
	}
	return &Client{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// FetchBests queries GET /api/records.
func (c *Client) FetchBests(ctx context.Context, player core.Player, distance core.Distance, quantity int) (core.BestsReport, error) {
	q := url.Values{}
	q.Set("playerName", string(player))
	q.Set("distance", string(distance))
	q.Set("quantity", strconv.Itoa(quantity))

	u := c.baseURL.JoinPath(RecordsPath)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return core.BestsReport{}, fmt.Errorf("recordapi: build request: %w", err)
	}

	var resp BestsResponse
	if err := c.do(req, &resp); err != nil {
		return core.BestsReport{}, err
	}
	return core.BestsReport{Bests: resp.Records, TotalGames: resp.TotalGames}, nil
}

// SubmitSession posts a summary to POST /api/sessions.
func (c *Client) SubmitSession(ctx context.Context, summary core.Summary) (string, error) {
	body, err := json.Marshal(NewSessionRequest(summary))
	if err != nil {
		return "", fmt.Errorf("recordapi: encode session: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL.JoinPath(SessionsPath).String(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("recordapi: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp SessionResponse
	if err := c.do(req, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// do sends req and decodes a 2xx JSON body into out.
// Failures map onto core.ErrUnavailable or *core.ValidationError.
func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: read response: %w", core.ErrUnavailable, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: decode response: %w", core.ErrUnavailable, err)
		}
		return nil
	}

	var apiErr ErrorResponse
	_ = json.Unmarshal(data, &apiErr)

	if resp.StatusCode == http.StatusBadRequest && len(apiErr.MissingFields) > 0 {
		return &core.ValidationError{Missing: apiErr.MissingFields}
	}

	msg := apiErr.Error
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &StatusError{Code: resp.StatusCode, Message: msg}
}

// StatusError is a non-2xx answer from the record service.
// It matches core.ErrUnavailable.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, core.ErrUnavailable) match any *StatusError.
func (e *StatusError) Is(target error) bool {
	return target == core.ErrUnavailable
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
