package subscriber

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/srgjo27/seat_reservation/internal/core/domain"
)

const DefaultReconnectDelay = 2 * time.Second

// BookingError is a rejected booking as reported by the server.
type BookingError struct {
	Status    int    `json:"-"`
	Message   string `json:"message"`
	Code      string `json:"code"`
	Retryable bool   `json:"retryable"`
}

func (e *BookingError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("booking rejected (%d %s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("booking rejected (%d): %s", e.Status, e.Message)
}

func (e *BookingError) Unwrap() error {
	switch e.Status {
	case http.StatusConflict:
		return domain.ErrSeatConflict
	case http.StatusNotFound:
		return domain.ErrSeatNotFound
	case http.StatusBadRequest:
		return domain.ErrInvalidRequest
	case http.StatusServiceUnavailable:
		return domain.ErrStoreUnavailable
	}
	return nil
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	dialer     *websocket.Dialer
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		dialer:     websocket.DefaultDialer,
	}
}

// Snapshot fetches the current state of every seat.
func (c *Client) Snapshot(ctx context.Context) ([]domain.SeatEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/seats", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seats: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch seats: unexpected status %d", resp.StatusCode)
	}

	var seats []domain.SeatEvent
	if err := json.NewDecoder(resp.Body).Decode(&seats); err != nil {
		return nil, fmt.Errorf("failed to decode seats: %w", err)
	}

	return seats, nil
}

func (c *Client) Book(ctx context.Context, seatID int64, userID, strategy string) (*domain.SeatEvent, error) {
	payload, err := json.Marshal(map[string]any{
		"seatId":   seatID,
		"userId":   userID,
		"strategy": strategy,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/bookings", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send booking: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bookingErr := &BookingError{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(bookingErr); err != nil || bookingErr.Message == "" {
			bookingErr.Message = fmt.Sprintf("request failed (%d)", resp.StatusCode)
		}
		return nil, bookingErr
	}

	var seat domain.SeatEvent
	if err := json.NewDecoder(resp.Body).Decode(&seat); err != nil {
		return nil, fmt.Errorf("failed to decode booking: %w", err)
	}

	return &seat, nil
}

// Subscribe streams seat events to fn until ctx is cancelled or the
// connection drops.
func (c *Client) Subscribe(ctx context.Context, fn func(domain.SeatEvent)) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	return readEvents(ctx, conn, fn)
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	wsURL, err := c.streamURL()
	if err != nil {
		return nil, err
	}

	conn, _, err := c.dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", wsURL, err)
	}

	return conn, nil
}

func readEvents(ctx context.Context, conn *websocket.Conn, fn func(domain.SeatEvent)) error {
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	for {
		var event domain.SeatEvent
		if err := conn.ReadJSON(&event); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("seat stream closed: %w", err)
		}

		fn(event)
	}
}

// WatchHandlers are optional callbacks for Watch. Seeded runs after every
// snapshot load, including reconnects; Changed runs after each event that
// changed the view.
type WatchHandlers struct {
	Seeded  func(seats []domain.SeatEvent)
	Changed func(event domain.SeatEvent)
}

// Watch keeps a view current: it seeds from a snapshot, follows the stream,
// and starts over after delay whenever the stream drops.
func (c *Client) Watch(ctx context.Context, view *SeatView, delay time.Duration, handlers WatchHandlers) error {
	if delay <= 0 {
		delay = DefaultReconnectDelay
	}

	for {
		err := c.watchOnce(ctx, view, handlers)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

// watchOnce connects before taking the snapshot so no commit falls between
// the two; events already covered by the snapshot fail the version check.
func (c *Client) watchOnce(ctx context.Context, view *SeatView, handlers WatchHandlers) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	snapshot, err := c.Snapshot(ctx)
	if err != nil {
		return err
	}
	view.Seed(snapshot)

	if handlers.Seeded != nil {
		handlers.Seeded(view.Seats())
	}

	return readEvents(ctx, conn, func(event domain.SeatEvent) {
		if view.Apply(event) && handlers.Changed != nil {
			handlers.Changed(event)
		}
	})
}

func (c *Client) streamURL() (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", c.baseURL, err)
	}

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws/seats"

	return u.String(), nil
}
