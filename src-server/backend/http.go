package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"lifecal/src-server/calendar"
)

// HTTPClient talks to the hosted event backend. Any non-2xx status or body
// decode failure surfaces as a wrapped error; the sync controller decides
// what to do with it (log and keep last-known state).
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) post(ctx context.Context, path string, reqBody any, respBody any) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("can't marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("can't create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}
	if respBody == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return fmt.Errorf("can't decode response body: %w", err)
	}
	return nil
}

func (c *HTTPClient) ListEvents(ctx context.Context, username string) ([]calendar.Event, error) {
	reqBody := struct {
		Username string `json:"username"`
	}{Username: username}
	var respBody []EventBody
	if err := c.post(ctx, "/calendar/get-events", reqBody, &respBody); err != nil {
		return nil, fmt.Errorf("(*HTTPClient).ListEvents: %w", err)
	}
	events := make([]calendar.Event, 0, len(respBody))
	for _, body := range respBody {
		events = append(events, body.toEvent())
	}
	return events, nil
}

func (c *HTTPClient) CreateEvent(ctx context.Context, ev calendar.Event, username string) (calendar.Event, error) {
	reqBody := struct {
		Username string    `json:"username"`
		Event    EventBody `json:"event"`
	}{Username: username, Event: toEventBody(ev)}
	var respBody EventBody
	if err := c.post(ctx, "/calendar/create-event", reqBody, &respBody); err != nil {
		return calendar.Event{}, fmt.Errorf("(*HTTPClient).CreateEvent: %w", err)
	}
	return respBody.toEvent(), nil
}

func (c *HTTPClient) UpdateEvent(ctx context.Context, ev calendar.Event, username string) (calendar.Event, error) {
	reqBody := struct {
		Username string    `json:"username"`
		Event    EventBody `json:"event"`
	}{Username: username, Event: toEventBody(ev)}
	var respBody EventBody
	if err := c.post(ctx, "/calendar/modify-event", reqBody, &respBody); err != nil {
		return calendar.Event{}, fmt.Errorf("(*HTTPClient).UpdateEvent: %w", err)
	}
	return respBody.toEvent(), nil
}

func (c *HTTPClient) DeleteEvent(ctx context.Context, id string, username string) error {
	reqBody := struct {
		Username string `json:"username"`
		ID       string `json:"id"`
	}{Username: username, ID: id}
	if err := c.post(ctx, "/calendar/delete-event", reqBody, nil); err != nil {
		return fmt.Errorf("(*HTTPClient).DeleteEvent: %w", err)
	}
	return nil
}

func (c *HTTPClient) DeleteEventsByType(ctx context.Context, eventType string, username string) error {
	reqBody := struct {
		Username  string `json:"username"`
		EventType string `json:"eventType"`
	}{Username: username, EventType: eventType}
	if err := c.post(ctx, "/calendar/delete-events-by-type", reqBody, nil); err != nil {
		return fmt.Errorf("(*HTTPClient).DeleteEventsByType: %w", err)
	}
	return nil
}
