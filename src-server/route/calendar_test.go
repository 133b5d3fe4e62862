package route_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lifecal/src-server/calendar"
	"lifecal/src-server/route"
	syncctrl "lifecal/src-server/sync"
	"lifecal/src-server/utils"
)

type staticAPI struct {
	events []calendar.Event
}

func (s *staticAPI) ListEvents(ctx context.Context, username string) ([]calendar.Event, error) {
	return s.events, nil
}

func (s *staticAPI) CreateEvent(ctx context.Context, ev calendar.Event, username string) (calendar.Event, error) {
	return ev, nil
}

func (s *staticAPI) UpdateEvent(ctx context.Context, ev calendar.Event, username string) (calendar.Event, error) {
	return ev, nil
}

func (s *staticAPI) DeleteEvent(ctx context.Context, id string, username string) error {
	return nil
}

func (s *staticAPI) DeleteEventsByType(ctx context.Context, eventType string, username string) error {
	return nil
}

func newTestMux(t *testing.T, events []calendar.Event, now time.Time) (*http.ServeMux, *calendar.Navigator) {
	t.Helper()
	t.Setenv("USERNAME", "alice")
	t.Setenv("BACKEND_URL", "http://backend.invalid")
	t.Setenv("TIMEZONE", "UTC")
	as := utils.NewAppState()

	ctrl := syncctrl.NewController(
		syncctrl.Session{Username: "alice"},
		&staticAPI{events: events},
		calendar.NewEventStore(),
	).WithClock(func() time.Time { return now })
	ctrl.Refresh(context.Background())

	nav := calendar.NewNavigator(now)
	muxer := http.NewServeMux()
	route.Calendar(muxer, as, ctrl, nav)
	return muxer, nav
}

func TestDayEventsRoute(t *testing.T) {
	now := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	events := []calendar.Event{
		{ID: "1", Title: "Gym", EventType: "goal-fitness", StartDate: now, EndDate: now.Add(time.Hour)},
		{ID: "2", Title: "Rent", EventType: "rent", StartDate: now, EndDate: now.Add(time.Hour)},
	}
	muxer, _ := newTestMux(t, events, now)

	recorder := httptest.NewRecorder()
	muxer.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/calendar/day-events",
		strings.NewReader(`{"dayUnixUTC":1736121600}`))) // 2025-01-06 00:00 UTC

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var respBody []struct {
		ID       string `json:"id"`
		Category string `json:"category"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &respBody); err != nil {
		t.Fatal(err)
	}
	if len(respBody) != 2 {
		t.Fatalf("expected 2 occurrences, got %d", len(respBody))
	}
	// rent ranks before goal
	if respBody[0].ID != "2" || respBody[0].Category != "rent" {
		t.Errorf("expected the rent event first, got %+v", respBody[0])
	}
}

func TestHasEventRoute(t *testing.T) {
	now := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	events := []calendar.Event{
		{ID: "1", Title: "Gym", StartDate: now, EndDate: now.Add(time.Hour)},
	}
	muxer, _ := newTestMux(t, events, now)

	recorder := httptest.NewRecorder()
	muxer.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/calendar/has-event",
		strings.NewReader(`{"dayUnixUTC":1736121600}`)))
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	var respBody struct {
		HasEvent bool `json:"hasEvent"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &respBody); err != nil {
		t.Fatal(err)
	}
	if !respBody.HasEvent {
		t.Error("expected hasEvent true")
	}
}

func TestNavigateRoute(t *testing.T) {
	now := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	muxer, nav := newTestMux(t, nil, now)

	recorder := httptest.NewRecorder()
	muxer.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/calendar/navigate",
		strings.NewReader(`{"action":"next-month"}`)))
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if want := now.AddDate(0, 1, 0); !nav.FocusedDate().Equal(want) {
		t.Errorf("expected focused date %v, got %v", want, nav.FocusedDate())
	}

	recorder = httptest.NewRecorder()
	muxer.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/calendar/navigate",
		strings.NewReader(`{"action":"warp-drive"}`)))
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for an unknown action, got %d", recorder.Code)
	}
}

func TestMonthDaysRoute(t *testing.T) {
	now := time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC)
	muxer, _ := newTestMux(t, nil, now)

	recorder := httptest.NewRecorder()
	muxer.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/calendar/month-days", nil))
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	var respBody struct {
		DisplayMode string  `json:"displayMode"`
		DaysUnixUTC []int64 `json:"daysUnixUTC"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &respBody); err != nil {
		t.Fatal(err)
	}
	if respBody.DisplayMode != "month" {
		t.Errorf("expected month mode, got %s", respBody.DisplayMode)
	}
	if len(respBody.DaysUnixUTC) != 28 {
		t.Errorf("expected 28 days for Feb 2025, got %d", len(respBody.DaysUnixUTC))
	}
}

func TestCreateEventRouteValidation(t *testing.T) {
	now := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	muxer, _ := newTestMux(t, nil, now)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"missing title", `{"startDateUnixUTC":1736154000}`, http.StatusBadRequest},
		{"missing start", `{"title":"Gym"}`, http.StatusBadRequest},
		{"valid", `{"title":"Gym","startDateUnixUTC":1736154000}`, http.StatusAccepted},
		{"natural date", `{"title":"Gym","naturalDate":"tomorrow at 9am"}`, http.StatusAccepted},
	}
	for _, c := range cases {
		recorder := httptest.NewRecorder()
		muxer.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/calendar/create-event",
			strings.NewReader(c.body)))
		if recorder.Code != c.want {
			t.Errorf("%s: expected %d, got %d: %s", c.name, c.want, recorder.Code, recorder.Body.String())
		}
	}
}
