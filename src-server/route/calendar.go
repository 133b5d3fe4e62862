package route

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"lifecal/src-server/calendar"
	"lifecal/src-server/sync"
	"lifecal/src-server/utils"
)

func Calendar(muxer *http.ServeMux, as *utils.AppState, ctrl *sync.Controller, nav *calendar.Navigator) {
	type OneOccurrenceRespBody struct {
		ID               string   `json:"id"`
		Title            string   `json:"title"`
		Description      string   `json:"description"`
		EventType        string   `json:"eventType"`
		Category         string   `json:"category"`
		Recurrence       string   `json:"recurrence"`
		Derived          bool     `json:"derived"`
		Seq              int      `json:"seq"`
		StartDateUnixUTC int64    `json:"startDateUnixUTC"`
		EndDateUnixUTC   int64    `json:"endDateUnixUTC"`
		InvitedFriends   []string `json:"invitedFriends,omitempty"`
	}

	occurrenceRespBody := func(occ calendar.Occurrence) OneOccurrenceRespBody {
		return OneOccurrenceRespBody{
			ID:               occ.MasterID,
			Title:            occ.Title,
			Description:      occ.Description,
			EventType:        occ.EventType,
			Category:         calendar.CategoryOf(occ.EventType).String(),
			Recurrence:       occ.Recurrence.String(),
			Derived:          occ.Derived,
			Seq:              occ.Seq,
			StartDateUnixUTC: occ.Start.UTC().Unix(),
			EndDateUnixUTC:   occ.End.UTC().Unix(),
			InvitedFriends:   occ.InvitedFriends,
		}
	}

	type DayReqBody struct {
		DayUnixUTC int64 `json:"dayUnixUTC"`
	}

	// ordered occurrences overlapping one day
	muxer.HandleFunc("POST /calendar/day-events", LogMiddleware(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			var reqBody DayReqBody
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid request body"))
				return
			}
			if reqBody.DayUnixUTC == 0 {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Please provide a day"))
				return
			}
			day := time.Unix(reqBody.DayUnixUTC, 0).In(as.Config.GetLocation())

			respBody := make([]OneOccurrenceRespBody, 0)
			for _, occ := range ctrl.OccurrencesOnDay(day) {
				respBody = append(respBody, occurrenceRespBody(occ))
			}
			respBodyJson, err := json.Marshal(respBody)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't marshal response body"))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write(respBodyJson)
		}))

	// whether any occurrence touches one day; drives the month-grid dots
	muxer.HandleFunc("POST /calendar/has-event", LogMiddleware(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			var reqBody DayReqBody
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid request body"))
				return
			}
			if reqBody.DayUnixUTC == 0 {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Please provide a day"))
				return
			}
			day := time.Unix(reqBody.DayUnixUTC, 0).In(as.Config.GetLocation())

			respBodyJson, err := json.Marshal(struct {
				HasEvent bool `json:"hasEvent"`
			}{HasEvent: ctrl.HasEvent(day)})
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't marshal response body"))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write(respBodyJson)
		}))

	// the navigator's current window
	muxer.HandleFunc("GET /calendar/month-days", LogMiddleware(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			days := nav.DaysInCurrentMonth()
			daysUnix := make([]int64, 0, len(days))
			for _, day := range days {
				daysUnix = append(daysUnix, day.UTC().Unix())
			}
			respBodyJson, err := json.Marshal(struct {
				FocusedDateUnixUTC int64   `json:"focusedDateUnixUTC"`
				DisplayMode        string  `json:"displayMode"`
				DaysUnixUTC        []int64 `json:"daysUnixUTC"`
			}{
				FocusedDateUnixUTC: nav.FocusedDate().UTC().Unix(),
				DisplayMode:        nav.DisplayMode().String(),
				DaysUnixUTC:        daysUnix,
			})
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't marshal response body"))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write(respBodyJson)
		}))

	// step the navigator; unknown actions are rejected, valid ones never fail
	muxer.HandleFunc("POST /calendar/navigate", LogMiddleware(
		func(w http.ResponseWriter, r *http.Request) {
			var reqBody struct {
				Action string `json:"action"`
			}
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid request body"))
				return
			}
			switch reqBody.Action {
			case "next-month":
				nav.NextMonth()
			case "previous-month":
				nav.PreviousMonth()
			case "next-week":
				nav.NextWeek()
			case "previous-week":
				nav.PreviousWeek()
			case "show-month-view":
				nav.ShowMonthView()
			case "show-week-view":
				nav.ShowWeekView()
			default:
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Unknown action"))
				return
			}
			w.WriteHeader(http.StatusOK)
		}))

	type CreateEventReqBody struct {
		Title            string   `json:"title"`
		Description      string   `json:"description"`
		EventType        string   `json:"eventType"`
		Recurrence       string   `json:"recurrence"`
		StartDateUnixUTC int64    `json:"startDateUnixUTC"`
		EndDateUnixUTC   int64    `json:"endDateUnixUTC"`
		InvitedFriends   []string `json:"invitedFriends"`
		// natural language alternative to the unix dates, e.g. "tomorrow 9am"
		NaturalDate string `json:"naturalDate"`
	}

	parseEvent := func(reqBody CreateEventReqBody) (calendar.Event, string) {
		if strings.TrimSpace(reqBody.Title) == "" {
			return calendar.Event{}, "Please provide a title"
		}

		var startDate, endDate time.Time
		switch {
		case reqBody.NaturalDate != "":
			result, err := as.When.Parse(reqBody.NaturalDate, time.Now().In(as.Config.GetLocation()))
			if err != nil || result == nil {
				return calendar.Event{}, "Can't parse the natural date"
			}
			startDate = result.Time
		case reqBody.StartDateUnixUTC != 0:
			startDate = time.Unix(reqBody.StartDateUnixUTC, 0).In(as.Config.GetLocation())
		default:
			return calendar.Event{}, "Please provide a start date"
		}
		if reqBody.EndDateUnixUTC != 0 {
			endDate = time.Unix(reqBody.EndDateUnixUTC, 0).In(as.Config.GetLocation())
		} else {
			// no end date, assume 1 hour duration
			endDate = startDate.Add(time.Hour)
		}

		return calendar.Event{
			Title:          utils.CleanupString(reqBody.Title),
			Description:    reqBody.Description,
			EventType:      reqBody.EventType,
			Recurrence:     calendar.ParseRecurrence(reqBody.Recurrence),
			StartDate:      startDate,
			EndDate:        endDate,
			InvitedFriends: reqBody.InvitedFriends,
		}, ""
	}

	// mutations are fire-and-forget; failures are logged server-side and the
	// client only ever sees 202
	muxer.HandleFunc("POST /calendar/create-event", LogMiddleware(
		func(w http.ResponseWriter, r *http.Request) {
			var reqBody CreateEventReqBody
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid request body"))
				return
			}
			ev, errMsg := parseEvent(reqBody)
			if errMsg != "" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(errMsg))
				return
			}
			go ctrl.Create(context.Background(), ev)
			w.WriteHeader(http.StatusAccepted)
		}))

	type ModifyEventReqBody struct {
		ID string `json:"id"`
		CreateEventReqBody
	}

	muxer.HandleFunc("POST /calendar/modify-event", LogMiddleware(
		func(w http.ResponseWriter, r *http.Request) {
			var reqBody ModifyEventReqBody
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid request body"))
				return
			}
			if reqBody.ID == "" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Please provide an event ID"))
				return
			}
			ev, errMsg := parseEvent(reqBody.CreateEventReqBody)
			if errMsg != "" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(errMsg))
				return
			}
			ev.ID = reqBody.ID
			go ctrl.Update(context.Background(), ev)
			w.WriteHeader(http.StatusAccepted)
		}))

	muxer.HandleFunc("POST /calendar/delete-event", LogMiddleware(
		func(w http.ResponseWriter, r *http.Request) {
			var reqBody struct {
				ID string `json:"id"`
			}
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid request body"))
				return
			}
			if reqBody.ID == "" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Please provide an event ID"))
				return
			}
			go ctrl.Delete(context.Background(), reqBody.ID)
			w.WriteHeader(http.StatusAccepted)
		}))

	muxer.HandleFunc("POST /calendar/delete-events-by-type", LogMiddleware(
		func(w http.ResponseWriter, r *http.Request) {
			var reqBody struct {
				EventType string `json:"eventType"`
			}
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid request body"))
				return
			}
			if reqBody.EventType == "" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Please provide an event type"))
				return
			}
			go ctrl.DeleteByType(context.Background(), reqBody.EventType)
			w.WriteHeader(http.StatusAccepted)
		}))
}
