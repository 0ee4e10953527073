package route

import (
	"encoding/json"
	"errors"
	"net/http"

	"caldeck/src-server/filter"
	"caldeck/src-server/session"
	"caldeck/src-server/surface"
	"caldeck/src-server/utils"
)

// Calendar wires the endpoints the browser grid drives: range selection,
// event click, dialog submit/cancel/delete and the filtered sidebar list.
func Calendar(muxer *http.ServeMux, as *utils.AppState) {
	type SessionRespBody struct {
		Mode  string        `json:"mode"`
		Draft session.Draft `json:"draft"`
	}

	writeSession := func(w http.ResponseWriter) {
		respBodyJson, err := json.Marshal(SessionRespBody{
			Mode:  as.EditSession.Mode().String(),
			Draft: as.EditSession.Draft(),
		})
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't marshal response body"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(respBodyJson)
	}

	// the grid reported a date-range selection; open the dialog in
	// create mode with the range pre-filled
	muxer.HandleFunc("POST /calendar/select", func(w http.ResponseWriter, r *http.Request) {
		var reqBody surface.Selection
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Invalid request body"))
			return
		}
		if reqBody.StartStr == "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Please provide a start date"))
			return
		}

		as.Grid.Select(reqBody)
		as.EditSession.BeginCreate(reqBody)
		writeSession(w)
	})

	type EventClickReqBody struct {
		ID string `json:"id"`
	}

	// the grid reported a click on an existing event; open the dialog in
	// edit mode pre-filled from that event
	muxer.HandleFunc("POST /calendar/event-click", func(w http.ResponseWriter, r *http.Request) {
		var reqBody EventClickReqBody
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

		if _, err := as.EditSession.BeginEdit(reqBody.ID); err != nil {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("Event not found"))
			return
		}
		writeSession(w)
	})

	// submit the dialog form; a validation failure keeps the dialog open
	muxer.HandleFunc("POST /calendar/submit", func(w http.ResponseWriter, r *http.Request) {
		var reqBody session.Draft
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Invalid request body"))
			return
		}

		as.EditSession.UpdateDraft(reqBody)
		id, err := as.EditSession.Submit()
		switch {
		case errors.Is(err, session.ErrClosed):
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(err.Error()))
			return
		case errors.Is(err, session.ErrMissingField),
			errors.Is(err, session.ErrUnresolvableTime),
			errors.Is(err, session.ErrEndBeforeStart):
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(err.Error()))
			return
		case err != nil:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't save event"))
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(id))
	})

	muxer.HandleFunc("POST /calendar/cancel", func(w http.ResponseWriter, r *http.Request) {
		as.EditSession.Cancel()
		w.WriteHeader(http.StatusOK)
	})

	// delete the event being edited
	muxer.HandleFunc("POST /calendar/delete", func(w http.ResponseWriter, r *http.Request) {
		if err := as.EditSession.Delete(); err != nil {
			if errors.Is(err, session.ErrNotEditing) {
				w.WriteHeader(http.StatusConflict)
				w.Write([]byte(err.Error()))
				return
			}
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't delete event"))
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	// current dialog state, for clients rehydrating after a reload
	muxer.HandleFunc("GET /calendar/session", func(w http.ResponseWriter, r *http.Request) {
		writeSession(w)
	})

	// the sidebar list: the collection filtered by the search keyword
	muxer.HandleFunc("GET /calendar/events", func(w http.ResponseWriter, r *http.Request) {
		events := filter.Apply(as.EventCollection.Events(), r.URL.Query().Get("keyword"))
		respBodyJson, err := json.Marshal(events)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't marshal response body"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(respBodyJson)
	})
}
