package route

import (
	"fmt"
	"net/http"

	"caldeck/src-server/export"
	"caldeck/src-server/filter"
	"caldeck/src-server/utils"
)

// Export serves the filtered collection as downloadable files. The
// keyword query param mirrors the sidebar search, so an export always
// reflects the current view.
func Export(muxer *http.ServeMux, as *utils.AppState) {
	download := func(w http.ResponseWriter, filename, contentType string, body []byte) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}

	muxer.HandleFunc("GET /calendar/export/"+export.JSONFilename, func(w http.ResponseWriter, r *http.Request) {
		events := filter.Apply(as.EventCollection.Events(), r.URL.Query().Get("keyword"))
		body, err := export.ToJSON(events)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't export events"))
			return
		}
		download(w, export.JSONFilename, "application/json", body)
	})

	muxer.HandleFunc("GET /calendar/export/"+export.CSVFilename, func(w http.ResponseWriter, r *http.Request) {
		events := filter.Apply(as.EventCollection.Events(), r.URL.Query().Get("keyword"))
		body, err := export.ToCSV(events, as.Config.GetLocation())
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't export events"))
			return
		}
		download(w, export.CSVFilename, "text/csv", body)
	})

	muxer.HandleFunc("GET /calendar/export/"+export.ICSFilename, func(w http.ResponseWriter, r *http.Request) {
		events := filter.Apply(as.EventCollection.Events(), r.URL.Query().Get("keyword"))
		body, err := export.ToICS(events, as.Config.GetLocation())
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't export events"))
			return
		}
		download(w, export.ICSFilename, "text/calendar", body)
	})
}
