package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pulseforge/alarm-report-etl/internal/domain"
	"github.com/pulseforge/alarm-report-etl/internal/pipeline"
)

// maxReportBytes bounds one uploaded report pair. Portal exports run to a
// few MB on the worst days.
const maxReportBytes = 64 << 20

// handleIngest accepts a multipart upload with "motion" and "vibration"
// workbook parts and replaces the held dataset.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxReportBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("parse upload: %w", err))
		return
	}

	motion, _, err := r.FormFile("motion")
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("missing motion report file"))
		return
	}
	defer motion.Close()

	vibration, _, err := r.FormFile("vibration")
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("missing vibration report file"))
		return
	}
	defer vibration.Close()

	result, err := s.core.IngestReports(r.Context(), motion, vibration)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type summaryResponse struct {
	Since time.Time `json:"since"`
	Zones any       `json:"zones"`
}

// handleSummary returns the presented zone summaries. The since query
// parameter is RFC 3339; omitted, it defaults to the start of today.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	since := domain.StartOfToday()
	if raw := r.URL.Query().Get("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid since: %w", err))
			return
		}
		since = t
	}

	zones := s.core.Summary(&since)

	writeJSON(w, http.StatusOK, summaryResponse{Since: since, Zones: zones})
}

// handleNotify dispatches alerts for the requested zones and reports the
// outcome of every zone individually; a failed zone never fails the batch.
func (s *Server) handleNotify(w http.ResponseWriter, r *http.Request) {
	var req pipeline.NotifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	outcomes, err := s.core.Notify(r.Context(), req)
	if err != nil {
		if errors.Is(err, pipeline.ErrTransportDisabled) {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"outcomes": outcomes})
}

type upsertOwnerRequest struct {
	Owner string `json:"owner"`
}

func (s *Server) handleUpsertOwner(w http.ResponseWriter, r *http.Request) {
	zone := r.PathValue("zone")

	var req upsertOwnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if req.Owner == "" {
		writeError(w, http.StatusBadRequest, errors.New("owner is required"))
		return
	}

	if err := s.core.UpsertOwner(zone, req.Owner); err != nil {
		s.logger.Error("registry upsert failed", "zone", zone, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"zone": zone, "owner": req.Owner})
}

func (s *Server) handleGetOwner(w http.ResponseWriter, r *http.Request) {
	zone := r.PathValue("zone")
	writeJSON(w, http.StatusOK, map[string]string{"zone": zone, "owner": s.core.Owner(zone)})
}
