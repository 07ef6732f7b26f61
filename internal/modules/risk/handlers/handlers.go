// Package handlers provides HTTP handlers for risk report operations.
package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aristath/riskdesk/internal/exporter"
	"github.com/aristath/riskdesk/internal/modules/risk"
	"github.com/aristath/riskdesk/internal/utils"
	"github.com/rs/zerolog"
)

// Handler handles risk report HTTP requests
type Handler struct {
	service  risk.ServiceInterface
	exporter exporter.Exporter
	log      zerolog.Logger
}

// NewHandler creates a new risk report handler. exp may be nil, in which
// case the export endpoint answers 503.
func NewHandler(service risk.ServiceInterface, exp exporter.Exporter, log zerolog.Logger) *Handler {
	return &Handler{
		service:  service,
		exporter: exp,
		log:      log.With().Str("handler", "risk").Logger(),
	}
}

// HandleGetReport handles GET /api/risk/report
// Query: refresh=true forces a new run; symbols=A,B filters the assets.
func (h *Handler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))

	report, ok := h.service.Latest()
	if refresh || !ok {
		var err error
		if report, err = h.service.Run(r.Context()); err != nil {
			h.writeRunError(w, r, err)
			return
		}
	}

	snap := report.Snapshot()
	if symbols := utils.ParseSymbols(r.URL.Query().Get("symbols")); len(symbols) > 0 {
		snap.Assets = filterAssets(snap.Assets, symbols)
	}

	h.writeData(w, r, http.StatusOK, snap)
}

// HandleRunReport handles POST /api/risk/report/run
func (h *Handler) HandleRunReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Run(r.Context())
	if err != nil {
		h.writeRunError(w, r, err)
		return
	}
	h.writeData(w, r, http.StatusCreated, report.Snapshot())
}

// HandleGetSecurity handles GET /api/risk/securities/{symbol}
func (h *Handler) HandleGetSecurity(w http.ResponseWriter, r *http.Request, symbol string) {
	report, ok := h.latestOrRun(w, r)
	if !ok {
		return
	}

	for i, p := range report.Profiles {
		if p.Symbol == strings.ToUpper(strings.TrimSpace(symbol)) {
			h.writeData(w, r, http.StatusOK, report.NewAssetSnapshot(i))
			return
		}
	}
	h.writeError(w, r, http.StatusNotFound, "symbol not in current holdings")
}

// HandleGetRanking handles GET /api/risk/rankings/{metric}
func (h *Handler) HandleGetRanking(w http.ResponseWriter, r *http.Request, metricParam string) {
	metric, err := risk.ParseMetricName(metricParam)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	report, ok := h.latestOrRun(w, r)
	if !ok {
		return
	}

	order := "ascending"
	if metric.HigherIsBetter() {
		order = "descending"
	}
	ranking := report.Ranking(metric)
	if ranking == nil {
		ranking = []string{}
	}

	h.writeData(w, r, http.StatusOK, map[string]interface{}{
		"metric":  metric,
		"order":   order,
		"ranking": ranking,
		"run_id":  report.RunID,
	})
}

// HandleExportReport handles POST /api/risk/report/export
func (h *Handler) HandleExportReport(w http.ResponseWriter, r *http.Request) {
	if h.exporter == nil {
		h.writeError(w, r, http.StatusServiceUnavailable, "report export is not configured")
		return
	}

	report, ok := h.latestOrRun(w, r)
	if !ok {
		return
	}

	key, err := h.exporter.Export(r.Context(), report)
	if err != nil {
		h.log.Error().Err(err).Str("run_id", report.RunID).Msg("Failed to export report")
		h.writeError(w, r, http.StatusBadGateway, "failed to export report")
		return
	}

	h.writeData(w, r, http.StatusOK, map[string]interface{}{
		"run_id": report.RunID,
		"key":    key,
	})
}

func (h *Handler) latestOrRun(w http.ResponseWriter, r *http.Request) (*risk.RiskReport, bool) {
	if report, ok := h.service.Latest(); ok {
		return report, true
	}
	report, err := h.service.Run(r.Context())
	if err != nil {
		h.writeRunError(w, r, err)
		return nil, false
	}
	return report, true
}

func filterAssets(assets []risk.AssetSnapshot, symbols []string) []risk.AssetSnapshot {
	want := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		want[s] = true
	}
	out := make([]risk.AssetSnapshot, 0, len(symbols))
	for _, a := range assets {
		if want[a.Symbol] {
			out = append(out, a)
		}
	}
	return out
}

func (h *Handler) writeRunError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, risk.ErrEmptyHistory) || errors.Is(err, risk.ErrNoHoldings) {
		h.writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	h.log.Error().Err(err).Msg("Risk analysis failed")
	h.writeError(w, r, http.StatusInternalServerError, "risk analysis failed")
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.write(w, r, status, map[string]interface{}{
		"error": msg,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

func (h *Handler) writeData(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	h.write(w, r, status, map[string]interface{}{
		"data": data,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// write encodes as msgpack when the client accepts it, JSON otherwise.
func (h *Handler) write(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	format := negotiate(r)

	var buf bytes.Buffer
	if err := risk.Encode(&buf, body, format); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func negotiate(r *http.Request) risk.Format {
	accept := r.Header.Get("Accept")
	if strings.Contains(accept, "application/msgpack") || strings.Contains(accept, "application/x-msgpack") {
		return risk.FormatMsgpack
	}
	return risk.FormatJSON
}
