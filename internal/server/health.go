package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/riskdesk/internal/database"
)

// DBHealth describes one database in the health response
type DBHealth struct {
	Name   string          `json:"name"`
	Status string          `json:"status"`
	Error  string          `json:"error,omitempty"`
	Stats  *database.Stats `json:"stats,omitempty"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status     string     `json:"status"`
	Service    string     `json:"service"`
	Uptime     string     `json:"uptime"`
	CPUPercent float64    `json:"cpu_percent"`
	RAMPercent float64    `json:"ram_percent"`
	Databases  []DBHealth `json:"databases"`
	Timestamp  string     `json:"timestamp"`
}

// handleHealth reports database integrity and host load.
// Any failing database turns the status to "degraded" and the code to 503.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "healthy",
		Service:   "riskdesk",
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		Databases: make([]DBHealth, 0, len(s.databases)),
		Timestamp: time.Now().Format(time.RFC3339),
	}
	response.CPUPercent, response.RAMPercent = s.getSystemStats()

	status := http.StatusOK
	for _, db := range s.databases {
		entry := DBHealth{Name: db.Name(), Status: "ok"}
		if err := db.HealthCheck(ctx); err != nil {
			entry.Status = "error"
			entry.Error = err.Error()
			response.Status = "degraded"
			status = http.StatusServiceUnavailable
		} else if stats, err := db.GetStats(); err == nil {
			entry.Stats = stats
		}
		response.Databases = append(response.Databases, entry)
	}

	s.writeJSON(w, status, response)
}

// getSystemStats returns CPU and RAM usage percentages
func (s *Server) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil || len(cpuPercent) == 0 {
		s.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return cpuPercent[0], 0
	}

	return cpuPercent[0], memStat.UsedPercent
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
