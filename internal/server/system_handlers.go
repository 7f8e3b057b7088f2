package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/hedgewise/hedgewise/internal/database"
	"github.com/hedgewise/hedgewise/internal/modules/analysis"
)

// SystemHandlers serves health and resource-usage endpoints
type SystemHandlers struct {
	log        zerolog.Logger
	dataDir    string
	snapshotDB *database.DB
	cache      *analysis.CachedAnalyzer
	startTime  time.Time
}

// NewSystemHandlers creates system monitoring handlers
func NewSystemHandlers(log zerolog.Logger, dataDir string, snapshotDB *database.DB, cache *analysis.CachedAnalyzer) *SystemHandlers {
	return &SystemHandlers{
		log:        log.With().Str("handler", "system").Logger(),
		dataDir:    dataDir,
		snapshotDB: snapshotDB,
		cache:      cache,
		startTime:  time.Now(),
	}
}

// HealthResponse is the health check payload
type HealthResponse struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}

// HandleHealth handles health check requests. The default check only
// pings the database; ?deep=true runs a full integrity check, so keep
// deep checks out of high-frequency load balancer polling.
func (h *SystemHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	dbStatus := "ok"
	status := "healthy"
	code := http.StatusOK

	if h.snapshotDB != nil {
		check := h.snapshotDB.QuickCheck
		if r.URL.Query().Get("deep") == "true" {
			check = h.snapshotDB.HealthCheck
		}
		if err := check(r.Context()); err != nil {
			h.log.Warn().Err(err).Msg("Snapshot database check failed")
			dbStatus = "unreachable"
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	} else {
		dbStatus = "not configured"
	}

	h.writeJSON(w, code, HealthResponse{
		Status:   status,
		Service:  "hedgewise",
		Database: dbStatus,
		Uptime:   time.Since(h.startTime).Round(time.Second).String(),
	})
}

// SystemStatsResponse reports process and host resource usage
type SystemStatsResponse struct {
	CPUPercent    float64             `json:"cpu_percent"`
	MemoryPercent float64             `json:"memory_percent"`
	Goroutines    int                 `json:"goroutines"`
	UptimeSeconds float64             `json:"uptime_seconds"`
	DataDirMB     float64             `json:"data_dir_mb"`
	Cache         analysis.CacheStats `json:"cache"`
}

// HandleSystemStats handles GET /api/system/stats
func (h *SystemHandlers) HandleSystemStats(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting system stats")

	cpuPercent, memPercent := h.getSystemStats()

	response := SystemStatsResponse{
		CPUPercent:    cpuPercent,
		MemoryPercent: memPercent,
		Goroutines:    runtime.NumGoroutine(),
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		DataDirMB:     h.getDirSize(h.dataDir),
	}
	if h.cache != nil {
		response.Cache = h.cache.Stats()
	}

	h.writeJSON(w, http.StatusOK, response)
}

// DatabaseStatsResponse reports snapshot database statistics
type DatabaseStatsResponse struct {
	Name          string  `json:"name"`
	SizeMB        float64 `json:"size_mb"`
	WALSizeMB     float64 `json:"wal_size_mb"`
	PageCount     int64   `json:"page_count"`
	PageSize      int64   `json:"page_size"`
	FreelistCount int64   `json:"freelist_count"`
}

// HandleDatabaseStats handles GET /api/system/database/stats
func (h *SystemHandlers) HandleDatabaseStats(w http.ResponseWriter, r *http.Request) {
	if h.snapshotDB == nil {
		http.Error(w, "database not configured", http.StatusServiceUnavailable)
		return
	}

	stats, err := h.snapshotDB.GetStats()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get database stats")
		http.Error(w, "failed to get database stats", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, DatabaseStatsResponse{
		Name:          h.snapshotDB.Name(),
		SizeMB:        float64(stats.SizeBytes) / 1024 / 1024,
		WALSizeMB:     float64(stats.WALSizeBytes) / 1024 / 1024,
		PageCount:     stats.PageCount,
		PageSize:      stats.PageSize,
		FreelistCount: stats.FreelistCount,
	})
}

// getSystemStats calculates CPU and RAM usage percentages. A 100ms
// sampling interval keeps the endpoint responsive.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}

// getDirSize calculates total size of a directory in MB
func (h *SystemHandlers) getDirSize(dirPath string) float64 {
	var totalSize int64

	err := filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if !info.IsDir() {
			totalSize += info.Size()
		}
		return nil
	})
	if err != nil {
		h.log.Warn().Err(err).Str("dir", dirPath).Msg("Failed to calculate directory size")
		return 0
	}

	return float64(totalSize) / 1024 / 1024
}

// writeJSON writes a JSON response
func (h *SystemHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
