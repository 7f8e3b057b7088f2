// Package handlers provides HTTP handlers for portfolio analysis,
// token scoring and guided tour detection.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/hedgewise/hedgewise/internal/domain"
	"github.com/hedgewise/hedgewise/internal/events"
	"github.com/hedgewise/hedgewise/internal/modules/analysis"
	"github.com/hedgewise/hedgewise/internal/modules/marketdata"
	"github.com/hedgewise/hedgewise/internal/modules/snapshots"
)

// Handler handles analysis HTTP requests
type Handler struct {
	analyzer  analysis.Analyzer
	service   *analysis.Service
	snapshots *snapshots.Service
	bus       *events.Bus
	cache     *analysis.CachedAnalyzer
	log       zerolog.Logger
}

// NewHandler creates a new analysis handler
func NewHandler(
	analyzer analysis.Analyzer,
	service *analysis.Service,
	snapshotService *snapshots.Service,
	bus *events.Bus,
	cache *analysis.CachedAnalyzer,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		analyzer:  analyzer,
		service:   service,
		snapshots: snapshotService,
		bus:       bus,
		cache:     cache,
		log:       log.With().Str("handler", "analysis").Logger(),
	}
}

// AnalysisRequest is the POST /api/analysis payload. Market and user
// context are optional; persist defaults to true. GoldCloses is a daily
// gold close series used to derive the market context when no explicit
// market block is supplied.
type AnalysisRequest struct {
	Balances      []domain.Balance        `json:"balances"`
	InflationData domain.InflationDataset `json:"inflation_data"`
	Goal          string                  `json:"goal"`
	Market        *domain.MarketContext   `json:"market,omitempty"`
	GoldCloses    []float64               `json:"gold_closes,omitempty"`
	User          *userContextRequest     `json:"user,omitempty"`
	Persist       *bool                   `json:"persist,omitempty"`
}

type userContextRequest struct {
	RiskTolerance     string  `json:"risk_tolerance"`
	TimeHorizonMonths int     `json:"time_horizon_months"`
	PortfolioValueUSD float64 `json:"portfolio_value_usd"`
}

// AnalysisResponse wraps the analysis with the stored snapshot ID, if
// any.
type AnalysisResponse struct {
	Analysis   domain.PortfolioAnalysis `json:"analysis"`
	SnapshotID string                   `json:"snapshot_id,omitempty"`
}

// HandleAnalyze handles POST /api/analysis
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	goal, err := domain.ParseGoal(req.Goal)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.resolveUser(req.User, goal)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var result domain.PortfolioAnalysis
	cacheHit := false
	if req.Market == nil && req.User == nil && len(req.GoldCloses) == 0 {
		// Default-context requests go through the memoizing decorator.
		if h.cache != nil {
			result, cacheHit = h.cache.AnalyzeCached(req.Balances, req.InflationData, goal)
		} else {
			result = h.analyzer.Analyze(req.Balances, req.InflationData, goal)
		}
	} else {
		market := resolveMarket(req.Market, req.GoldCloses)
		result = h.service.AnalyzeWithContext(req.Balances, req.InflationData, goal, market, user)
	}

	h.bus.Publish("analysis", &events.AnalysisComputedData{
		Goal:                  string(goal),
		TotalValueUSD:         result.TotalValueUSD,
		TokenCount:            result.TokenCount,
		WeightedInflationRisk: result.WeightedInflationRisk,
		DiversificationScore:  result.DiversificationScore,
		CacheHit:              cacheHit,
	})

	response := AnalysisResponse{Analysis: result}
	if req.Persist == nil || *req.Persist {
		snapshot, err := h.snapshots.Store(result)
		if err != nil {
			// Persistence failure must not hide the computed analysis.
			h.log.Error().Err(err).Msg("Failed to store snapshot")
		} else {
			response.SnapshotID = snapshot.ID
		}
	}

	h.writeJSON(w, http.StatusOK, response)
}

// ScoresRequest is the POST /api/scores payload
type ScoresRequest struct {
	Symbols       []string                `json:"symbols"`
	InflationData domain.InflationDataset `json:"inflation_data"`
	Goal          string                  `json:"goal"`
	Market        *domain.MarketContext   `json:"market,omitempty"`
	GoldCloses    []float64               `json:"gold_closes,omitempty"`
	User          *userContextRequest     `json:"user,omitempty"`
}

// HandleScores handles POST /api/scores
func (h *Handler) HandleScores(w http.ResponseWriter, r *http.Request) {
	var req ScoresRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	goal, err := domain.ParseGoal(req.Goal)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.resolveUser(req.User, goal)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	market := resolveMarket(req.Market, req.GoldCloses)

	scores := h.service.ScoreTokens(req.Symbols, market, user, req.InflationData)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"scores": scores})
}

// TourRequest is the POST /api/tour payload
type TourRequest struct {
	Balances        []domain.Balance        `json:"balances"`
	InflationData   domain.InflationDataset `json:"inflation_data"`
	Goal            string                  `json:"goal"`
	VisitedSections []string                `json:"visited_sections"`
}

// HandleTour handles POST /api/tour
func (h *Handler) HandleTour(w http.ResponseWriter, r *http.Request) {
	var req TourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	goal, err := domain.ParseGoal(req.Goal)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := h.analyzer.Analyze(req.Balances, req.InflationData, goal)
	recommendation := analysis.DetectGuidedTour(result, goal, req.VisitedSections)

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"recommendation": recommendation})
}

// resolveUser builds the user context from the optional request block
func (h *Handler) resolveUser(req *userContextRequest, goal domain.Goal) (domain.UserContext, error) {
	user := domain.UserContext{
		RiskTolerance: domain.RiskToleranceBalanced,
		Goal:          goal,
	}
	if req == nil {
		return user, nil
	}

	if req.RiskTolerance != "" {
		tolerance, err := domain.ParseRiskTolerance(req.RiskTolerance)
		if err != nil {
			return domain.UserContext{}, err
		}
		user.RiskTolerance = tolerance
	}
	user.TimeHorizonMonths = req.TimeHorizonMonths
	user.PortfolioValueUSD = req.PortfolioValueUSD

	return user, nil
}

// resolveMarket prefers an explicit market block, then a context derived
// from the gold close series, then the documented defaults.
func resolveMarket(market *domain.MarketContext, goldCloses []float64) domain.MarketContext {
	if market != nil {
		return *market
	}
	if len(goldCloses) > 0 {
		return marketdata.BuildContext(0, 0, 0, "", goldCloses)
	}
	return marketdata.DefaultContext()
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
