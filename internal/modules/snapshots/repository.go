package snapshots

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hedgewise/hedgewise/internal/domain"
	"github.com/rs/zerolog"
)

const timeLayout = "2006-01-02 15:04:05"

// Repository handles snapshot persistence
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new snapshot repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "snapshots").Logger(),
	}
}

// InitSchema creates the snapshots table if it does not exist
func (r *Repository) InitSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS snapshots (
			id TEXT PRIMARY KEY,
			goal TEXT NOT NULL,
			total_value_usd REAL NOT NULL,
			token_count INTEGER NOT NULL,
			weighted_inflation_risk REAL NOT NULL,
			diversification_score REAL NOT NULL,
			analysis_json TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON snapshots(created_at);
	`
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create snapshots schema: %w", err)
	}
	return nil
}

// Create stores an analysis result and returns the persisted snapshot
func (r *Repository) Create(analysis domain.PortfolioAnalysis) (*Snapshot, error) {
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis: %w", err)
	}

	snapshot := &Snapshot{
		ID:                    uuid.New().String(),
		Goal:                  analysis.Goal,
		TotalValueUSD:         analysis.TotalValueUSD,
		TokenCount:            analysis.TokenCount,
		WeightedInflationRisk: analysis.WeightedInflationRisk,
		DiversificationScore:  analysis.DiversificationScore,
		CreatedAt:             time.Now().UTC().Truncate(time.Second),
		Analysis:              &analysis,
	}

	query := `
		INSERT INTO snapshots (
			id, goal, total_value_usd, token_count,
			weighted_inflation_risk, diversification_score,
			analysis_json, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(
		query,
		snapshot.ID,
		string(snapshot.Goal),
		snapshot.TotalValueUSD,
		snapshot.TokenCount,
		snapshot.WeightedInflationRisk,
		snapshot.DiversificationScore,
		string(analysisJSON),
		snapshot.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	return snapshot, nil
}

// GetByID retrieves one snapshot with its full analysis document.
// Returns nil when the ID is unknown.
func (r *Repository) GetByID(id string) (*Snapshot, error) {
	query := `
		SELECT id, goal, total_value_usd, token_count,
		       weighted_inflation_risk, diversification_score,
		       analysis_json, created_at
		FROM snapshots
		WHERE id = ?
	`

	var s Snapshot
	var goal, analysisJSON, createdAt string

	err := r.db.QueryRow(query, id).Scan(
		&s.ID,
		&goal,
		&s.TotalValueUSD,
		&s.TokenCount,
		&s.WeightedInflationRisk,
		&s.DiversificationScore,
		&analysisJSON,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	s.Goal = domain.Goal(goal)
	s.CreatedAt, _ = time.Parse(timeLayout, createdAt)

	var analysis domain.PortfolioAnalysis
	if err := json.Unmarshal([]byte(analysisJSON), &analysis); err != nil {
		return nil, fmt.Errorf("failed to decode analysis for snapshot %s: %w", id, err)
	}
	s.Analysis = &analysis

	return &s, nil
}

// List retrieves snapshot summaries, newest first, with optional limit
func (r *Repository) List(limit *int) ([]Summary, error) {
	query := `
		SELECT id, goal, total_value_usd, token_count,
		       weighted_inflation_risk, diversification_score, created_at
		FROM snapshots
		ORDER BY created_at DESC, id
	`
	if limit != nil {
		query += fmt.Sprintf(" LIMIT %d", *limit)
	}

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var s Summary
		var goal, createdAt string
		if err := rows.Scan(
			&s.ID,
			&goal,
			&s.TotalValueUSD,
			&s.TokenCount,
			&s.WeightedInflationRisk,
			&s.DiversificationScore,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		s.Goal = domain.Goal(goal)
		s.CreatedAt, _ = time.Parse(timeLayout, createdAt)
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// Count returns the number of stored snapshots
func (r *Repository) Count() (int64, error) {
	var count int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count snapshots: %w", err)
	}
	return count, nil
}

// PruneOlderThan deletes snapshots created before the cutoff and
// returns how many rows were removed
func (r *Repository) PruneOlderThan(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(
		"DELETE FROM snapshots WHERE created_at < ?",
		cutoff.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read pruned row count: %w", err)
	}
	return deleted, nil
}
