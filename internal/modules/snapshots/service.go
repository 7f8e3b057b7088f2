package snapshots

import (
	"time"

	"github.com/hedgewise/hedgewise/internal/domain"
	"github.com/hedgewise/hedgewise/internal/events"
	"github.com/rs/zerolog"
)

// Service wraps the repository with event publishing and retention
// policy. Handlers and scheduler jobs talk to the service, never to the
// repository directly.
type Service struct {
	repo *Repository
	bus  *events.Bus
	log  zerolog.Logger
}

// NewService creates a new snapshot service
func NewService(repo *Repository, bus *events.Bus, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		bus:  bus,
		log:  log.With().Str("component", "snapshot_service").Logger(),
	}
}

// Store persists an analysis result and announces it on the bus
func (s *Service) Store(analysis domain.PortfolioAnalysis) (*Snapshot, error) {
	snapshot, err := s.repo.Create(analysis)
	if err != nil {
		return nil, err
	}

	s.bus.Publish("snapshots", &events.SnapshotStoredData{
		SnapshotID:    snapshot.ID,
		Goal:          string(snapshot.Goal),
		TotalValueUSD: snapshot.TotalValueUSD,
	})

	s.log.Info().
		Str("snapshot_id", snapshot.ID).
		Str("goal", string(snapshot.Goal)).
		Float64("total_value_usd", snapshot.TotalValueUSD).
		Msg("Snapshot stored")

	return snapshot, nil
}

// Get retrieves one snapshot with its full analysis document
func (s *Service) Get(id string) (*Snapshot, error) {
	return s.repo.GetByID(id)
}

// List retrieves snapshot summaries, newest first
func (s *Service) List(limit *int) ([]Summary, error) {
	return s.repo.List(limit)
}

// Prune removes snapshots older than the retention window and
// announces the result when anything was deleted
func (s *Service) Prune(retentionDays int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
	deleted, err := s.repo.PruneOlderThan(cutoff)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		s.bus.Publish("snapshots", &events.SnapshotsPrunedData{
			Deleted:       deleted,
			RetentionDays: retentionDays,
		})
		s.log.Info().
			Int64("deleted", deleted).
			Int("retention_days", retentionDays).
			Msg("Old snapshots pruned")
	}

	return deleted, nil
}
