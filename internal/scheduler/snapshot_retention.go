package scheduler

import (
	"github.com/rs/zerolog"

	"github.com/hedgewise/hedgewise/internal/modules/snapshots"
)

// SnapshotRetentionJob prunes snapshots older than the retention window
type SnapshotRetentionJob struct {
	log           zerolog.Logger
	snapshots     *snapshots.Service
	retentionDays int
}

// NewSnapshotRetentionJob creates a new SnapshotRetentionJob
func NewSnapshotRetentionJob(snapshotService *snapshots.Service, retentionDays int) *SnapshotRetentionJob {
	return &SnapshotRetentionJob{
		log:           zerolog.Nop(),
		snapshots:     snapshotService,
		retentionDays: retentionDays,
	}
}

// SetLogger sets the logger for the job
func (j *SnapshotRetentionJob) SetLogger(log zerolog.Logger) {
	j.log = log
}

// Name returns the job name
func (j *SnapshotRetentionJob) Name() string {
	return "snapshot_retention"
}

// Run executes the snapshot retention job
func (j *SnapshotRetentionJob) Run() error {
	deleted, err := j.snapshots.Prune(j.retentionDays)
	if err != nil {
		return err
	}

	j.log.Info().
		Int64("deleted", deleted).
		Int("retention_days", j.retentionDays).
		Msg("Snapshot retention completed")
	return nil
}
