package scheduler

import (
	"context"
	"log"
	"time"

	"superfamily/internal/database"
)

// PurgeInvitesJob removes family invite codes that are past their expiry.
type PurgeInvitesJob struct {
	invites *database.InviteRepository
}

func NewPurgeInvitesJob(invites *database.InviteRepository) *PurgeInvitesJob {
	return &PurgeInvitesJob{invites: invites}
}

func (j *PurgeInvitesJob) Execute(ctx context.Context) error {
	n, err := j.invites.DeleteExpired(ctx)
	if err != nil {
		return err
	}
	log.Printf("Purged %d expired invites", n)
	return nil
}

func (j *PurgeInvitesJob) Description() string {
	return "purge expired invites"
}

// PruneLogsJob removes activity log rows older than the retention window.
type PruneLogsJob struct {
	logs      *database.LogRepository
	retention time.Duration
}

func NewPruneLogsJob(logs *database.LogRepository, retention time.Duration) *PruneLogsJob {
	return &PruneLogsJob{logs: logs, retention: retention}
}

func (j *PruneLogsJob) Execute(ctx context.Context) error {
	n, err := j.logs.DeleteBefore(ctx, time.Now().Add(-j.retention))
	if err != nil {
		return err
	}
	log.Printf("Pruned %d activity log rows", n)
	return nil
}

func (j *PruneLogsJob) Description() string {
	return "prune old activity logs"
}
