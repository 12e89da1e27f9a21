package services

import (
	"github.com/listloop/backend/internal/config"
	"github.com/listloop/backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// StartInviteCleanupScheduler runs the expired invite-link purge on the
// configured cron spec. Returns a stop function.
func StartInviteCleanupScheduler(cfg *config.InviteConfig, invites *InviteService) func() {
	c := cron.New()

	_, err := c.AddFunc(cfg.CleanupSpec, func() {
		purged, err := invites.CleanupExpired(cfg.RetentionDays)
		if err != nil {
			logger.Errorf("[Cleanup] Invite link purge failed: %v", err)
			return
		}
		if purged > 0 {
			logger.Infof("[Cleanup] Purged %d expired invite links", purged)
		}
	})
	if err != nil {
		logger.Errorf("[Cleanup] Invalid cleanup schedule %q: %v", cfg.CleanupSpec, err)
		return func() {}
	}

	c.Start()
	logger.Infof("[Cleanup] Invite cleanup scheduled: %s", cfg.CleanupSpec)

	return func() {
		ctx := c.Stop()
		<-ctx.Done()
	}
}
