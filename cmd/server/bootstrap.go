package main

import (
	"github.com/listloop/backend/internal/config"
	"github.com/listloop/backend/internal/models"
	"github.com/listloop/backend/internal/services"
	"github.com/listloop/backend/internal/utils"
	"github.com/listloop/backend/pkg/logger"
)

const itemCacheSize = 512

// appServices wires every service and handler dependency once at startup.
type appServices struct {
	cfg *config.Config

	auth     *services.AuthService
	lists    *services.ListService
	items    *services.ItemService
	members  *services.MemberService
	invites  *services.InviteService
	votes    *services.VoteService
	comments *services.CommentService
	push     *services.PushService
	events   *services.EventHub

	worker      *services.Worker
	queue       services.TaskQueue
	stopCleanup func()
}

func bootstrap(cfg *config.Config) (*appServices, error) {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database); err != nil {
		return nil, err
	}
	if err := models.AutoMigrate(); err != nil {
		return nil, err
	}
	db := models.GetDB()

	queue := services.InitTaskQueue(cfg)
	events := services.GetEventHub()
	cache := services.NewItemCache(itemCacheSize)

	push := services.NewPushService(db, &cfg.Push)
	notifier := services.NewNotificationService(db, push)

	// The processor runs either inline (SyncQueue) or in the worker (asynq)
	if syncQueue, ok := queue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(notifier.Process)
	}

	var worker *services.Worker
	if queue.IsAsync() {
		worker = services.InitWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(notifier.Process)
			if err := worker.Start(); err != nil {
				return nil, err
			}
		}
	}

	invites := services.NewInviteService(db, queue, events)

	app := &appServices{
		cfg:      cfg,
		auth:     services.NewAuthService(db, cfg.JWT.ExpireHour),
		lists:    services.NewListService(db),
		items:    services.NewItemService(db, cache, events, queue),
		members:  services.NewMemberService(db),
		invites:  invites,
		votes:    services.NewVoteService(db, cache, events),
		comments: services.NewCommentService(db, queue, events),
		push:     push,
		events:   events,
		worker:   worker,
		queue:    queue,
	}

	app.stopCleanup = services.StartInviteCleanupScheduler(&cfg.Invites, invites)

	return app, nil
}

func (a *appServices) shutdown() {
	if a.stopCleanup != nil {
		a.stopCleanup()
	}
	if a.worker != nil {
		a.worker.Stop()
	}
	if a.queue != nil {
		if err := a.queue.Close(); err != nil {
			logger.Errorf("failed to close task queue: %v", err)
		}
	}
	logger.Infof("shutdown complete")
}
