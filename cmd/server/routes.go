package main

import (
	"github.com/gin-gonic/gin"
	"github.com/listloop/backend/internal/handlers"
	"github.com/listloop/backend/internal/middleware"
)

func registerRoutes(router *gin.Engine, app *appServices) {
	router.Use(middleware.CORS())
	router.RedirectTrailingSlash = false

	authHandler := handlers.NewAuthHandler(app.auth)
	listHandler := handlers.NewListHandler(app.lists)
	itemHandler := handlers.NewItemHandler(app.items)
	memberHandler := handlers.NewMemberHandler(app.members)
	inviteHandler := handlers.NewInviteHandler(app.invites)
	voteHandler := handlers.NewVoteHandler(app.votes)
	commentHandler := handlers.NewCommentHandler(app.comments)
	pushHandler := handlers.NewPushHandler(app.push)
	eventsHandler := handlers.NewEventsHandler(app.events, app.lists)

	router.GET("/health", handlers.Health)

	api := router.Group("/api")

	// Public auth endpoints
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Everything below requires a session
	protected := api.Group("")
	protected.Use(middleware.AuthRequired())
	{
		protected.GET("/auth/me", authHandler.Me)

		// Lists
		protected.POST("/lists", listHandler.Create)
		protected.GET("/lists", listHandler.Mine)
		protected.GET("/lists/shared", listHandler.Shared)
		protected.GET("/lists/public", listHandler.Public)
		protected.GET("/lists/:id", listHandler.Get)
		protected.PUT("/lists/:id", listHandler.Update)
		protected.DELETE("/lists/:id", listHandler.Delete)
		protected.PUT("/lists/:id/settings", listHandler.UpdateSettings)
		protected.GET("/lists/:id/statuses", listHandler.Statuses)
		protected.POST("/lists/:id/statuses", listHandler.CreateStatus)
		protected.DELETE("/lists/:id/statuses/:statusID", listHandler.DeleteStatus)

		// Items
		protected.GET("/lists/:id/items", itemHandler.List)
		protected.POST("/lists/:id/items", itemHandler.Create)
		protected.PUT("/lists/:id/items/reorder", itemHandler.Reorder)
		protected.PUT("/items/:id", itemHandler.Update)
		protected.DELETE("/items/:id", itemHandler.Delete)

		// Votes and ratings
		protected.POST("/items/:id/vote", voteHandler.Cast)
		protected.POST("/items/:id/rating", voteHandler.Rate)

		// Comments
		protected.GET("/items/:id/comments", commentHandler.List)
		protected.POST("/items/:id/comments", commentHandler.Add)
		protected.DELETE("/comments/:id", commentHandler.Delete)

		// Members
		protected.GET("/lists/:id/members", memberHandler.List)
		protected.PUT("/lists/:id/members/:memberID", memberHandler.UpdateRole)
		protected.DELETE("/lists/:id/members/:memberID", memberHandler.Remove)
		protected.POST("/lists/:id/leave", memberHandler.Leave)

		// Invite links
		protected.GET("/lists/:id/invites", inviteHandler.List)
		protected.POST("/lists/:id/invites", inviteHandler.Create)
		protected.DELETE("/invites/:id", inviteHandler.Delete)

		// Redemption is throttled per IP: tokens are bearer capabilities and
		// this endpoint is the only place they can be probed
		protected.POST("/invites/redeem", middleware.RateLimit(1, 5), inviteHandler.Redeem)

		// Push tokens
		protected.POST("/push/register", pushHandler.Register)
		protected.POST("/push/unregister", pushHandler.Unregister)

		// Realtime
		protected.GET("/events/lists/:id", eventsHandler.Stream)
	}
}
