package router

import (
	"kindling/internal/handlers"
	"kindling/internal/middleware"
	"kindling/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes builds the service graph and mounts every route on r.
// Session and user-loading middleware are expected to be installed already.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, ranking *services.RankingService) {
	search := services.NewLogSearchNotifier()

	identitySvc := services.NewIdentityService(db)
	voteSvc := services.NewVoteService(db, ranking)
	favoriteSvc := services.NewFavoriteService(db)
	commentSvc := services.NewCommentService(db, ranking)
	itemSvc := services.NewItemService(db, ranking, search)
	moderationSvc := services.NewModerationService(db)

	authHandler := handlers.NewAuthHandler(identitySvc)
	userHandler := handlers.NewUserHandler(identitySvc, favoriteSvc)
	itemHandler := handlers.NewItemHandler(itemSvc, commentSvc, favoriteSvc, voteSvc)
	commentHandler := handlers.NewCommentHandler(commentSvc)
	voteHandler := handlers.NewVoteHandler(voteSvc)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteSvc)
	moderationHandler := handlers.NewModerationHandler(moderationSvc)

	// Public surface: reading never needs a session.
	r.POST("/users", authHandler.Register)
	r.POST("/users/login", authHandler.Login)
	r.POST("/users/logout", authHandler.Logout)
	r.GET("/users/:username", userHandler.Profile)
	r.GET("/users/:username/favorites", userHandler.Favorites)

	r.GET("/items", itemHandler.List)
	r.GET("/items/:id", itemHandler.Get)
	r.GET("/comments/:id", commentHandler.Get)

	authorized := r.Group("/", middleware.AuthRequired())
	{
		authorized.PUT("/users/:username", userHandler.Update)
		authorized.DELETE("/users/:username", userHandler.Delete)

		authorized.POST("/items", itemHandler.Create)
		authorized.PUT("/items/:id", itemHandler.Update)
		authorized.DELETE("/items/:id", itemHandler.Delete)
		authorized.POST("/items/:id/vote", voteHandler.VoteItem)
		authorized.POST("/items/:id/favorite", favoriteHandler.ToggleFavorite)
		authorized.POST("/items/:id/hide", favoriteHandler.ToggleHidden)

		authorized.POST("/comments", commentHandler.Create)
		authorized.DELETE("/comments/:id", commentHandler.Delete)
		authorized.POST("/comments/:id/vote", voteHandler.VoteComment)
	}

	moderation := r.Group("/moderation", middleware.AuthRequired(), middleware.ModeratorRequired())
	{
		moderation.POST("/items/:id/kill", moderationHandler.KillItem)
		moderation.POST("/items/:id/unkill", moderationHandler.UnkillItem)
		moderation.POST("/comments/:id/kill", moderationHandler.KillComment)
		moderation.POST("/comments/:id/unkill", moderationHandler.UnkillComment)
		moderation.POST("/users/:id/ban", moderationHandler.BanUser)
		moderation.POST("/users/:id/unban", moderationHandler.UnbanUser)
		moderation.GET("/log", moderationHandler.Log)
	}
}
