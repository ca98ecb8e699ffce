package main

import (
	"github.com/gin-gonic/gin"
	"github.com/thereayou/talkie/internal/handlers"
	"github.com/thereayou/talkie/internal/middleware"
	"github.com/thereayou/talkie/internal/services"
)

func APIEndpoints(r *gin.Engine, resolver *services.IdentityResolver,
	authH *handlers.AuthHandler, chatH *handlers.ChatHandler,
	userH *handlers.UserHandler, wsH *handlers.WebSocketHandler) {

	// Auth endpoints
	auth := r.Group("/auth")
	{
		auth.POST("/register", authH.Register)
		auth.GET("/verify", authH.Verify)
		auth.POST("/login", authH.Login)
		auth.POST("/refresh", authH.Refresh)
		auth.POST("/logout", middleware.AuthMiddleware(resolver), authH.Logout)
	}

	// Chat endpoints
	chats := r.Group("/chats", middleware.AuthMiddleware(resolver))
	{
		chats.POST("", chatH.CreateChatRoom)
		chats.POST("/private", chatH.CreatePrivateChat)
		chats.POST("/:id/join", chatH.JoinChat)
		chats.POST("/:id/conversations", chatH.CreateConversation)
		chats.DELETE("/:id", chatH.DeleteChat)
	}

	// User endpoints
	users := r.Group("/users", middleware.AuthMiddleware(resolver))
	{
		users.GET("/me", userH.GetMe)
		users.GET("/:id", userH.GetUser)
	}

	// WebSocket
	r.GET("/ws", middleware.WSAuthMiddleware(resolver), wsH.HandleWebSocket)
}
