package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/thereayou/talkie/internal/config"
	"github.com/thereayou/talkie/internal/database"
	"github.com/thereayou/talkie/internal/handlers"
	"github.com/thereayou/talkie/internal/notify"
	"github.com/thereayou/talkie/internal/services"
	ws "github.com/thereayou/talkie/internal/websocket"
	"github.com/thereayou/talkie/pkg/auth"
)

type Server struct {
	Router    *gin.Engine
	Config    *config.Config
	DB        *database.Database
	Redis     *redis.Client
	Hub       *ws.Hub
	MailQueue *notify.MailQueue
}

func NewServer() *Server {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	dbConn := &database.Database{}
	if err := dbConn.Connect(cfg.DatabaseURL); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	blacklist := services.NewRedisBlacklist(rdb)
	resolver := services.NewIdentityResolver(jwtMgr, dbConn, blacklist)
	permissions := services.NewPermissionService(dbConn)

	mailQueue := notify.NewMailQueue(64)
	go mailQueue.Run()

	hub := ws.NewHub()
	go hub.Run()

	coordinator := ws.NewCoordinator(hub, dbConn, permissions, resolver)

	authH := handlers.NewAuthHandler(dbConn, jwtMgr, blacklist, mailQueue, cfg.MailTokenTTL, cfg.RefreshTokenTTL)
	chatH := handlers.NewChatHandler(dbConn)
	userH := handlers.NewUserHandler(dbConn)
	wsH := handlers.NewWebSocketHandler(hub, coordinator)

	router := gin.Default()
	APIEndpoints(router, resolver, authH, chatH, userH, wsH)

	return &Server{
		Router:    router,
		Config:    cfg,
		DB:        dbConn,
		Redis:     rdb,
		Hub:       hub,
		MailQueue: mailQueue,
	}
}

func (s *Server) Run() {
	log.Printf("Server starting on port %s", s.Config.Port)
	if err := s.Router.Run(":" + s.Config.Port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}
