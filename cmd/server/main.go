package main

import (
	"github.com/szolzol/humbug-quiz-sub000/internal/config"
	"github.com/szolzol/humbug-quiz-sub000/internal/database"
	"github.com/szolzol/humbug-quiz-sub000/internal/handlers"
	"github.com/szolzol/humbug-quiz-sub000/internal/middleware"
	"github.com/szolzol/humbug-quiz-sub000/internal/services"
	"github.com/szolzol/humbug-quiz-sub000/internal/ws"

	_ "github.com/szolzol/humbug-quiz-sub000/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           HUMBUG Room API
// @version         1.0
// @description     Multiplayer trivia room backend with turn-based answering and the HUMBUG challenge mechanic
// @host            localhost:8080
// @BasePath        /

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)
	database.Seed(db)

	hub := ws.NewHub()

	roomService := services.NewRoomService(db, cfg)
	gameService := services.NewGameService(db, cfg)
	stateService := services.NewStateService(db)

	playHandler := handlers.NewPlayHandler(roomService, gameService, hub)
	stateHandler := handlers.NewStateHandler(roomService, stateService, hub)

	var limiter middleware.Limiter
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		limiter = middleware.NewRedisLimiter(client, cfg.RateLimitPerMinute)
		log.WithField("addr", cfg.RedisAddr).Info("rate limiter backed by redis")
	} else {
		limiter = middleware.NewMemoryLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigins},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Session-Token", "X-Room-Version"},
		ExposeHeaders:    []string{"X-Session-Token", "X-Room-Version"},
		AllowCredentials: true,
	}))
	r.Use(middleware.Metrics())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/rooms/:code", stateHandler.HandleRoomWebSocket)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(limiter))
	api.Use(middleware.Session(cfg.SessionSecret))
	{
		rooms := api.Group("/rooms")
		{
			rooms.POST("", playHandler.CreateRoom)
			rooms.POST("/join", playHandler.JoinRoom)
			rooms.GET("/state", stateHandler.GetState)
			rooms.POST("/:id/leave", playHandler.LeaveRoom)
			rooms.POST("/:id/start", playHandler.StartGame)
			rooms.POST("/:id/answer", playHandler.SubmitAnswer)
			rooms.POST("/:id/challenge", playHandler.Challenge)
			rooms.POST("/:id/next", playHandler.NextTurn)
		}
	}

	log.Infof("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
