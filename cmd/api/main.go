package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stevomusembi/retroscore/internal/config"
	"github.com/stevomusembi/retroscore/internal/handler"
	"github.com/stevomusembi/retroscore/internal/middleware"
	pgRepo "github.com/stevomusembi/retroscore/internal/repository/postgres"
	redisRepo "github.com/stevomusembi/retroscore/internal/repository/redis"
	"github.com/stevomusembi/retroscore/internal/service"
	"github.com/stevomusembi/retroscore/pkg/auth"
	"github.com/stevomusembi/retroscore/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	matchRepo := pgRepo.NewMatchRepo(db)
	userGameRepo := pgRepo.NewUserGameRepo(db)
	userStatsRepo := pgRepo.NewUserStatsRepo(db)
	clubRepo := pgRepo.NewClubRepo(db)
	seasonRepo := pgRepo.NewSeasonRepo(db)
	refreshTokenRepo := pgRepo.NewRefreshTokenRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем JWT
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Отправка почты: реальный клиент только при включенной конфигурации
	var emailService service.EmailService = &service.NoopEmailService{}
	if cfg.Email.Enabled {
		emailService, err = service.NewResendEmailService(cfg.Email.APIKey, cfg.Email.From)
		if err != nil {
			log.Printf("Failed to initialize email service: %v", err)
			os.Exit(1)
		}
	}

	// Инициализируем сервисы
	authService, err := service.NewAuthService(userRepo, refreshTokenRepo, userStatsRepo, jwtService, emailService, cfg.Auth.RefreshTokenLifetime)
	if err != nil {
		log.Printf("Failed to initialize AuthService: %v", err)
		os.Exit(1)
	}
	leaderboardService := service.NewLeaderboardService(userStatsRepo, userRepo, cacheRepo, cfg.Game.LeaderboardCacheTTLSec)
	gameService := service.NewGameService(matchRepo, userGameRepo, userRepo, userStatsRepo, leaderboardService, cfg.Game.DiscoveryMinUnplayed)
	userService := service.NewUserService(userRepo)
	importService := service.NewImportService(matchRepo, clubRepo, seasonRepo, cacheRepo)

	// Фоновая уборка истекших refresh-токенов
	go func() {
		if _, err := authService.PurgeExpiredTokens(); err != nil {
			log.Printf("Failed to purge expired refresh tokens: %v", err)
		}
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if _, err := authService.PurgeExpiredTokens(); err != nil {
				log.Printf("Failed to purge expired refresh tokens: %v", err)
			}
		}
	}()

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService)
	gameHandler := handler.NewGameHandler(gameService)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)
	settingsHandler := handler.NewSettingsHandler(userService)
	catalogHandler := handler.NewCatalogHandler(clubRepo, seasonRepo)
	importHandler := handler.NewImportHandler(importService)

	// Инициализируем middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	// Инициализируем роутер Gin
	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/google", authHandler.GoogleLogin)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authHandler.Logout)
			authGroup.POST("/logout-all", authMiddleware.RequireAuth(), authHandler.LogoutAll)
		}

		game := api.Group("/game")
		{
			// Случайный матч доступен и анонимно, но без истории игр
			game.GET("/random-match", authMiddleware.OptionalAuth(), gameHandler.GetRandomMatch)
			game.POST("/guess", authMiddleware.RequireAuth(), gameHandler.SubmitGuess)
			game.GET("/history", authMiddleware.RequireAuth(), gameHandler.GetPlayHistory)
			game.GET("/results/:id", authMiddleware.RequireAuth(), gameHandler.GetGameResult)
		}

		leaderboard := api.Group("/leaderboard")
		{
			leaderboard.GET("/public", leaderboardHandler.GetLeaderboard)
			leaderboard.GET("/personal", authMiddleware.RequireAuth(), leaderboardHandler.GetPersonalStats)
		}

		settings := api.Group("/settings", authMiddleware.RequireAuth())
		{
			settings.GET("", settingsHandler.GetSettings)
			settings.PUT("", settingsHandler.UpdateSettings)
			settings.PATCH("/difficulty", settingsHandler.UpdateDifficulty)
			settings.PATCH("/notifications", settingsHandler.UpdateNotifications)
		}

		api.GET("/clubs", catalogHandler.GetClubs)
		api.GET("/seasons", catalogHandler.GetSeasons)

		admin := api.Group("/admin", authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
		{
			admin.POST("/import", importHandler.ImportMatches)
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	// Ожидаем сигнал остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}
