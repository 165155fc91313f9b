package app

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "jobmarket/docs"
	"jobmarket/internal/config"
	"jobmarket/internal/db"
	"jobmarket/internal/handlers"
	"jobmarket/internal/pdf"
	"jobmarket/internal/repositories"
	"jobmarket/internal/routes"
	"jobmarket/internal/services"
	"jobmarket/internal/token"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	conn, err := db.Connect(cfg.Database.DSN, cfg.Database.MaxOpenConns)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	if err := db.RunMigrations(cfg.Database.DSN, "migrations"); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	// === Repos ===
	userRepo := repositories.NewUserRepository(conn)
	jobRepo := repositories.NewJobRepository(conn)
	applicationRepo := repositories.NewApplicationRepository(conn)
	resetRepo := repositories.NewPasswordResetRepository(conn)

	// === Services ===
	codec := token.NewCodec(cfg.Auth.JWTSecret)
	authService := services.NewAuthService(userRepo, codec, cfg.Auth)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	notifyService := services.NewTelegramNotifier(
		cfg.Telegram.BotToken,
		cfg.Telegram.ChatID,
		cfg.Telegram.DryRun,
	)

	userService := services.NewUserService(userRepo, emailService, authService)
	jobService := services.NewJobService(jobRepo, applicationRepo, notifyService)
	applicationService := services.NewApplicationService(applicationRepo, jobRepo, jobService)
	resetService := services.NewPasswordResetService(resetRepo, userRepo, emailService, authService)
	reportService := services.NewReportService(userRepo, jobRepo, applicationRepo)

	pdfGen := pdf.NewSummaryGenerator(cfg.Files.RootDir)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, authService, resetService)
	userHandler := handlers.NewUserHandler(userService)
	jobHandler := handlers.NewJobHandler(jobService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, pdfGen)
	reportHandler := handlers.NewReportHandler(reportService)

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		codec,
		authHandler,
		userHandler,
		jobHandler,
		applicationHandler,
		reportHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
