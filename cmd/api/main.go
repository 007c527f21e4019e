package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"timedesk/internal/config"
	"timedesk/internal/database"
	"timedesk/internal/domain/attachment"
	"timedesk/internal/domain/auth"
	"timedesk/internal/domain/ticket"
	"timedesk/internal/domain/timer"
	"timedesk/internal/middleware"
	jwtsvc "timedesk/internal/pkg/jwt"
	"timedesk/internal/repository"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	timerRepo := timer.NewRepository(db)
	attachmentRepo := attachment.NewRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	ticketService := ticket.NewService(ticketRepo)
	ticketHandler := ticket.NewHandler(ticketService)

	hub := timer.NewHub()
	timerService := timer.NewService(timerRepo, hub)
	timerHandler := timer.NewHandler(timerService)
	wsHandler := timer.NewWSHandler(hub, j)

	attachmentService := attachment.NewService(attachmentRepo, ticketService, cfg.UploadsDir, cfg.MaxUploadSize)
	attachmentHandler := attachment.NewHandler(attachmentService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		auth.RegisterRoutes(v1, authHandler)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			auth.RegisterProtectedRoutes(protected, authHandler)
			ticket.RegisterRoutes(protected, ticketHandler)
			timer.RegisterRoutes(protected, timerHandler)
			attachment.RegisterRoutes(protected, attachmentHandler)
		}
	}

	// Websocket auth rides in the query string, so the feed sits
	// outside the header middleware.
	r.GET("/ws/timer", wsHandler.HandleWebSocket)

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
