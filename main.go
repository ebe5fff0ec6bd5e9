package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"blogapp/config"
	"blogapp/db"
	"blogapp/middleware"
	"blogapp/routes"
	"blogapp/store"
	"blogapp/store/postgres"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found") // Non-fatal in production
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	if cfg.DBPassword == "" {
		log.Fatal("DB_PASSWORD environment variable is required")
	}
	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET environment variable is required")
	}

	database, err := db.Initialize(cfg)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	defer database.Close()

	if err := db.InitSchema(database); err != nil {
		log.Fatalf("Error initializing database schema: %v", err)
	}

	if cfg.SeedDemoData {
		if err := db.SeedData(database); err != nil {
			log.Printf("Warning: Error seeding demo data: %v", err)
		}
	}

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	r.Use(cors.New(corsConfig))

	// Server-side sessions; the cookie only carries the opaque session id
	sessionStore := memstore.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("session", sessionStore))
	r.Use(middleware.Identify())

	r.LoadHTMLGlob("templates/*")

	stores := store.Stores{
		Users:    postgres.NewUserStore(database),
		Posts:    postgres.NewPostStore(database),
		Comments: postgres.NewCommentStore(database),
	}
	routes.SetupRoutes(r, database, stores)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
}
