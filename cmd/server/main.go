package main

import (
	"context"
	"database/sql"
	"encoding/gob"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/garyiyer/testqandas/internal/api"
	"github.com/garyiyer/testqandas/internal/api/handlers"
	"github.com/garyiyer/testqandas/internal/db"
	"github.com/garyiyer/testqandas/internal/gemini"
	"github.com/garyiyer/testqandas/internal/ingest"
	"github.com/garyiyer/testqandas/internal/storage"
	"github.com/garyiyer/testqandas/internal/store"

	sessions "github.com/gin-contrib/sessions"
	gsessions "github.com/gin-contrib/sessions/postgres"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var (
	GoogleOauthConfig *oauth2.Config
	storeName         = "testqandas_session"
	sessionSecretKey  []byte
)

func init() {
	// Load environment variables FIRST
	err := godotenv.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatalf("FATAL: Error loading .env file: %v", err)
		} else {
			log.Println("Warning: .env file not found. Relying on system environment variables.")
		}
	}

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		log.Println("WARNING: SESSION_SECRET environment variable is not set or empty!")
	}
	sessionSecretKey = []byte(secret)

	// Gob needs to know about the concrete type stored in sessions.
	gob.Register(handlers.UserProfile{})

	// --- Google OAuth Configuration ---
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	redirectURL := os.Getenv("GOOGLE_REDIRECT_URL")

	if clientID == "" || clientSecret == "" || redirectURL == "" {
		log.Fatal("FATAL: GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET, and GOOGLE_REDIRECT_URL environment variables must be set.")
	}

	GoogleOauthConfig = &oauth2.Config{
		RedirectURL:  redirectURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to Postgres (user records + sessions)
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("FATAL: DATABASE_URL environment variable must be set.")
	}
	database, err := db.NewDB(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Connect to the document store (processed chunk records)
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("FATAL: MONGO_URI environment variable must be set.")
	}
	mongoDB := os.Getenv("MONGO_DB")
	if mongoDB == "" {
		mongoDB = "testqandas"
	}
	chunkStore, mongoClient, err := store.Connect(ctx, mongoURI, mongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to document store: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("WARN: Failed to disconnect from document store: %v", err)
		}
	}()

	// Initialize blob storage client (Cloudflare R2)
	blobClient, err := storage.NewClientFromEnv(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}

	// Initialize Gemini client
	geminiClient, err := gemini.NewClient(ctx, os.Getenv("GEMINI_API_KEY"))
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}
	defer geminiClient.Close()

	// Ingestion pipeline: download from blob storage, chunk, tokenize,
	// write records to the document store.
	processor := ingest.NewProcessor(blobClient, chunkStore)

	// Set up Gin router
	router := gin.Default()

	// --- Session Configuration ---
	// A standard sql.DB pool for the session store, using the pgx driver
	// via the stdlib adapter.
	sessionDB, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatalf("Failed to open database connection for session store: %v", err)
	}
	defer sessionDB.Close()

	if err := sessionDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database for session store: %v", err)
	}

	sessionStore, err := gsessions.NewStore(sessionDB, sessionSecretKey)
	if err != nil {
		log.Fatalf("Failed to create postgres session store: %v", err)
	}

	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		Secure:   false, // TODO: set Secure=true once the deployment terminates TLS
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	router.Use(sessions.Sessions(storeName, sessionStore))

	// Set up API handlers
	handler := handlers.NewHandler(GoogleOauthConfig, storeName, database, processor, chunkStore, blobClient, geminiClient)
	api.SetupRoutes(router, handler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("Server listening on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited properly")
}
