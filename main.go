// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"cinemabackend/internal/auditlog"
	"cinemabackend/internal/bar"
	"cinemabackend/internal/cleanup"
	"cinemabackend/internal/config"
	"cinemabackend/internal/data"
	"cinemabackend/internal/logger"
	"cinemabackend/internal/middleware"
	"cinemabackend/internal/movie"
	"cinemabackend/internal/report"
	"cinemabackend/internal/room"
	"cinemabackend/internal/session"
	"cinemabackend/internal/settings"
	"cinemabackend/internal/ticket"
	"cinemabackend/internal/user"
)

type App struct {
	addr          string
	mux           *http.ServeMux
	connections   sync.WaitGroup
	totalRequests int64
}

func main() {
	// Step 1: Setup configuration first
	config.LoadEnv()
	config.ConfigurePaths()

	// Step 2: Setup logging
	loggerConfig := config.LoggerConfig()
	if err := logger.SetupLogger(loggerConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Only NOW is logging safe to use!
	logger.LogInfo("Environment and paths loaded. Logger ready.")

	config.LoadCORSConfig()
	config.LogCurrentEnvironment()

	// Step 3: Open the configured store backend
	store, closeStore, err := buildStore()
	if err != nil {
		logger.LogFatal("Failed to open store: %v", err)
	}
	defer closeStore()
	logger.LogInfo("Store backend %q ready.", config.StoreBackend())

	// Step 4: Setup app
	app := &App{
		addr: serverAddress(),
		mux:  routes(store),
	}

	// Step 5: Start background tasks
	cleanupCtx, cancelCleanup := context.WithCancel(context.Background())
	defer cancelCleanup()
	go cleanup.StartRoutine(cleanupCtx, store)

	// Step 6: Run server
	app.Run()
}

// buildStore opens the backend selected by STORE_BACKEND.
func buildStore() (data.Store, func(), error) {
	if config.StoreBackend() == config.StoreSQLite {
		store, err := data.NewSQLiteStore(config.SQLitePath())
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				logger.LogError("Failed to close database: %v", err)
			}
		}, nil
	}
	store, err := data.NewFileStore(config.DataDirectory())
	if err != nil {
		return nil, nil, err
	}
	return store, func() {}, nil
}

// serverAddress builds the server address from environment variables
func serverAddress() string {
	host := os.Getenv("SERVER_HOST")
	if host == "" {
		host = "127.0.0.1"
	}
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "5051"
	}
	return host + ":" + port
}

// routes wires services and handlers and mounts the API under /api.
func routes(store data.Store) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Services
	audit := auditlog.NewSink(store.Logs())
	barSvc := bar.NewService(store.Products())
	userSvc := user.NewService(store.Users())
	settingsSvc := settings.NewService(store.Settings())
	roomSvc := room.NewService(store)
	movieSvc := movie.NewService(store)
	sessionSvc := session.NewService(store)
	reportSvc := report.NewService(store)

	// The SQLite backend serializes seat-changing operations; the file
	// backend keeps the legacy unguarded read-then-write behavior.
	strict := config.StoreBackend() == config.StoreSQLite
	engine := ticket.NewEngine(store, barSvc, userSvc, settingsSvc, audit, strict)

	apiMux := http.NewServeMux()
	room.NewHandler(roomSvc).Register(apiMux)
	movie.NewHandler(movieSvc).Register(apiMux)
	session.NewHandler(sessionSvc).Register(apiMux)
	ticket.NewHandler(engine).Register(apiMux)
	bar.NewHandler(barSvc).Register(apiMux)
	user.NewHandler(userSvc).Register(apiMux)
	settings.NewHandler(settingsSvc).Register(apiMux)
	auditlog.NewHandler(audit).Register(apiMux)
	report.NewHandler(reportSvc).Register(apiMux)

	mux.Handle("/api/", http.StripPrefix("/api", apiMux))

	return mux
}

// Run starts the HTTP server
func (a *App) Run() {
	server := &http.Server{
		Addr:         a.addr,
		Handler:      a.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in a separate goroutine
	go func() {
		logger.LogInfo("Starting server on %s", a.addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.LogFatal("Server failed: %v", err)
		}
	}()

	// Wait for a shutdown signal
	<-stop
	logger.LogInfo("Shutdown signal received")

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown the server gracefully
	if err := server.Shutdown(ctx); err != nil {
		logger.LogError("Server shutdown error: %v", err)
	}

	// Wait for active connections to finish
	logger.LogInfo("Waiting for active connections to finish...")
	a.connections.Wait()
	logger.LogInfo("All connections closed. Total requests handled: %d", atomic.LoadInt64(&a.totalRequests))
	logger.LogInfo("Server shut down gracefully")
}

// Handler assembles all middleware around the main mux
func (a *App) Handler() http.Handler {
	var handler http.Handler = a.mux

	handler = a.trackConnections(handler)
	handler = middleware.CORS(handler)
	handler = withTimeout(handler, 15*time.Second)

	return handler
}

// Middleware: timeout handler
func withTimeout(h http.Handler, timeout time.Duration) http.Handler {
	return http.TimeoutHandler(h, timeout, "Request timed out")
}

// Middleware: track active connections and total requests
func (a *App) trackConnections(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.connections.Add(1)
		atomic.AddInt64(&a.totalRequests, 1)
		defer a.connections.Done()

		h.ServeHTTP(w, r)
	})
}
