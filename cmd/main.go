package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskhub/auth"
	"taskhub/db"
	"taskhub/httpapi"
	"taskhub/realtime"
	"taskhub/repositories"
	"taskhub/services"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting, so every defer (pool close, worker
// drain) executes before the process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (Postgres)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Open(ctx, config.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing database pool...")
		pool.Close()
	}()
	if err := db.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("schema bootstrap failed: %w", err)
	}

	// 3. Repositories & shared token service
	users := repositories.NewUserRepository(pool)
	teams := repositories.NewTeamRepository(pool)
	tasks := repositories.NewTaskRepository(pool)
	comments := repositories.NewCommentRepository(pool)
	tags := repositories.NewTagRepository(pool)
	tokens := auth.NewTokenService(config.JWTSecret, config.JWTIssuer, config.AuthTokenDuration)

	// 4. Realtime layer: registry, dispatch queue, router, gateway.
	// The bridge exists before the gateway starts; until Bind it drops
	// broadcasts with a warning.
	registry := realtime.NewRegistry()
	queue := make(chan realtime.Outbound, config.EventBufferSize)
	emitter := realtime.NewEmitter(log, registry, queue)
	bridge := realtime.NewBridge(log, teams, users)
	router := realtime.NewRouter(log, registry, tokens, teams, bridge)
	gateway := realtime.NewGateway(log, registry, router, config.ConnectionBufferSize, config.AllowedOrigin)

	sup := realtime.NewSupervisor(log)
	sup.Add(realtime.NewDispatcher(log, registry, queue))
	supDone := make(chan struct{})
	go func() {
		defer close(supDone)
		sup.Run(ctx)
	}()
	bridge.Bind(emitter)

	// 5. HTTP server (REST + websocket endpoint)
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	srv := &http.Server{
		Addr: address,
		Handler: httpapi.NewRouter(httpapi.Deps{
			Log:         log,
			Tokens:      tokens,
			AuthService: services.NewAuthService(users, tokens),
			Users:       users,
			Teams:       teams,
			Tasks:       tasks,
			Comments:    comments,
			Tags:        tags,
			Bridge:      bridge,
			Realtime:    gateway,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 6. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 7. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP shutdown incomplete", "error", err)
	}
	sup.Stop()
	<-supDone
	log.Info("Program stopped cleanly")

	return nil
}
