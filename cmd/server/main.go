package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"hash/maphash"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-agent/internal/agent"
	"github.com/vancomm/minesweeper-agent/internal/config"
	"github.com/vancomm/minesweeper-agent/internal/database"
	"github.com/vancomm/minesweeper-agent/internal/handlers"
	"github.com/vancomm/minesweeper-agent/internal/middleware"
)

//go:embed migrations
var migrations embed.FS

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func main() {
	var handler slog.Handler = slog.NewJSONHandler(os.Stderr, nil)
	if config.Development() {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level: slog.LevelDebug,
		})
	}
	logger := slog.New(handler)
	agent.Log = logger

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.Error("fatal", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	db, err := database.Connect(ctx)
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(migrations); err != nil {
		return err
	}

	jwt, err := config.NewJWT()
	if err != nil {
		return fmt.Errorf("unable to load jwt config: %w", err)
	}

	cookies, err := config.NewCookies(jwt)
	if err != nil {
		return fmt.Errorf("unable to load cookies config: %w", err)
	}

	ws := config.NewWebSocket()

	auth := handlers.NewAuth(logger, db, cookies, jwt)
	session := handlers.NewSession(logger, db, ws, createRand())

	router := http.NewServeMux()

	router.HandleFunc("POST /v1/register", auth.Register)
	router.HandleFunc("POST /v1/login", auth.Login)
	router.HandleFunc("POST /v1/logout", auth.Logout)
	router.HandleFunc("GET /v1/status", auth.Status)

	router.HandleFunc("GET /v1/leaderboard", session.Leaderboard)

	router.HandleFunc("POST /v1/session", session.Create)
	router.HandleFunc("GET /v1/session/{id}", session.Fetch)
	router.HandleFunc("POST /v1/session/{id}/step", session.Step)
	router.HandleFunc("POST /v1/session/{id}/solve", session.Solve)
	router.HandleFunc("/v1/session/{id}/watch", session.Watch)

	server := &http.Server{
		Addr: config.Port(),
		Handler: middleware.Wrap(
			router,
			middleware.Cors(),
			middleware.Auth(logger, cookies),
			middleware.Logging(logger),
		),
	}

	logger.Info("server listening", slog.String("addr", server.Addr))

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	return g.Wait()
}
