package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"mcq-quiz-service/internal/app"
	"mcq-quiz-service/internal/bank"
	"mcq-quiz-service/internal/config"
	"mcq-quiz-service/internal/infra/memory"
	pgbank "mcq-quiz-service/internal/infra/postgres"
	redisinfra "mcq-quiz-service/internal/infra/redis"
	transport "mcq-quiz-service/internal/transport/http"
)

const defaultCSVPath = "data/question-bank.csv"

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	csvPath := cfg.Bank.CSVPath
	if csvPath == "" {
		csvPath = defaultCSVPath
	}
	var loader memory.BankLoader = bank.NewCSVLoader(csvPath)
	if pool != nil {
		loader = pgbank.NewBankLoader(pool)
	}

	bankTTL := config.TTLDuration(cfg.Bank.TTL, 10*time.Minute)
	var bankRepo app.BankRepository
	if redisClient != nil {
		bankRepo = redisinfra.NewBankCache(redisClient, loader, bankTTL)
	} else {
		bankRepo = memory.NewBankRepository(loader)
	}

	// Session eviction is opt-in; without a TTL sessions live until restart.
	sessionTTL := config.TTLDuration(cfg.Session.TTL, 0)
	var store app.SessionRepository
	if redisClient != nil {
		store = redisinfra.NewSessionStore(redisClient, sessionTTL)
	} else {
		store = memory.NewSessionStoreWithTTL(sessionTTL)
	}

	service := app.NewQuizService(store, bankRepo)
	service.SetDefaultLength(cfg.Quiz.Length)

	apiHandler := transport.NewHandler(service)
	wsHandler := transport.NewWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	apiHandler.Register(mux)
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
