package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"

	"github.com/rl1809/book-lending/internal/adapter/handler"
	"github.com/rl1809/book-lending/internal/adapter/handler/pb"
	"github.com/rl1809/book-lending/internal/adapter/storage"
	"github.com/rl1809/book-lending/internal/config"
	"github.com/rl1809/book-lending/internal/core/service"
	"github.com/rl1809/book-lending/internal/logger"
	"github.com/rl1809/book-lending/internal/metrics"
	"github.com/rl1809/book-lending/internal/port"
)

func main() {
	configPath := flag.String("config", os.Getenv("LIBRARY_CONFIG"), "path to a YAML config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal().Err(err).Msg("failed to load .env")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("failed to open store")
	}
	log.Info().Str("driver", cfg.Storage.Driver).Msg("store ready")

	library := service.NewLibraryService(store)
	m := metrics.New(prometheus.DefaultRegisterer)

	// Initialize gRPC server; NumStreamWorkers is the request worker pool
	grpcServer := grpc.NewServer(
		grpc.NumStreamWorkers(uint32(cfg.Server.NumStreamWorkers)),
		grpc.ChainUnaryInterceptor(handler.UnaryInterceptor(m)),
	)
	pb.RegisterLibraryServiceServer(grpcServer, handler.NewGRPCHandler(library, m))

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr())
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Server.GRPCAddr()).Msg("failed to listen")
	}

	go func() {
		log.Info().Str("addr", cfg.Server.GRPCAddr()).Msg("gRPC server listening")
		if err := grpcServer.Serve(lis); err != nil {
			log.Error().Err(err).Msg("gRPC server error")
		}
	}()

	// Initialize HTTP server
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	handler.NewHTTPHandler(library, m).Register(mux)

	httpServer := &http.Server{
		Addr:    cfg.Server.HTTPAddr(),
		Handler: mux,
	}

	go func() {
		log.Info().Str("addr", cfg.Server.HTTPAddr()).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("HTTP server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown")
	}
	log.Info().Msg("HTTP server stopped")

	grpcServer.GracefulStop()
	log.Info().Msg("gRPC server stopped")

	if err := closeStore(); err != nil {
		log.Error().Err(err).Msg("close store")
	}
	log.Info().Msg("connections closed")
}

func openStore(ctx context.Context, cfg *config.Config) (port.BookRepository, func() error, error) {
	switch cfg.Storage.Driver {
	case config.DriverMySQL:
		db, err := storage.OpenMySQL(ctx, storage.MySQLConfig{
			DSN:             cfg.MySQL.DSN,
			MaxOpenConns:    cfg.MySQL.MaxOpenConns,
			MaxIdleConns:    cfg.MySQL.MaxIdleConns,
			ConnMaxLifetime: cfg.MySQL.ConnMaxLifetime,
		})
		if err != nil {
			return nil, nil, err
		}

		adapter := storage.NewMySQLAdapter(db, cfg.Storage.QueryTimeout)
		if cfg.MySQL.AutoMigrate {
			if err := adapter.Migrate(ctx); err != nil {
				db.Close()
				return nil, nil, err
			}
			log.Info().Msg("schema migrated")
		}
		return adapter, db.Close, nil

	case config.DriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		adapter := storage.NewRedisAdapter(rdb, cfg.Redis.KeyPrefix, cfg.Storage.QueryTimeout)
		if err := adapter.Ping(ctx); err != nil {
			rdb.Close()
			return nil, nil, err
		}
		return adapter, rdb.Close, nil

	default:
		return storage.NewMemoryAdapter(), func() error { return nil }, nil
	}
}
