package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecoroute/internal/handlers"
	"ecoroute/internal/logger"
	"ecoroute/internal/repository"
	"ecoroute/internal/repository/db"
	"ecoroute/internal/server"
	"ecoroute/internal/service"

	"github.com/spf13/viper"
)

func main() {
	// load config.yml first so the logger level can come from it
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(viper.GetString("log.level"))

	// open DB
	database, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := database.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(database)
	services := service.NewService(repos, authConfig(log))
	apiHandler := handlers.NewHandler(services, log, handlers.Config{
		FrontendOrigin: viper.GetString("cors.frontend_origin"),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := bootstrapAdmin(ctx, services); err != nil {
		log.Fatalw("admin bootstrap failed", "err", err)
	}

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	viper.SetEnvPrefix("ecoroute")
	viper.AutomaticEnv()
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "ecoroute.db")
		dbPath = "ecoroute.db"
	}
	return db.InitDB(dbPath)
}

// authConfig reads JWT settings; a missing secret is a hard startup error.
func authConfig(log *logger.Logger) service.AuthConfig {
	secret := viper.GetString("jwt.secret")
	if secret == "" {
		log.Fatalw("jwt.secret must be set in config")
	}
	return service.AuthConfig{
		SigningKey: secret,
		TokenTTL:   viper.GetDuration("jwt.ttl"),
	}
}

// bootstrapAdmin creates or promotes the configured admin account, if any.
func bootstrapAdmin(ctx context.Context, services *service.Service) error {
	email := viper.GetString("admin.email")
	password := viper.GetString("admin.password")
	if email == "" || password == "" {
		return nil
	}
	username := viper.GetString("admin.username")
	if username == "" {
		username = "admin"
	}
	return services.EnsureAdmin(ctx, username, email, password)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
