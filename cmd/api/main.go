package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/peakhr/hr-console-go/internal/client/hrcore"
	"github.com/peakhr/hr-console-go/internal/config"
	appHTTP "github.com/peakhr/hr-console-go/internal/handler/http"
	"github.com/peakhr/hr-console-go/internal/pkg/cache"
	"github.com/peakhr/hr-console-go/internal/pkg/database"
	"github.com/peakhr/hr-console-go/internal/pkg/jwt"
	"github.com/peakhr/hr-console-go/internal/pkg/sse"
	"github.com/peakhr/hr-console-go/internal/repository/postgresql"
	directoryService "github.com/peakhr/hr-console-go/internal/service/directory"
	leaveService "github.com/peakhr/hr-console-go/internal/service/leave"
	notificationService "github.com/peakhr/hr-console-go/internal/service/notification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	redis := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer redis.Close()
	if err := redis.Ping(context.Background()); err != nil {
		// Directory lookups fall back to direct HR core calls when the
		// cache is unreachable, so this is not fatal.
		slog.Warn("redis unreachable, directory cache disabled", "error", err)
	}

	hrCore := hrcore.NewClient(cfg.HRCore)

	notifRepo := postgresql.NewNotificationRepository(db)
	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	hub := sse.NewHub()

	resolver := directoryService.NewResolver(hrCore, redis, cfg.Redis.DirectoryTTL)
	notifService := notificationService.NewNotificationService(
		notifRepo,
		hrCore,
		resolver,
		hrCore,
		hub,
		notificationService.Config{},
	)
	defer notifService.Stop()

	leaveSvc := leaveService.NewLeaveService(hrCore, notifService)

	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	notifHandler := appHTTP.NewNotificationHandler(notifService, jwtService)

	router := appHTTP.NewRouter(cfg, jwtService, leaveHandler, notifHandler)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	case <-quit:
		slog.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			fmt.Println("Shutdown error:", err)
		}
	}
}
