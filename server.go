package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"deslimste/internal/app"
	"deslimste/internal/transport/rest"
)

func serve(ctx context.Context, cfg *Config) error {
	a, err := app.New(ctx, app.Options{
		MongoURI:    cfg.mongoURI,
		RedisURI:    cfg.redisURI,
		JWTSecret:   cfg.jwtSecret,
		MemoryStore: cfg.memoryStore,
	})
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	router := rest.NewRouter(&rest.Container{
		AuthService:  a.AuthService,
		Lifecycle:    a.Lifecycle,
		Sessions:     a.Sessions,
		QuestionRepo: a.QuestionRepo,
		WSHub:        a.WSHub,
		BaseURL:      cfg.baseURL,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.bind, cfg.port),
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Println("Server exited")
	return nil
}
