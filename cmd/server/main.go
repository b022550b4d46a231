package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sheetbox/internal/config"
	"sheetbox/internal/dispatch"
	"sheetbox/internal/httpapi"
	"sheetbox/internal/storage"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Remote backends build their client here, so bad credentials or a
	// malformed files path kill the process before it accepts requests.
	backend, err := storage.New(ctx, storage.Options{
		BasePath:    cfg.FilesPath,
		ScratchRoot: cfg.ScratchDir,
		Azure: storage.AzureCredentials{
			ConnectionString: cfg.AzureConnectionString,
			Account:          cfg.AzureAccount,
			AccountURL:       cfg.AzureAccountURL,
			Key:              cfg.AzureKey,
			SASToken:         cfg.AzureSASToken,
		},
		S3: storage.S3Credentials{
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		},
		Logger: log.Default(),
	})
	if err != nil {
		log.Fatalf("init storage: %v", err)
	}

	if lb, ok := backend.(*storage.LocalBackend); ok {
		if err := os.MkdirAll(lb.Base(), 0o755); err != nil {
			log.Fatalf("create files dir: %v", err)
		}
		log.Printf("storing files under %s", lb.Base())
	} else {
		log.Printf("storing files in %s", cfg.FilesPath)
	}

	d := dispatch.New(backend)
	api := httpapi.New(cfg, d)

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      api.NewEcho(),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Printf("listening on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
		os.Exit(1)
	}
}
