package main

import (
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"petshop-api/internal/adapters/auth/jwt"
	"petshop-api/internal/adapters/images/fsstore"
	pg "petshop-api/internal/adapters/storage/postgres"
	"petshop-api/internal/config"
	"petshop-api/internal/platform/logger"
	"petshop-api/internal/router"
)

func main() {
	// .env opcional para dev; en prod las vars vienen del entorno
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    "petshop-api",
	})

	codec := jwt.NewCodec(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTTL.Std())

	opts := router.Options{
		Config:   cfg,
		Logger:   log,
		Verifier: codec,
		Issuer:   codec,
		Images:   fsstore.New(cfg.Uploads.Dir),
	}

	if cfg.DB.DSN != "" {
		db, err := pg.Open(cfg.DB.DSN)
		if err != nil {
			log.Error("postgres open", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
		opts.DB = db
		log.Info("storage", map[string]any{"backend": "postgres"})
	} else {
		log.Info("storage", map[string]any{"backend": "memory"})
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": cfg.Server.Addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
