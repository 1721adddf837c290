package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mystore/storefront/internal/assets"
	"github.com/mystore/storefront/internal/config"
	"github.com/mystore/storefront/internal/es"
	"github.com/mystore/storefront/internal/handlers"
	"github.com/mystore/storefront/internal/logging"
	authmw "github.com/mystore/storefront/internal/middleware/auth"
	loggingmw "github.com/mystore/storefront/internal/middleware/logging"
	"github.com/mystore/storefront/internal/mykafka"
	"github.com/mystore/storefront/internal/repo"
	"github.com/mystore/storefront/internal/seed"
	"github.com/mystore/storefront/internal/service"
	httpserver "github.com/mystore/storefront/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var producer *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer, err = mykafka.NewProducer(
			[]string{configuration.KAFKA_ADDRESS},
			[]string{"user_events", "product_events"},
		)
		if err != nil {
			log.Fatal(err)
		}
	}

	searchHandler := &handlers.SearchHandler{Index: "product"}
	if configuration.ES_URL != "" {
		client, err := es.NewClient(configuration)
		if err != nil {
			log.Fatal(err)
		}
		searchHandler.ES = client
	}

	store := &repo.GormRepo{DB: db, SessionSecret: []byte(configuration.SESSION_SECRET)}

	authService := &service.AuthService{Repo: store, Producer: producer}
	catalogService := &service.CatalogService{
		Repo:     store,
		Assets:   assets.NewResolver(configuration.UPLOAD_DIR),
		Producer: producer,
		ES:       searchHandler.ES,
		Index:    searchHandler.Index,
	}

	if configuration.SEED_DATABASE {
		seeder := &seed.Seeder{Repo: store}
		ctx := logging.IntoContext(context.Background(), logger)
		if err := seeder.Run(ctx); err != nil {
			logger.Error("seed_error", "error", err)
		}
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		AuthHandler:    &handlers.AuthHandler{Auth: authService},
		ProductHandler: &handlers.ProductHandler{Catalog: catalogService},
		SearchHandler:  searchHandler,
		Identity:       &authmw.Identity{Auth: authService},
		UploadDir:      configuration.UPLOAD_DIR,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
