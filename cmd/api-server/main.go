package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"futureagent/internal/admin"
	"futureagent/internal/affiliate"
	"futureagent/internal/aigen"
	"futureagent/internal/categories"
	"futureagent/internal/compare"
	"futureagent/internal/events"
	"futureagent/internal/health"
	"futureagent/internal/newsletter"
	"futureagent/internal/posts"
	"futureagent/internal/tools"
	"futureagent/pkg/database"
	"futureagent/pkg/logger"
	"futureagent/pkg/retry"
	"futureagent/pkg/utils"
)

// compareStore joins the two repos that together satisfy compare.Store.
type affiliateRepo = affiliate.Repo

type compareStore struct {
	*tools.Repo
	*affiliateRepo
}

func main() {
	appCfg := utils.LoadAppConfig()

	dbCfg := database.DefaultConfig()
	db := database.MustOpen(dbCfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	sb := dbCfg.Builder()

	fetchLog := logger.New("fetch")
	if appCfg.Quiet {
		fetchLog = log.New(io.Discard, "", 0)
	}
	retryOpts := retry.Options{Logger: fetchLog}

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.GET("/health", health.NewHandler(db, appCfg.Version).Check)

	hub := events.NewHub()

	toolsRepo := tools.NewRepo(db, sb)
	toolsFetcher := tools.NewFetcher(toolsRepo, retryOpts)

	var drafter tools.Drafter
	if appCfg.AIKey != "" {
		drafter = aigen.NewClient(appCfg)
	}
	toolsHandler := tools.NewHandler(toolsRepo, toolsFetcher, drafter)
	toolsHandler.RegisterRoutes(router.Group("/tools"))

	catRepo := categories.NewRepo(db, sb)
	categories.NewHandler(categories.NewFetcher(catRepo, retryOpts)).
		RegisterRoutes(router.Group("/categories"))

	postsRepo := posts.NewRepo(db, sb)
	posts.NewHandler(posts.NewFetcher(postsRepo, retryOpts)).
		RegisterRoutes(router.Group("/posts"))

	affRepo := affiliate.NewRepo(db, sb)
	affiliate.NewHandler(affRepo, hub, logger.New("affiliate")).
		RegisterRoutes(router.Group("/go"))

	comparer := compare.New(compareStore{toolsRepo, affRepo}, logger.New("compare"))
	compare.NewHandler(comparer).RegisterRoutes(router.Group("/compare"))

	newsletter.NewHandler(newsletter.NewRepo(db, sb)).
		RegisterRoutes(router.Group("/newsletter"))

	// Admin surface: tokens are minted by the platform, verified here
	tokenSvc := admin.TokenService{
		Secret: []byte(appCfg.JWTSecret),
		Issuer: appCfg.JWTIssuer,
	}
	adminGroup := router.Group("/admin")
	adminGroup.Use(admin.AuthMiddleware(tokenSvc, appCfg.AdminKeyHash))

	admin.NewHandler(admin.NewCountsRepo(db, sb), retryOpts).RegisterRoutes(adminGroup)
	toolsHandler.RegisterAdminRoutes(adminGroup)
	adminGroup.GET("/events/ws", events.WSHandler(hub))

	httpSrv := &http.Server{
		Addr:    appCfg.HTTPAddr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP API server listening on %s", appCfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	log.Println("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	log.Println("server stopped")
}
