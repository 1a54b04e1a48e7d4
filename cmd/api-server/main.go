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

	"github.com/gin-gonic/gin"

	"itooklib/internal/advisor"
	"itooklib/internal/books"
	"itooklib/internal/catalog"
	"itooklib/internal/discover"
	"itooklib/internal/favorites"
	"itooklib/internal/recommend"
	"itooklib/internal/search"
	"itooklib/internal/session"
	"itooklib/pkg/utils"
)

func main() {
	cfg := utils.Load()

	catalogClient := catalog.NewClient(cfg.JikanBaseURL, cfg.UpstreamTimeout)
	booksClient := books.NewClient(cfg.BooksBaseURL, cfg.UpstreamTimeout)
	genreCache := catalog.NewGenreCache(catalogClient)
	adv := advisor.New(context.Background(), cfg.GeminiAPIKey, cfg.VisionModel, cfg.TextModel)

	store := session.NewStore(cfg.SessionTTL)
	tokens := session.TokenService{
		Secret:   []byte(cfg.SessionSecret),
		Issuer:   cfg.SessionIssuer,
		Duration: cfg.SessionTTL,
	}

	router := gin.Default()

	// Optional: avoid “trusted all proxies” warning
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "ok",
			"ai_enabled": adv.Configured(),
			"sessions":   store.Len(),
		})
	})

	// Every page shares one session resolved from the signed cookie.
	pages := router.Group("/")
	pages.Use(session.Middleware(store, tokens))

	pages.GET("/session", func(c *gin.Context) {
		c.JSON(http.StatusOK, session.MustGetState(c).View())
	})

	searchHandler := search.NewHandler(catalogClient, adv)
	searchHandler.RegisterRoutes(pages.Group("/search"))

	recommendHandler := recommend.NewHandler(adv, catalogClient, booksClient)
	recommendHandler.RegisterRoutes(pages.Group("/recommend"))

	discoverHandler := discover.NewHandler(genreCache, catalogClient, booksClient)
	discoverHandler.RegisterRoutes(pages.Group("/discover"))

	favoritesHandler := favorites.NewHandler()
	favoritesHandler.RegisterRoutes(pages.Group("/"))

	httpSrv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP API server listening on %s", cfg.Addr)
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
