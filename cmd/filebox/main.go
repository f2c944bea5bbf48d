package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"html/template"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/filebox/core/config"
	"github.com/dmitrymomot/filebox/core/cookie"
	"github.com/dmitrymomot/filebox/core/logger"
	"github.com/dmitrymomot/filebox/core/router"
	"github.com/dmitrymomot/filebox/core/server"
	"github.com/dmitrymomot/filebox/core/storage"
	"github.com/dmitrymomot/filebox/middleware"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg Config
	config.MustLoad(&cfg) // panic on error

	var log = logger.New(logger.WithProduction(cfg.AppName))
	if cfg.isDevelopment() {
		log = logger.New(logger.WithDevelopment(cfg.AppName))
	}
	logger.SetAsDefault(log)

	// Setup file storage
	store, err := storage.NewFromConfig(cfg.Storage, storage.WithLogger(log))
	if err != nil {
		log.Error("Failed to create file storage", logger.Component("storage"), logger.Error(err))
		os.Exit(1)
	}

	// Setup cookie manager; fall back to an ephemeral secret so the app
	// works out of the box, at the cost of notices not surviving restarts.
	cookieCfg := cfg.Cookie
	if cookieCfg.Secrets == "" {
		cookieCfg.Secrets = randomSecret()
		log.Warn("COOKIE_SECRETS not set, using an ephemeral secret", logger.Component("cookie"))
	}
	cookieMgr, err := cookie.NewFromConfig(cookieCfg)
	if err != nil {
		log.Error("Failed to create cookie manager", logger.Component("cookie"), logger.Error(err))
		os.Exit(1)
	}

	// Load templates
	templates, err := loadTemplates(cfg.TemplateDir)
	if err != nil {
		log.Error("Failed to load templates", logger.Component("templates"), logger.Error(err))
		os.Exit(1)
	}

	// Setup router with custom context, error handler, and global middlewares
	r := router.New[*Context](
		router.WithContextFactory[*Context](newContext(cookieMgr, log)),
		router.WithErrorHandler[*Context](errorHandler(templates.error)),
		router.WithLogger[*Context](log),
		router.WithMiddleware(
			middleware.RequestID[*Context](),
			middleware.LoggingWithLogger[*Context](log.With(logger.Component("http.request"))),
		),
	)

	r.Get("/", indexHandler(store, templates.index))
	r.Post("/upload", uploadHandler(store, cfg.MaxUploadSize, log))
	r.Get("/preview/{filename}", previewHandler(store, templates.preview))
	r.Get("/download/{filename}", downloadHandler(store, log))
	r.Get("/delete/{filename}", deleteHandler(store, log))

	eg, ctx := errgroup.WithContext(ctx)

	s, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
	if err != nil {
		log.Error("Failed to create server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}
	eg.Go(s.Run(ctx, r))

	if err := eg.Wait(); err != nil {
		log.Error("Failed to run server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	log.Info("Application stopped")
}

// randomSecret generates an ephemeral cookie signing secret.
func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// templates holds all parsed templates
type templates struct {
	index   *template.Template
	preview *template.Template
	error   *template.Template
}

// loadTemplates loads and parses all HTML templates
func loadTemplates(dir string) (*templates, error) {
	index, err := template.ParseFiles(
		filepath.Join(dir, "layout.html"),
		filepath.Join(dir, "index.html"),
	)
	if err != nil {
		return nil, err
	}

	preview, err := template.ParseFiles(
		filepath.Join(dir, "layout.html"),
		filepath.Join(dir, "preview.html"),
	)
	if err != nil {
		return nil, err
	}

	errorTmpl, err := template.ParseFiles(
		filepath.Join(dir, "layout.html"),
		filepath.Join(dir, "error.html"),
	)
	if err != nil {
		return nil, err
	}

	return &templates{
		index:   index,
		preview: preview,
		error:   errorTmpl,
	}, nil
}
