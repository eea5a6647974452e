package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/roecybersecure/site-api/internal/fileobject"
	"github.com/roecybersecure/site-api/internal/i18n"
	"github.com/roecybersecure/site-api/internal/payment"
	"github.com/roecybersecure/site-api/internal/ratelimiter"
	"github.com/roecybersecure/site-api/internal/shop"
	"github.com/roecybersecure/site-api/worker"
	"github.com/ulule/limiter/v3"
	"go.uber.org/zap"
)

type application struct {
	cfg             config
	logger          *zap.SugaredLogger
	translator      *i18n.Translator
	catalog         *shop.Catalog
	dispatcher      *payment.Dispatcher
	affirm          *payment.AffirmProvider
	taskDistributor worker.TaskDistributor
	fileStore       fileobject.FileObject
	rateLimitStore  limiter.Store
	wg              sync.WaitGroup
}

type config struct {
	addr           string
	env            string
	frontendURL    string
	currency       string
	whatsappNumber string
	inboxEmail     string
	redisAddr      string

	stripe   stripeConfig
	paypal   paypalConfig
	affirm   affirmConfig
	smtp     smtpConfig
	supabase supabaseConfig
}

type stripeConfig struct {
	secretKey string
}

type paypalConfig struct {
	clientID     string
	clientSecret string
	apiURL       string
}

type affirmConfig struct {
	publicKey  string
	privateKey string
	apiURL     string
}

type smtpConfig struct {
	fromEmail string
	addr      string
	username  string
	password  string
	port      int
}

type supabaseConfig struct {
	url string
	key string
}

func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{app.cfg.frontendURL},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Accept-Language", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", app.healthcheck)

		r.Route("/shop", func(r chi.Router) {
			r.Get("/configurations", app.listConfigurations)
			r.With(app.ipRateLimit(20, time.Minute)).Post("/whatsapp-order", app.createWhatsAppOrder)
			r.Get("/whatsapp-order/qr", app.whatsAppOrderQR)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Use(app.ipRateLimit(10, time.Minute))

			r.Post("/stripe", app.createStripeSession)
			r.Post("/paypal", app.createPayPalOrder)
			r.Post("/affirm", app.captureAffirmPayment)
		})

		r.With(app.ipRateLimit(5, time.Minute)).Post("/contact", app.submitContactMessage)
		r.With(app.ipRateLimit(5, time.Minute)).Post("/careers/apply", app.submitApplication)
	})

	return r
}

// ipRateLimit keys requests by client IP; chi's RealIP middleware has
// already rewritten RemoteAddr by the time this runs.
func (app *application) ipRateLimit(limit int64, period time.Duration) func(http.Handler) http.Handler {
	mw := ratelimiter.NewRateLimit(app.rateLimitStore, limiter.Rate{
		Limit:  limit,
		Period: period,
	}, func(r *http.Request) string {
		return r.RemoteAddr
	})

	return func(next http.Handler) http.Handler {
		return mw.Handler(next)
	}
}

func (app *application) healthcheck(w http.ResponseWriter, r *http.Request) {
	app.successResponse(w, http.StatusOK, envelope{
		"env":    app.cfg.env,
		"status": "available",
	})
}

func (app *application) serve() error {
	srv := &http.Server{
		Addr:    app.cfg.addr,
		Handler: app.routes(),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		s := <-quit

		app.logger.Infow("caught signal", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*20)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		app.wg.Wait()
		shutdownError <- nil
	}()

	app.logger.Infow("server has started", "addr", app.cfg.addr, "env", app.cfg.env)
	err := srv.ListenAndServe()

	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.cfg.addr, "env", app.cfg.env)
	return nil
}
