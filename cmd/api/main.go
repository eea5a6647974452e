package main

import (
	"log"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/roecybersecure/site-api/internal/env"
	"github.com/roecybersecure/site-api/internal/fileobject"
	"github.com/roecybersecure/site-api/internal/i18n"
	"github.com/roecybersecure/site-api/internal/mailer"
	"github.com/roecybersecure/site-api/internal/payment"
	"github.com/roecybersecure/site-api/internal/ratelimiter"
	"github.com/roecybersecure/site-api/internal/shop"
	"github.com/roecybersecure/site-api/internal/validator"
	"github.com/roecybersecure/site-api/worker"
	"github.com/ulule/limiter/v3"
	"go.uber.org/zap"
)

var validate = validator.New()

func main() {
	_ = godotenv.Load()

	cfg := config{
		addr:           env.GetString("ADDR", ":8080"),
		env:            env.GetString("ENV", "development"),
		frontendURL:    env.GetString("FRONTEND_URL", "http://localhost:3000"),
		currency:       env.GetString("CURRENCY", "USD"),
		whatsappNumber: env.GetString("WHATSAPP_NUMBER", "19126223901"),
		inboxEmail:     env.GetString("INBOX_EMAIL", "roecybersecdev@gmail.com"),
		redisAddr:      env.GetString("REDIS_ADDR", "localhost:6379"),

		stripe: stripeConfig{
			secretKey: env.GetString("STRIPE_SECRET_KEY", ""),
		},
		paypal: paypalConfig{
			clientID:     env.GetString("PAYPAL_CLIENT_ID", ""),
			clientSecret: env.GetString("PAYPAL_CLIENT_SECRET", ""),
			apiURL:       env.GetString("PAYPAL_API_URL", "https://api-m.sandbox.paypal.com"),
		},
		affirm: affirmConfig{
			publicKey:  env.GetString("AFFIRM_PUBLIC_API_KEY", ""),
			privateKey: env.GetString("AFFIRM_PRIVATE_API_KEY", ""),
			apiURL:     env.GetString("AFFIRM_API_URL", "https://sandbox.affirm.com/api/v2"),
		},
		smtp: smtpConfig{
			fromEmail: env.GetString("SMTP_FROM_EMAIL", "contact@roecybersecure.com"),
			addr:      env.GetString("SMTP_ADDR", "live.smtp.mailtrap.io"),
			username:  env.GetString("SMTP_USERNAME", ""),
			password:  env.GetString("SMTP_PASSWORD", ""),
			port:      env.GetInt("SMTP_PORT", 587),
		},
		supabase: supabaseConfig{
			url: env.GetString("SUPABASE_URL", ""),
			key: env.GetString("SUPABASE_KEY", ""),
		},
	}

	logger := zap.Must(zap.NewProduction()).Sugar()
	defer logger.Sync()

	translator, err := i18n.New()
	if err != nil {
		logger.Fatalw("failed to load locales", "error", err)
	}

	successURL := cfg.frontendURL + "/payment/success"
	cancelURL := cfg.frontendURL + "/payment/cancel"

	stripeProvider, err := payment.NewStripeProvider(
		cfg.stripe.secretKey,
		successURL,
		cancelURL,
		cfg.currency,
		logger,
	)
	if err != nil {
		logger.Fatalw("stripe configuration error", "error", err)
	}

	paypalProvider, err := payment.NewPayPalProvider(
		cfg.paypal.clientID,
		cfg.paypal.clientSecret,
		cfg.paypal.apiURL,
		successURL+"?provider=paypal",
		cancelURL+"?provider=paypal",
		cfg.currency,
		logger,
	)
	if err != nil {
		logger.Fatalw("paypal configuration error", "error", err)
	}

	affirmProvider, err := payment.NewAffirmProvider(
		cfg.affirm.publicKey,
		cfg.affirm.privateKey,
		cfg.affirm.apiURL,
		successURL,
		cancelURL,
		cfg.frontendURL,
		cfg.currency,
		logger,
	)
	if err != nil {
		logger.Fatalw("affirm configuration error", "error", err)
	}

	dispatcher := payment.NewDispatcher(logger, stripeProvider, paypalProvider, affirmProvider)

	redisOpt := asynq.RedisClientOpt{Addr: cfg.redisAddr}
	taskDistributor := worker.NewTaskDistributor(redisOpt)

	mailClient := mailer.NewSMTPClient(
		cfg.smtp.fromEmail,
		cfg.smtp.addr,
		cfg.smtp.username,
		cfg.smtp.password,
		cfg.smtp.port,
		logger,
	)

	taskProcessor := worker.NewRedisTaskProcessor(redisOpt, mailClient, cfg.inboxEmail)
	if err := taskProcessor.Start(); err != nil {
		logger.Fatalw("failed to start task processor", "error", err)
	}
	defer taskProcessor.Close()

	var fileStore fileobject.FileObject
	if cfg.supabase.url != "" {
		fileStore = fileobject.NewSupabaseStorage(cfg.supabase.url, cfg.supabase.key)
	} else {
		fileStore = &fileobject.FileSystemStorage{BasePath: "uploads", BaseURL: cfg.frontendURL + "/uploads"}
	}

	var rateLimitStore limiter.Store
	rateLimitStore, err = ratelimiter.NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.redisAddr}), "site-api")
	if err != nil {
		logger.Warnw("redis rate-limit store unavailable, using in-memory store", "error", err)
		rateLimitStore = ratelimiter.NewMemoryStore()
	}

	app := &application{
		cfg:             cfg,
		logger:          logger,
		translator:      translator,
		catalog:         shop.DefaultCatalog(),
		dispatcher:      dispatcher,
		affirm:          affirmProvider,
		taskDistributor: taskDistributor,
		fileStore:       fileStore,
		rateLimitStore:  rateLimitStore,
	}

	if err := app.serve(); err != nil {
		log.Panic(err)
	}
}
