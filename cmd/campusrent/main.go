package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusrent/internal/app/commands"
	availabilityapp "campusrent/internal/app/handlers/availability"
	bookingapp "campusrent/internal/app/handlers/booking"
	catalogapp "campusrent/internal/app/handlers/catalog"
	reviewsapp "campusrent/internal/app/handlers/reviews"
	"campusrent/internal/app/middleware"
	appoutbox "campusrent/internal/app/outbox"
	"campusrent/internal/app/policies"
	"campusrent/internal/app/queries"
	authsvc "campusrent/internal/app/services/auth"
	"campusrent/internal/app/uow"
	domainuser "campusrent/internal/domain/user"
	"campusrent/internal/infra/broker/kafka"
	"campusrent/internal/infra/config"
	mongodb "campusrent/internal/infra/db/mongo"
	ginserver "campusrent/internal/infra/http/gin"
	"campusrent/internal/infra/notify"
	"campusrent/internal/infra/obs"
	infraoutbox "campusrent/internal/infra/outbox"
	"campusrent/internal/infra/security"
	"campusrent/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application wiring failed", "error", err)
		os.Exit(1)
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	if app.outboxWorker != nil {
		go func() {
			if err := app.outboxWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	}

	go app.runScheduler(ctx, cfg.SchedulerInterval, logger)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
		if app.producer != nil {
			if err := app.producer.Close(); err != nil {
				logger.Error("kafka producer close failed", "error", err)
			}
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers     ginserver.Handlers
	commandBus   commands.Bus
	outboxWorker *infraoutbox.Worker
	producer     *kafka.Producer
	ready        func() error
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (*application, error) {
	app := &application{ready: func() error { return nil }}

	var (
		uowFactory uow.UoWFactory
		outboxImpl appoutbox.Outbox
		notifier   policies.Notifier
		idStore    middleware.IdempotencyStore
		userRepo   domainuser.Repository
	)

	switch cfg.StorageMode {
	case "mongo":
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		app.ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
		userRepo = mongodb.NewUserRepository(client.DB)
		uowFactory = mongodb.Factory{
			DB:          client.DB,
			ProductRepo: mongodb.NewProductRepository(client.DB),
			BookingRepo: mongodb.NewBookingRepository(client.DB),
			ReviewsRepo: mongodb.NewReviewRepository(client.DB),
			UserRepo:    userRepo,
		}
		store := infraoutbox.NewStore(client.DB)
		outboxImpl = store
		idStore = memory.NewIdempotencyStore()
		notifier = buildNotifier(cfg, userRepo, logger)

		if len(cfg.KafkaBrokers) > 0 {
			producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
			if err != nil {
				return nil, err
			}
			app.producer = producer
			app.outboxWorker = &infraoutbox.Worker{
				Store:       store,
				Producer:    producer,
				Interval:    cfg.OutboxPollInterval,
				TopicPrefix: cfg.KafkaTopicPrefix,
				Backoff:     cfg.RetryBackoff,
			}
		} else {
			logger.Warn("KAFKA_BROKERS not set, staged events will not be relayed")
		}
	default:
		userRepo = memory.NewUserRepository()
		uowFactory = memory.Factory{
			ProductRepo: memory.NewProductRepository(),
			BookingRepo: memory.NewBookingRepository(),
			ReviewsRepo: memory.NewReviewsRepository(),
			UserRepo:    userRepo,
		}
		outboxImpl = memory.NewOutbox()
		idStore = memory.NewIdempotencyStore()
		notifier = buildNotifier(cfg, userRepo, logger)
	}

	authService := &authsvc.Service{
		Users:     userRepo,
		Passwords: security.BcryptHasher{},
		Tokens:    security.JWTTokenManager{Secret: []byte(cfg.JWTSecret)},
		TokenTTL:  cfg.TokenTTL,
		Logger:    logger,
	}

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, bookingapp.RequestBookingCommand{}.Key(), &bookingapp.RequestBookingHandler{
		Outbox:   outboxImpl,
		Notifier: notifier,
		Logger:   logger,
	})
	commands.RegisterHandler(commandBus, bookingapp.DecideBookingCommand{}.Key(), &bookingapp.DecideBookingHandler{
		Outbox:   outboxImpl,
		Notifier: notifier,
		Logger:   logger,
	})
	commands.RegisterHandler(commandBus, bookingapp.AdvanceBookingsCommand{}.Key(), &bookingapp.AdvanceBookingsHandler{
		Outbox: outboxImpl,
		Logger: logger,
	})
	commands.RegisterHandler(commandBus, bookingapp.SendReturnRemindersCommand{}.Key(), &bookingapp.SendReturnRemindersHandler{
		UoWFactory: uowFactory,
		Notifier:   notifier,
		Logger:     logger,
	})
	commands.RegisterHandler(commandBus, reviewsapp.SubmitReviewCommand{}.Key(), &reviewsapp.SubmitReviewHandler{
		Logger: logger,
	})
	commands.RegisterHandler(commandBus, reviewsapp.RecomputeRatingCommand{}.Key(), &reviewsapp.RecomputeRatingHandler{
		Logger: logger,
	})
	commands.RegisterHandler(commandBus, catalogapp.CreateProductCommand{}.Key(), &catalogapp.CreateProductHandler{
		Logger: logger,
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, availabilityapp.GetCalendarQuery{}.Key(), &availabilityapp.GetCalendarHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, availabilityapp.CheckRangeQuery{}.Key(), &availabilityapp.CheckRangeHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, bookingapp.ListRenterBookingsQuery{}.Key(), &bookingapp.ListRenterBookingsHandler{UoWFactory: uowFactory, Logger: logger})
	queries.RegisterHandler(queryBus, bookingapp.ListOwnerRequestsQuery{}.Key(), &bookingapp.ListOwnerRequestsHandler{UoWFactory: uowFactory, Logger: logger})
	queries.RegisterHandler(queryBus, catalogapp.ListCatalogQuery{}.Key(), &catalogapp.ListCatalogHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, catalogapp.ListOwnerProductsQuery{}.Key(), &catalogapp.ListOwnerProductsHandler{UoWFactory: uowFactory})

	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Validation(),
		middleware.Idempotency(idStore, nil),
		middleware.Transaction(uowFactory, nil),
		middleware.OutboxFlush(outboxImpl),
	)
	queryBusWithMiddleware := middleware.ChainQueries(queryBus)

	app.commandBus = commandBusWithMiddleware
	authMW := ginserver.AuthMiddleware{Service: authService, Logger: logger}
	app.handlers = ginserver.Handlers{
		Booking:        ginserver.BookingHandler{Commands: commandBusWithMiddleware, Queries: queryBusWithMiddleware, Logger: logger},
		Availability:   ginserver.AvailabilityHandler{Queries: queryBusWithMiddleware, Logger: logger},
		Catalog:        ginserver.CatalogHandler{Commands: commandBusWithMiddleware, Queries: queryBusWithMiddleware, Logger: logger},
		Review:         ginserver.ReviewHandler{Commands: commandBusWithMiddleware, Logger: logger},
		Auth:           ginserver.AuthHandler{Service: authService, Logger: logger},
		AuthMiddleware: authMW.Handle,
	}
	return app, nil
}

// runScheduler drives the time-based booking transitions and the return
// reminders on a fixed interval.
func (a *application) runScheduler(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if _, err := a.commandBus.Dispatch(ctx, bookingapp.AdvanceBookingsCommand{Now: now}); err != nil {
				logger.Error("booking advance sweep failed", "error", err)
			}
			if _, err := a.commandBus.Dispatch(ctx, bookingapp.SendReturnRemindersCommand{Now: now}); err != nil {
				logger.Error("return reminder sweep failed", "error", err)
			}
		}
	}
}

func buildNotifier(cfg config.Config, users domainuser.Repository, logger *slog.Logger) policies.Notifier {
	if cfg.MailConfigured() {
		return &notify.MailNotifier{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			Users:    users,
			Logger:   logger,
		}
	}
	logger.Info("SMTP not configured, notifications go to the log")
	return notify.LogNotifier{Logger: logger}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
