package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rentwear/internal/app/commands"
	"rentwear/internal/app/dto"
	availabilityapp "rentwear/internal/app/handlers/availability"
	pricingapp "rentwear/internal/app/handlers/pricing"
	reservationsapp "rentwear/internal/app/handlers/reservations"
	"rentwear/internal/app/middleware"
	"rentwear/internal/app/outbox"
	"rentwear/internal/app/policies"
	"rentwear/internal/app/queries"
	"rentwear/internal/app/uow"
	domaincatalog "rentwear/internal/domain/catalog"
	domainpricing "rentwear/internal/domain/pricing"
	"rentwear/internal/infra/broker/kafka"
	"rentwear/internal/infra/config"
	mongostore "rentwear/internal/infra/db/mongo"
	ginserver "rentwear/internal/infra/http/gin"
	"rentwear/internal/infra/obs"
	infraoutbox "rentwear/internal/infra/outbox"
	"rentwear/internal/infra/storage/memory"
	"rentwear/internal/infra/storage/s3"
)

const (
	eventSource     = "app://rentwear"
	shutdownTimeout = 5 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		obs.NewLogger("prod").Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)
	slog.SetDefault(logger)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("rentwear stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.close()

	if err := loadItemFixtures(ctx, store.items, cfg.ItemsFixtures, logger); err != nil {
		logger.Warn("item fixtures load failed", "error", err, "path", cfg.ItemsFixtures)
	}

	engine := domainpricing.NewEngine(loadTables(ctx, cfg, logger))
	app := buildApplication(store, engine, logger)

	if cfg.KafkaEnabled() {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, kafka.NewConfig("rentwear"))
		if err != nil {
			return fmt.Errorf("kafka producer: %w", err)
		}
		defer producer.Close()
		worker := &infraoutbox.Worker{
			Store:       store.outbox,
			Producer:    producer,
			Interval:    cfg.OutboxPollInterval,
			TopicPrefix: cfg.KafkaTopicPrefix,
			Source:      eventSource,
			Backoff:     cfg.RetryBackoff,
			Logger:      logger,
		}
		go func() {
			if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
		logger.Info("outbox worker started", "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("KAFKA_BROKERS not set, outbox events stay queued")
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Ready: store.ready}, app)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("HTTP server stopped")
	return nil
}

// storage bundles whichever backend STORAGE_MODE selected.
type storage struct {
	factory     uow.UoWFactory
	items       domaincatalog.Repository
	outbox      infraoutbox.Store
	idempotency middleware.IdempotencyStore
	ready       func(ctx context.Context) error
	close       func()
}

func openStorage(ctx context.Context, cfg config.Config, logger *slog.Logger) (storage, error) {
	if cfg.StorageMode == config.StorageMongo {
		return openMongo(ctx, cfg, logger)
	}
	queue := memory.NewOutboxQueue()
	factory := &memory.Factory{
		Items:        memory.NewItemRepository(),
		Renters:      memory.NewRenterRepository(),
		Reservations: memory.NewReservationRepository(),
		Outbox:       queue,
	}
	return storage{
		factory:     factory,
		items:       factory.Items,
		outbox:      queue,
		idempotency: memory.NewIdempotencyStore(cfg.IdempotencyTTL),
		ready:       func(context.Context) error { return nil },
		close:       func() {},
	}, nil
}

func openMongo(ctx context.Context, cfg config.Config, logger *slog.Logger) (storage, error) {
	client, err := mongostore.New(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return storage{}, fmt.Errorf("mongo connect: %w", err)
	}
	closeClient := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Close(closeCtx); err != nil {
			logger.Warn("mongo disconnect failed", "error", err)
		}
	}
	reservations, err := mongostore.NewReservationRepository(ctx, client.DB)
	if err != nil {
		closeClient()
		return storage{}, err
	}
	outboxStore, err := infraoutbox.NewMongoStore(ctx, client.DB)
	if err != nil {
		closeClient()
		return storage{}, err
	}
	idempotency, err := mongostore.NewIdempotencyStore(ctx, client.DB, cfg.IdempotencyTTL)
	if err != nil {
		closeClient()
		return storage{}, err
	}
	items := mongostore.NewItemRepository(client.DB)
	logger.Info("mongo storage ready", "db", cfg.MongoDB)
	return storage{
		factory: mongostore.Factory{
			DB:           client.DB,
			Items:        items,
			Renters:      mongostore.NewRenterRepository(client.DB),
			Reservations: reservations,
			Outbox:       outboxStore,
		},
		items:       items,
		outbox:      outboxStore,
		idempotency: idempotency,
		ready:       client.Ping,
		close:       closeClient,
	}, nil
}

// loadTables prefers an inline PRICING_TABLES document, then the S3 rate card.
func loadTables(ctx context.Context, cfg config.Config, logger *slog.Logger) domainpricing.Tables {
	if cfg.PricingTables != "" {
		return domainpricing.LoadTables(cfg.PricingTables, logger)
	}
	if !cfg.RateCardFromS3() {
		return domainpricing.DefaultTables()
	}
	src, err := s3.NewRateCardSource(cfg.S3Endpoint, cfg.S3UseSSL, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.RateCardKey, logger)
	if err != nil {
		logger.Warn("rate card source unavailable, using defaults", "error", err)
		return domainpricing.DefaultTables()
	}
	return policies.LoadRateCard(ctx, src, logger)
}

func buildApplication(store storage, pricer policies.RentalPricer, logger *slog.Logger) ginserver.Handlers {
	encoder := outbox.JSONEventEncoder{Source: eventSource}

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler[reservationsapp.ConfirmReservationCommand, *dto.ReservationResult](commandBus, reservationsapp.ConfirmReservationCommand{}.Key(), &reservationsapp.ConfirmReservationHandler{
		Pricer:  pricer,
		Encoder: encoder,
		Logger:  logger,
	})
	commands.RegisterHandler[reservationsapp.CancelReservationCommand, *dto.ReservationResult](commandBus, reservationsapp.CancelReservationCommand{}.Key(), &reservationsapp.CancelReservationHandler{
		Encoder: encoder,
		Logger:  logger,
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler[pricingapp.QuoteRentalQuery, dto.RentalQuote](queryBus, pricingapp.QuoteRentalQuery{}.Key(), &pricingapp.QuoteRentalHandler{
		UoWFactory: store.factory,
		Pricer:     pricer,
		Logger:     logger,
	})
	queries.RegisterHandler[pricingapp.RentOrBuyQuery, dto.RentOrBuyAdvice](queryBus, pricingapp.RentOrBuyQuery{}.Key(), &pricingapp.RentOrBuyHandler{
		UoWFactory: store.factory,
	})
	queries.RegisterHandler[availabilityapp.ItemCalendarQuery, dto.ItemCalendar](queryBus, availabilityapp.ItemCalendarQuery{}.Key(), &availabilityapp.ItemCalendarHandler{
		UoWFactory: store.factory,
	})

	logger.Debug("handlers registered", "commands", commandBus.Keys(), "queries", queryBus.Keys())

	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Logging(logger),
		middleware.Validation(middleware.SelfValidator{}),
		middleware.Idempotency(store.idempotency, nil),
		middleware.Transaction(store.factory, nil),
		middleware.OutboxFlush(),
	)
	queryBusWithMiddleware := middleware.ChainQueries(
		queryBus,
		middleware.QueryLogging(logger),
		middleware.QueryValidation(middleware.SelfValidator{}),
	)

	return ginserver.Handlers{
		Pricing:      ginserver.PricingHandler{Queries: queryBusWithMiddleware},
		Availability: ginserver.AvailabilityHandler{Queries: queryBusWithMiddleware},
		Reservation:  ginserver.ReservationHandler{Commands: commandBusWithMiddleware},
	}
}
