package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/royal-shore/core-banking/internal/adapter/http/controller"
	"github.com/royal-shore/core-banking/internal/adapter/http/middleware"
	"github.com/royal-shore/core-banking/internal/adapter/http/router"
	"github.com/royal-shore/core-banking/internal/adapter/repository/postgres"
	"github.com/royal-shore/core-banking/internal/config"
	"github.com/royal-shore/core-banking/internal/identifier"
	"github.com/royal-shore/core-banking/internal/ledger"
	"github.com/royal-shore/core-banking/internal/notify"
	"github.com/royal-shore/core-banking/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := postgres.RunMigrations(migrateCtx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	txManager := postgres.NewTxManager(db, cfg.LockTimeoutMS)
	accountRepo := postgres.NewAccountRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	limitUsageRepo := postgres.NewLimitUsageRepository(db)
	userRepo := postgres.NewUserRepository(db)
	beneficiaryRepo := postgres.NewBeneficiaryRepository(db)
	cardRepo := postgres.NewCardRepository(db)
	loanRepo := postgres.NewLoanRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	ticketRepo := postgres.NewSupportTicketRepository(db)

	ids := identifier.NewGenerator(postgres.NewUniquenessCheck(db))

	var publisher *notify.Publisher
	if cfg.AMQPURL != "" {
		publisher, err = notify.NewPublisher(cfg.AMQPURL)
		if err != nil {
			log.Fatalf("connect message broker: %v", err)
		}
		defer publisher.Close()
	}

	var sink *notify.Sink
	if publisher != nil {
		sink = notify.NewSink(notificationRepo, publisher)
	} else {
		sink = notify.NewSink(notificationRepo, nil)
	}

	engine := ledger.NewEngine(
		txManager,
		accountRepo,
		transactionRepo,
		limitUsageRepo,
		userRepo,
		ids,
		sink,
		ledger.DefaultPolicy(),
	)

	accountService := services.NewAccountService(accountRepo, userRepo, ids)
	movementService := services.NewMovementService(engine, accountRepo, transactionRepo, beneficiaryRepo, userRepo)
	beneficiaryService := services.NewBeneficiaryService(beneficiaryRepo)
	cardService := services.NewCardService(cardRepo, ids)
	loanService := services.NewLoanService(loanRepo, accountRepo, engine, ids)
	notificationService := services.NewNotificationService(notificationRepo)
	supportService := services.NewSupportTicketService(ticketRepo, ids)

	mux := router.New(
		controller.NewAccountController(accountService),
		controller.NewMovementController(movementService),
		controller.NewBeneficiaryController(beneficiaryService),
		controller.NewCardController(cardService),
		controller.NewLoanController(loanService),
		controller.NewNotificationController(notificationService),
		controller.NewSupportTicketController(supportService),
		middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey),
	)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}

	go func() {
		log.Printf("core banking server listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen and serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down server")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown: %v", err)
	}

	log.Println("server stopped")
}
