// Command server runs the taxi association back-office API: member records,
// levy fines and payments, receipts, fleet administration, membership
// applications, notifications, and the disciplinary workflow, all backed by
// PostgreSQL with an audit trail relayed to Kafka.
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

	"github.com/twmb/franz-go/pkg/kgo"
	"golang.org/x/sync/errgroup"

	"taxiassoc/internal/application"
	"taxiassoc/internal/audit"
	"taxiassoc/internal/bankpayment"
	"taxiassoc/internal/fine"
	"taxiassoc/internal/fleet"
	"taxiassoc/internal/jwttoken"
	"taxiassoc/internal/levypayment"
	"taxiassoc/internal/member"
	"taxiassoc/internal/notification"
	"taxiassoc/internal/paymentmethod"
	"taxiassoc/internal/platform/config"
	"taxiassoc/internal/platform/httpserver"
	"taxiassoc/internal/platform/logger"
	"taxiassoc/internal/platform/metrics"
	"taxiassoc/internal/platform/postgres"
	platformredis "taxiassoc/internal/platform/redis"
	"taxiassoc/internal/receipt"
	httptransport "taxiassoc/internal/transport/http"
	"taxiassoc/internal/workflow"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	cache, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		return err
	}
	if cache != nil {
		defer cache.Close()
		log.Info("redis cache enabled")
	}

	m := metrics.New()

	auditStore := audit.NewPostgresStore(db)
	recorder := audit.NewRecorder(auditStore, log, audit.WithMetrics(m))

	memberSvc := member.NewService(member.NewPostgresStore(db), recorder, log)
	methodSvc := paymentmethod.NewService(paymentmethod.NewPostgresStore(db), log)

	notificationOpts := []notification.Option{notification.WithMetrics(m)}
	if cache != nil {
		notificationOpts = append(notificationOpts, notification.WithCache(cache))
	}
	notificationSvc := notification.NewService(notification.NewPostgresStore(db), memberSvc, log, notificationOpts...)

	fineSvc := fine.NewService(fine.NewPostgresStore(db), memberSvc, methodSvc, notificationSvc, recorder, log, fine.WithMetrics(m))
	levySvc := levypayment.NewService(levypayment.NewPostgresStore(db), memberSvc, methodSvc, recorder, log)
	bankSvc := bankpayment.NewService(bankpayment.NewPostgresStore(db), memberSvc, recorder, log)
	receiptSvc := receipt.NewService(receipt.NewPostgresStore(db), memberSvc, log)
	fleetSvc := fleet.NewService(fleet.NewPostgresTaxiStore(db), fleet.NewPostgresDriverStore(db), fleet.NewPostgresRouteStore(db), recorder, log)
	applicationSvc := application.NewService(application.NewPostgresStore(db), fleetSvc, log)
	workflowSvc := workflow.NewService(workflow.NewPostgresStore(db), fineSvc, memberSvc, recorder, log,
		workflow.WithMetrics(m), workflow.WithTransactions(db))

	validator := jwttoken.New(cfg.JWTSigningKey, cfg.JWTIssuer)
	router := httptransport.NewRouter(log, m, validator,
		member.NewHandler(memberSvc),
		paymentmethod.NewHandler(methodSvc),
		fine.NewHandler(fineSvc),
		levypayment.NewHandler(levySvc),
		bankpayment.NewHandler(bankSvc),
		receipt.NewHandler(receiptSvc),
		fleet.NewHandler(fleetSvc),
		application.NewHandler(applicationSvc),
		notification.NewHandler(notificationSvc),
		workflow.NewHandler(workflowSvc),
		audit.NewHandler(auditStore, log),
	)

	srv := httpserver.New(cfg.Addr, router)

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("starting taxiassoc server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if len(cfg.KafkaBrokers) > 0 {
		client, err := kgo.NewClient(kgo.SeedBrokers(cfg.KafkaBrokers...))
		if err != nil {
			return err
		}
		defer client.Close()

		relay := audit.NewRelay(auditStore, client, cfg.AuditTopic, log)
		if err := relay.EnsureTopic(ctx); err != nil {
			return err
		}
		group.Go(func() error {
			log.Info("audit relay started", "topic", cfg.AuditTopic)
			if err := relay.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
