package app

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/book-circle/lending/config"
	"github.com/Astemirdum/book-circle/lending/internal/handler"
	"github.com/Astemirdum/book-circle/lending/internal/metadata"
	"github.com/Astemirdum/book-circle/lending/internal/notify"
	"github.com/Astemirdum/book-circle/lending/internal/repository"
	"github.com/Astemirdum/book-circle/lending/internal/server"
	"github.com/Astemirdum/book-circle/lending/internal/service"
	"github.com/Astemirdum/book-circle/lending/migrations"
	"github.com/Astemirdum/book-circle/pkg/circuit_breaker"
	"github.com/Astemirdum/book-circle/pkg/db"
	"github.com/Astemirdum/book-circle/pkg/kafka"
	"github.com/Astemirdum/book-circle/pkg/logger"
)

type closer func()

// newService opens storage and the outbound integrations and assembles the lending service.
func newService(ctx context.Context, cfg config.Config, log *zap.Logger) (*service.Service, closer, error) {
	conn, err := db.NewDB(ctx, &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return nil, nil, errors.Wrap(err, "db init")
	}
	repo, err := repository.NewRepository(conn, cfg.Database.Driver, log)
	if err != nil {
		_ = conn.Close()
		return nil, nil, errors.Wrap(err, "repo")
	}

	var notifier service.Notifier = notify.NewLog(log)
	closeNotifier := func() {}
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			_ = conn.Close()
			return nil, nil, errors.Wrap(err, "kafka.NewProducer")
		}
		k := notify.NewKafka(producer, kafka.NotificationTopic, log)
		notifier = k
		closeNotifier = func() {
			if err := k.Close(); err != nil {
				log.Error("kafka close", zap.Error(err))
			}
		}
	}

	lookup := metadata.New(cfg.Metadata, circuit_breaker.New(cfg.CircuitBreaker), log)
	svc := service.NewService(repo,
		service.Config{LoanPeriod: cfg.Lending.LoanPeriod, StaleAfter: cfg.Lending.StaleAfter},
		log,
		service.WithNotifier(notifier),
		service.WithMetadata(lookup),
	)
	return svc, func() {
		closeNotifier()
		_ = conn.Close()
	}, nil
}

func Run(cfg config.Config) error {
	log, err := logger.NewLogger(cfg.Log, "lending")
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, closeAll, err := newService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeAll()

	go sweep(ctx, svc, cfg.Lending.SweepInterval, log)

	h := handler.New(svc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))
	cancel()

	closeCtx, closeCancel := context.WithTimeout(context.Background(), time.Second*5)
	defer closeCancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
	return nil
}

// sweep periodically reminds parties of handoffs nobody finished.
func sweep(ctx context.Context, svc *service.Service, every time.Duration, log *zap.Logger) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if _, err := svc.SweepStaleHandoffs(ctx); err != nil {
				log.Error("sweep stale handoffs", zap.Error(err))
			}
		}
	}
}

// Migrate applies the embedded migrations and exits.
func Migrate(ctx context.Context, cfg config.Config) error {
	conn, err := db.NewDB(ctx, &cfg.Database, nil)
	if err != nil {
		return errors.Wrap(err, "db init")
	}
	defer func(conn *sqlx.DB) { _ = conn.Close() }(conn)
	return db.Migrate(conn, cfg.Database.Driver, migrations.MigrationFiles)
}

// ReportStale prints the handoffs older than the configured threshold, notifying their parties when remind is set.
func ReportStale(ctx context.Context, cfg config.Config, remind bool, w io.Writer) error {
	log, err := logger.NewLogger(cfg.Log, "lending")
	if err != nil {
		return err
	}
	svc, closeAll, err := newService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeAll()

	list := svc.StaleHandoffs
	if remind {
		list = svc.SweepStaleHandoffs
	}
	stale, err := list(ctx)
	if err != nil {
		return err
	}
	for _, h := range stale {
		fmt.Fprintf(w, "%s\tbook=%s\tgiver=%s\treceiver=%s\tstate=%s\topened=%s\n",
			h.ID, h.BookID, h.GiverID, h.ReceiverID, h.State, h.CreatedAt.Format(time.RFC3339))
	}
	return nil
}
