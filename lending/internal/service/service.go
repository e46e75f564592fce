package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Astemirdum/book-circle/lending/internal/errs"
	"github.com/Astemirdum/book-circle/lending/internal/handoff"
	"github.com/Astemirdum/book-circle/lending/internal/metrics"
	"github.com/Astemirdum/book-circle/lending/internal/model"
	"github.com/Astemirdum/book-circle/lending/internal/notify"
	"github.com/Astemirdum/book-circle/lending/internal/queue"
	"github.com/Astemirdum/book-circle/lending/internal/registry"
	"github.com/Astemirdum/book-circle/lending/internal/repository"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

// Notifier delivers a message to a member. Failures never fail the operation that caused them.
type Notifier interface {
	Notify(ctx context.Context, memberID string, kind model.NotificationKind, payload map[string]any) error
}

type MetadataLookup interface {
	Lookup(ctx context.Context, isbn string) (model.BookMetadata, error)
}

type MemberDirectory interface {
	GetMember(ctx context.Context, id string) (model.Member, error)
}

type Config struct {
	LoanPeriod time.Duration
	StaleAfter time.Duration
}

type Option func(s *Service)

func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

func WithMetadata(m MetadataLookup) Option {
	return func(s *Service) {
		s.metadata = m
	}
}

func WithMembers(d MemberDirectory) Option {
	return func(s *Service) {
		s.members = d
	}
}

type Service struct {
	log      *zap.Logger
	cfg      Config
	repo     repository.Repository
	books    *registry.Registry
	queue    *queue.Manager
	handoffs *handoff.Protocol

	notifier Notifier
	metadata MetadataLookup
	members  MemberDirectory
}

func NewService(repo repository.Repository, cfg Config, log *zap.Logger, opts ...Option) *Service {
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = 72 * time.Hour
	}
	books := registry.New(repo, log)
	q := queue.New(repo, log)
	s := &Service{
		log:      log.Named("lending"),
		cfg:      cfg,
		repo:     repo,
		books:    books,
		queue:    q,
		handoffs: handoff.New(repo, books, q, cfg.LoanPeriod, log),
		notifier: notify.NewLog(log),
		members:  repo,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) notify(ctx context.Context, kind model.NotificationKind, payload map[string]any, memberIDs ...string) {
	for _, id := range memberIDs {
		if err := s.notifier.Notify(ctx, id, kind, payload); err != nil {
			metrics.NotifyFailuresTotal.WithLabelValues(string(kind)).Inc()
			s.log.Warn("notify", zap.String("member", id), zap.String("kind", string(kind)), zap.Error(err))
		}
	}
}

// observe counts lost compare-and-swaps per operation and passes err through.
func (s *Service) observe(op string, err error) error {
	if errs.Retryable(err) {
		metrics.ConflictsTotal.WithLabelValues(op).Inc()
		s.log.Info("conflict", zap.String("op", op), zap.Error(err))
	}
	return err
}

func handoffPayload(h model.Handoff) map[string]any {
	return map[string]any{
		"handoffId":  h.ID,
		"bookId":     h.BookID,
		"giverId":    h.GiverID,
		"receiverId": h.ReceiverID,
		"state":      string(h.State),
	}
}
