package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/book-circle/lending/internal/errs"
	"github.com/Astemirdum/book-circle/lending/internal/metrics"
	"github.com/Astemirdum/book-circle/lending/internal/model"
)

// HandoffStatus is the polling view of a handoff. Only its two parties may read it.
func (s *Service) HandoffStatus(ctx context.Context, handoffID, viewerID string) (model.HandoffStatus, error) {
	h, err := s.handoffs.Get(ctx, handoffID)
	if err != nil {
		return model.HandoffStatus{}, err
	}
	if _, ok := h.MemberRole(viewerID); !ok {
		return model.HandoffStatus{}, errors.Wrapf(errs.ErrForbidden, "member %s is not a party of handoff %s", viewerID, handoffID)
	}

	st := model.HandoffStatus{
		Handoff:  h,
		Giver:    model.Party{ID: h.GiverID, Confirmed: h.Confirmed(model.RoleGiver)},
		Receiver: model.Party{ID: h.ReceiverID, Confirmed: h.Confirmed(model.RoleReceiver)},
	}
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		st.Giver.DisplayName = s.displayName(gCtx, h.GiverID)
		return nil
	})
	g.Go(func() error {
		st.Receiver.DisplayName = s.displayName(gCtx, h.ReceiverID)
		return nil
	})
	g.Go(func() error {
		book, err := s.books.Get(gCtx, h.BookID)
		if err != nil {
			return err
		}
		st.Book = book
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.HandoffStatus{}, err
	}
	return st, nil
}

// displayName falls back to the id; the directory is for display only.
func (s *Service) displayName(ctx context.Context, memberID string) string {
	m, err := s.members.GetMember(ctx, memberID)
	if err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			s.log.Warn("member directory", zap.String("member", memberID), zap.Error(err))
		}
		return memberID
	}
	return m.DisplayName
}

func (s *Service) ActiveHandoffs(ctx context.Context, memberID string) ([]model.Handoff, error) {
	return s.handoffs.ListForMember(ctx, memberID, true)
}

func (s *Service) StaleHandoffs(ctx context.Context) ([]model.Handoff, error) {
	return s.handoffs.Stale(ctx, s.cfg.StaleAfter)
}

// SweepStaleHandoffs reminds both parties of every handoff left unfinished for too long.
// Handoffs are never cancelled automatically.
func (s *Service) SweepStaleHandoffs(ctx context.Context) ([]model.Handoff, error) {
	stale, err := s.StaleHandoffs(ctx)
	if err != nil {
		return nil, err
	}
	metrics.StaleHandoffs.Set(float64(len(stale)))
	for _, h := range stale {
		payload := handoffPayload(h)
		payload["openedAt"] = h.CreatedAt
		s.notify(ctx, model.NotifyHandoffStale, payload, h.GiverID, h.ReceiverID)
	}
	if len(stale) > 0 {
		s.log.Info("stale handoffs", zap.Int("count", len(stale)))
	}
	return stale, nil
}

func (s *Service) UpsertMember(ctx context.Context, m model.Member) error {
	if m.ID == "" {
		return errs.ErrMemberID
	}
	return s.repo.UpsertMember(ctx, m)
}
