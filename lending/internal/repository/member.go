package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/Astemirdum/book-circle/lending/internal/errs"
	"github.com/Astemirdum/book-circle/lending/internal/model"
)

func (r *repository) GetMember(ctx context.Context, id string) (model.Member, error) {
	var m model.Member
	err := r.get(ctx, &m, r.qb.Select("id", "display_name", "created_at").
		From(memberTableName).
		Where(sq.Eq{"id": id}).
		Limit(1))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Member{}, errors.Wrapf(errs.ErrNotFound, "member %s", id)
		}
		return model.Member{}, err
	}
	return m, nil
}

func (r *repository) UpsertMember(ctx context.Context, m model.Member) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = r.now()
	}
	_, err := r.exec(ctx, r.qb.Insert(memberTableName).
		Columns("id", "display_name", "created_at").
		Values(m.ID, m.DisplayName, m.CreatedAt).
		Suffix("on conflict (id) do update set display_name = excluded.display_name"))
	return errors.Wrap(err, "upsert member")
}
