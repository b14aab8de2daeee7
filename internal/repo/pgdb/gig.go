package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"gigflow/internal/common"
	"gigflow/internal/entity"
	"gigflow/internal/repo/repo_errors"
	"gigflow/pkg/postgres"
	"time"

	"github.com/google/uuid"
)

const gigSearchVector = "to_tsvector('english', gig.title || ' ' || gig.description)"

type GigRepo struct {
	*postgres.Postgres
}

func NewGigRepo(pgdb *postgres.Postgres) *GigRepo {
	return &GigRepo{pgdb}
}

func (r *GigRepo) CreateGig(ctx context.Context, input *entity.CreateGigInput) (uuid.UUID, error) {
	ownerId, err := uuid.Parse(input.OwnerId)
	if err != nil {
		return uuid.Nil, err
	}

	createGigSql, args, _ := r.SqlBuilder.
		Insert("gig").
		Columns("title", "description", "budget", "status", "owner_id").
		Values(input.Title, input.Description, input.Budget, common.GigOpen, ownerId).
		Suffix("RETURNING id").
		ToSql()

	var gigId uuid.UUID
	err = r.Database.QueryRowContext(ctx, createGigSql, args...).Scan(&gigId)
	if err != nil {
		return uuid.Nil, err
	}

	return gigId, nil
}

func (r *GigRepo) GetGigById(ctx context.Context, id string) (*entity.Gig, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getGigSql, args, _ := r.SqlBuilder.
		Select("gig.id, gig.title, gig.description, gig.budget, gig.status, gig.owner_id, users.name, users.email, gig.created_at, gig.updated_at").
		From("gig").
		InnerJoin("users on users.id = gig.owner_id").
		Where("gig.id = ?", uuidForm).
		ToSql()

	var gig entity.Gig
	var createdAt, updatedAt time.Time
	row := r.Database.QueryRowContext(ctx, getGigSql, args...)
	err = row.Scan(&gig.Id, &gig.Title, &gig.Description, &gig.Budget, &gig.Status,
		&gig.OwnerId, &gig.OwnerName, &gig.OwnerEmail, &createdAt, &updatedAt)
	gig.CreatedAt = createdAt.Format(time.RFC3339)
	gig.UpdatedAt = updatedAt.Format(time.RFC3339)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &gig, nil
}

// GetGigs lists gigs with the given status, newest first. When a search term
// is present, rows are matched and ordered by text relevance over title and
// description instead.
func (r *GigRepo) GetGigs(ctx context.Context, filter *entity.GigFilter, pg *entity.PaginationInput) ([]entity.Gig, error) {
	builder := r.SqlBuilder.
		Select("gig.id, gig.title, gig.description, gig.budget, gig.status, gig.owner_id, users.name, users.email, gig.created_at, gig.updated_at").
		From("gig").
		InnerJoin("users on users.id = gig.owner_id").
		Where("gig.status = ?", filter.Status)

	if filter.Search != "" {
		builder = builder.
			Where(gigSearchVector+" @@ plainto_tsquery('english', ?)", filter.Search).
			OrderByClause("ts_rank("+gigSearchVector+", plainto_tsquery('english', ?)) DESC", filter.Search)
	} else {
		builder = builder.OrderBy("gig.created_at DESC")
	}

	getGigsSql, args, _ := builder.
		Limit(uint64(pg.Limit)).
		Offset(uint64(pg.Offset)).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getGigsSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	gigs := make([]entity.Gig, 0)
	for rows.Next() {
		var gig entity.Gig
		var createdAt, updatedAt time.Time
		err = rows.Scan(&gig.Id, &gig.Title, &gig.Description, &gig.Budget, &gig.Status,
			&gig.OwnerId, &gig.OwnerName, &gig.OwnerEmail, &createdAt, &updatedAt)
		if err != nil {
			return nil, err
		}

		gig.CreatedAt = createdAt.Format(time.RFC3339)
		gig.UpdatedAt = updatedAt.Format(time.RFC3339)
		gigs = append(gigs, gig)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return gigs, nil
}

// CountGigs returns the total number of gigs the filter matches, regardless
// of pagination.
func (r *GigRepo) CountGigs(ctx context.Context, filter *entity.GigFilter) (int, error) {
	builder := r.SqlBuilder.
		Select("count(*)").
		From("gig").
		Where("gig.status = ?", filter.Status)

	if filter.Search != "" {
		builder = builder.Where(gigSearchVector+" @@ plainto_tsquery('english', ?)", filter.Search)
	}

	countGigsSql, args, _ := builder.ToSql()

	var count int
	if err := r.Database.QueryRowContext(ctx, countGigsSql, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
