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

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type BidRepo struct {
	*postgres.Postgres
}

func NewBidRepo(pgdb *postgres.Postgres) *BidRepo {
	return &BidRepo{pgdb}
}

func (r *BidRepo) CreateBid(ctx context.Context, input *entity.CreateBidInput) (uuid.UUID, error) {
	gigId, err := uuid.Parse(input.GigId)
	if err != nil {
		return uuid.Nil, repo_errors.ErrNotFound
	}

	bidderId, err := uuid.Parse(input.BidderId)
	if err != nil {
		return uuid.Nil, err
	}

	createBidSql, args, _ := r.SqlBuilder.
		Insert("bid").
		Columns("gig_id", "bidder_id", "message", "price", "status").
		Values(gigId, bidderId, input.Message, input.Price, common.BidPending).
		Suffix("RETURNING id").
		ToSql()

	var bidId uuid.UUID
	err = r.Database.QueryRowContext(ctx, createBidSql, args...).Scan(&bidId)
	if err != nil {
		// the (gig_id, bidder_id) unique index is the last line of defense
		// against two concurrent submissions from the same bidder
		if isUniqueViolation(err) {
			return uuid.Nil, repo_errors.ErrAlreadyExists
		}

		return uuid.Nil, err
	}

	return bidId, nil
}

func (r *BidRepo) GetBidById(ctx context.Context, id string) (*entity.Bid, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getBidSql, args, _ := r.SqlBuilder.
		Select("bid.id, bid.gig_id, gig.title, gig.status, bid.bidder_id, users.name, users.email, bid.message, bid.price, bid.status, bid.created_at").
		From("bid").
		InnerJoin("gig on gig.id = bid.gig_id").
		InnerJoin("users on users.id = bid.bidder_id").
		Where("bid.id = ?", uuidForm).
		ToSql()

	var bid entity.Bid
	var createdAt time.Time
	row := r.Database.QueryRowContext(ctx, getBidSql, args...)
	err = row.Scan(&bid.Id, &bid.GigId, &bid.GigTitle, &bid.GigStatus, &bid.BidderId,
		&bid.BidderName, &bid.BidderEmail, &bid.Message, &bid.Price, &bid.Status, &createdAt)
	bid.CreatedAt = createdAt.Format(time.RFC3339)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &bid, nil
}

func (r *BidRepo) GetGigBids(ctx context.Context, gigId string, pg *entity.PaginationInput) ([]entity.Bid, error) {
	uuidForm, err := uuid.Parse(gigId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getBidsSql, args, _ := r.SqlBuilder.
		Select("bid.id, bid.gig_id, gig.title, gig.status, bid.bidder_id, users.name, users.email, bid.message, bid.price, bid.status, bid.created_at").
		From("bid").
		InnerJoin("gig on gig.id = bid.gig_id").
		InnerJoin("users on users.id = bid.bidder_id").
		Where("bid.gig_id = ?", uuidForm).
		OrderBy("bid.created_at DESC").
		Limit(uint64(pg.Limit)).
		Offset(uint64(pg.Offset)).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getBidsSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := make([]entity.Bid, 0)
	for rows.Next() {
		var bid entity.Bid
		var createdAt time.Time
		err = rows.Scan(&bid.Id, &bid.GigId, &bid.GigTitle, &bid.GigStatus, &bid.BidderId,
			&bid.BidderName, &bid.BidderEmail, &bid.Message, &bid.Price, &bid.Status, &createdAt)
		if err != nil {
			return nil, err
		}

		bid.CreatedAt = createdAt.Format(time.RFC3339)
		bids = append(bids, bid)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return bids, nil
}

// HireBid closes the gig and resolves its bids in a single transaction. The
// gig update is conditional on status still being open and the rest of the
// transition only runs when that update claims exactly one row, so two
// concurrent hire attempts on the same gig cannot both commit.
func (r *BidRepo) HireBid(ctx context.Context, gigId uuid.UUID, bidId uuid.UUID) ([]uuid.UUID, error) {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	assignGigSql, args, _ := r.SqlBuilder.
		Update("gig").
		Set("status", common.GigAssigned).
		Set("updated_at", squirrel.Expr("now()")).
		Where("id = ?", gigId).
		Where("status = ?", common.GigOpen).
		ToSql()

	result, err := tx.ExecContext(ctx, assignGigSql, args...)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return nil, e
		}

		return nil, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return nil, e
		}

		return nil, err
	}
	if affected == 0 {
		if e := tx.Rollback(); e != nil {
			return nil, e
		}

		return nil, repo_errors.ErrGigClosed
	}

	hireBidSql, args, _ := r.SqlBuilder.
		Update("bid").
		Set("status", common.BidHired).
		Set("updated_at", squirrel.Expr("now()")).
		Where("id = ?", bidId).
		ToSql()

	if _, err = tx.ExecContext(ctx, hireBidSql, args...); err != nil {
		if e := tx.Rollback(); e != nil {
			return nil, e
		}

		return nil, err
	}

	// only pending bids flip to rejected, so replaying this statement after
	// a partial failure is a no-op for rows already resolved
	rejectOthersSql, args, _ := r.SqlBuilder.
		Update("bid").
		Set("status", common.BidRejected).
		Set("updated_at", squirrel.Expr("now()")).
		Where("gig_id = ?", gigId).
		Where("id <> ?", bidId).
		Where("status = ?", common.BidPending).
		Suffix("RETURNING bidder_id").
		ToSql()

	rows, err := tx.QueryContext(ctx, rejectOthersSql, args...)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return nil, e
		}

		return nil, err
	}

	rejectedBidders := make([]uuid.UUID, 0)
	for rows.Next() {
		var bidderId uuid.UUID
		if err = rows.Scan(&bidderId); err != nil {
			rows.Close()
			if e := tx.Rollback(); e != nil {
				return nil, e
			}

			return nil, err
		}

		rejectedBidders = append(rejectedBidders, bidderId)
	}
	rows.Close()

	if err = rows.Err(); err != nil {
		if e := tx.Rollback(); e != nil {
			return nil, e
		}

		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return rejectedBidders, nil
}

// CountGigBids returns the total number of bids on the gig, regardless of
// pagination.
func (r *BidRepo) CountGigBids(ctx context.Context, gigId string) (int, error) {
	uuidForm, err := uuid.Parse(gigId)
	if err != nil {
		return 0, repo_errors.ErrNotFound
	}

	countBidsSql, args, _ := r.SqlBuilder.
		Select("count(*)").
		From("bid").
		Where("bid.gig_id = ?", uuidForm).
		ToSql()

	var count int
	if err := r.Database.QueryRowContext(ctx, countBidsSql, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
