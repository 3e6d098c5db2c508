// AngelaMos | 2026
// repository.go

package opinion

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/school-opinions/internal/core"
)

type Repository interface {
	Create(ctx context.Context, o *Opinion) error
	UpdateLifecycle(
		ctx context.Context,
		id int64,
		status Status,
		comment string,
	) error
	List(ctx context.Context, f Filter) ([]Row, error)
	Totals(ctx context.Context) (Totals, error)
	Report(ctx context.Context, f Filter) ([]Row, Totals, error)
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// totalsQuery splits every opinion into the four category/status buckets.
// Anything that is not a suggestion counts as a complaint and anything that
// is not open counts as closed, matching Tally.
var totalsQuery = fmt.Sprintf(`
	SELECT
		COUNT(*) FILTER (WHERE category_id <> %[1]d)                     AS complaints,
		COUNT(*) FILTER (WHERE category_id <> %[1]d AND status_id = %[2]d)  AS complaints_open,
		COUNT(*) FILTER (WHERE category_id <> %[1]d AND status_id <> %[2]d) AS complaints_closed,
		COUNT(*) FILTER (WHERE category_id = %[1]d)                      AS suggestions,
		COUNT(*) FILTER (WHERE category_id = %[1]d AND status_id = %[2]d)   AS suggestions_open,
		COUNT(*) FILTER (WHERE category_id = %[1]d AND status_id <> %[2]d)  AS suggestions_closed
	FROM opinions`, CategorySuggestion, StatusOpen)

const (
	insertOpinionQuery = `
		INSERT INTO opinions (category_id, description, account_id, status_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	updateStatusQuery = `UPDATE opinions SET status_id = $2 WHERE id = $1`

	upsertCommentQuery = `
		INSERT INTO comments (opinion_id, detail)
		VALUES ($1, $2)
		ON CONFLICT (opinion_id)
		DO UPDATE SET detail = EXCLUDED.detail, updated_at = NOW()`
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, o *Opinion) error {
	err := r.db.GetContext(ctx, &o.ID, insertOpinionQuery,
		int16(o.Category),
		o.Description,
		o.AccountID,
		int16(o.Status),
		o.CreatedAt,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("create opinion: unknown account: %w", core.ErrInvalidInput)
		}
		return fmt.Errorf("create opinion: %w", err)
	}

	return nil
}

// UpdateLifecycle writes the status and upserts the comment in one
// transaction, so either both land or neither does.
func (r *repository) UpdateLifecycle(
	ctx context.Context,
	id int64,
	status Status,
	comment string,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, updateStatusQuery, id, int16(status))
		if err != nil {
			return fmt.Errorf("update opinion status: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("update opinion status: %w", err)
		}

		if rows == 0 {
			return fmt.Errorf("update opinion status: %w", core.ErrNotFound)
		}

		_, err = tx.ExecContext(ctx, upsertCommentQuery, id, comment)
		if err != nil {
			return fmt.Errorf("upsert opinion comment: %w", err)
		}

		return nil
	})
}

func (r *repository) List(ctx context.Context, f Filter) ([]Row, error) {
	return listRows(ctx, r.db, f)
}

func (r *repository) Totals(ctx context.Context) (Totals, error) {
	return readTotals(ctx, r.db)
}

// Report reads rows and totals from the same snapshot so they agree.
func (r *repository) Report(
	ctx context.Context,
	f Filter,
) ([]Row, Totals, error) {
	var (
		rows   []Row
		totals Totals
	)

	err := core.InTxWithOptions(ctx, r.db, core.ReadSnapshot, func(tx *sqlx.Tx) error {
		var err error
		if rows, err = listRows(ctx, tx, f); err != nil {
			return err
		}
		totals, err = readTotals(ctx, tx)
		return err
	})
	if err != nil {
		return nil, Totals{}, err
	}

	return rows, totals, nil
}

func listRows(ctx context.Context, db core.DBTX, f Filter) ([]Row, error) {
	query, args, err := reportQuery(f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build report query: %w", err)
	}

	rows := []Row{}
	if err := db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list opinions: %w", err)
	}

	return rows, nil
}

func readTotals(ctx context.Context, db core.DBTX) (Totals, error) {
	var t Totals
	if err := db.GetContext(ctx, &t, totalsQuery); err != nil {
		return Totals{}, fmt.Errorf("count opinions: %w", err)
	}
	return t, nil
}

// reportQuery joins every opinion to its submitter and to its latest comment
// (greatest comment id), one row per opinion.
func reportQuery(f Filter) sq.SelectBuilder {
	q := psql.
		Select(
			"o.id",
			"o.category_id",
			"o.description",
			"o.status_id",
			"o.account_id",
			"COALESCE(a.name, '') AS name",
			"COALESCE(a.surname, '') AS surname",
			"COALESCE(a.document, '') AS document",
			"o.created_at",
			"COALESCE(cm.detail, '') AS comment",
		).
		From("opinions o").
		LeftJoin("accounts a ON a.id = o.account_id").
		LeftJoin(`comments cm ON cm.id = (
			SELECT MAX(c2.id) FROM comments c2 WHERE c2.opinion_id = o.id
		)`).
		OrderBy("o.category_id", "o.id")

	if f.Category != 0 {
		q = q.Where(sq.Eq{"o.category_id": int16(f.Category)})
	}
	if f.Status != 0 {
		q = q.Where(sq.Eq{"o.status_id": int16(f.Status)})
	}
	if f.AccountID != 0 {
		q = q.Where(sq.Eq{"o.account_id": f.AccountID})
	}

	return q
}

func isForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
