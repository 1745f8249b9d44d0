package repository

import (
    "context"
    "fmt"
    "strings"

    "github.com/jmoiron/sqlx"
    "go.uber.org/zap"

    appErrors "github.com/unclebandit/editorial-content-service/internal/errors"
    "github.com/unclebandit/editorial-content-service/internal/model"
)

type ContentRepositoryInterface interface {
    // Save inserts c. When req is not nil its channel, tier and date win
    // over the values already on c.
    Save(ctx context.Context, c *model.Content, req *model.GenerationRequest) error
    // ListUnused never fails; a storage fault yields an empty list.
    ListUnused(ctx context.Context) []model.Content
    ListAll(ctx context.Context, filter model.ContentFilter) ([]model.Content, error)
    MarkUsed(ctx context.Context, id int64) error
}

var (
    _ ContentRepositoryInterface = (*PostgresContentRepository)(nil)
    _ ContentRepositoryInterface = (*MemoryContentRepository)(nil)
)

const contentColumns = `id, channel, prospect_tier, generation_date, general_theme, weekly_theme, body, used, created_at, updated_at`

type PostgresContentRepository struct {
    db  *sqlx.DB
    tm  *TransactionManager
    log *zap.SugaredLogger
}

func NewPostgresContentRepository(db *sqlx.DB, log *zap.SugaredLogger) *PostgresContentRepository {
    return &PostgresContentRepository{db: db, tm: NewTransactionManager(db), log: log}
}

// applyRequest copies the caller's request onto the record.
func applyRequest(c *model.Content, req *model.GenerationRequest) {
    if req == nil {
        return
    }
    c.Channel = req.Channel
    c.ProspectTier = req.ProspectTier
    c.GenerationDate = req.Date
}

func (r *PostgresContentRepository) Save(ctx context.Context, c *model.Content, req *model.GenerationRequest) error {
    applyRequest(c, req)

    query := `
        INSERT INTO generated_contents
            (channel, prospect_tier, generation_date, general_theme, weekly_theme, body, used)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at
    `
    err := r.tm.WithTransaction(ctx, func(ctx context.Context) error {
        return GetExecutor(ctx, r.db).
            QueryRowxContext(ctx, query, c.Channel, c.ProspectTier, c.GenerationDate,
                c.GeneralTheme, c.WeeklyTheme, c.Body, c.Used).
            Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
    })
    if err != nil {
        r.log.Errorw("failed to save content", "channel", c.Channel, "tier", c.ProspectTier, "err", err)
        return fmt.Errorf("save content: %w", err)
    }
    return nil
}

func (r *PostgresContentRepository) ListUnused(ctx context.Context) []model.Content {
    query := `SELECT ` + contentColumns + ` FROM generated_contents WHERE used = 0 ORDER BY created_at DESC, id DESC`

    out := []model.Content{}
    if err := sqlx.SelectContext(ctx, r.db, &out, query); err != nil {
        r.log.Errorw("failed to list unused contents", "err", err)
        return []model.Content{}
    }
    return out
}

func (r *PostgresContentRepository) ListAll(ctx context.Context, filter model.ContentFilter) ([]model.Content, error) {
    var (
        where []string
        args  []any
    )
    add := func(cond string, v any) {
        args = append(args, v)
        where = append(where, fmt.Sprintf(cond, len(args)))
    }
    if filter.Channel != nil {
        add("channel = $%d", *filter.Channel)
    }
    if filter.ProspectTier != nil {
        add("prospect_tier = $%d", *filter.ProspectTier)
    }
    if filter.StartDate != nil {
        add("generation_date >= $%d", *filter.StartDate)
    }
    if filter.EndDate != nil {
        add("generation_date <= $%d", *filter.EndDate)
    }

    query := `SELECT ` + contentColumns + ` FROM generated_contents WHERE 1=1`
    for _, cond := range where {
        query += " AND " + cond
    }
    query += " ORDER BY created_at DESC, id DESC"

    out := []model.Content{}
    if err := sqlx.SelectContext(ctx, r.db, &out, query, args...); err != nil {
        r.log.Errorw("failed to list contents", "filter", describeFilter(filter), "err", err)
        return nil, fmt.Errorf("list contents: %w", err)
    }
    return out, nil
}

func (r *PostgresContentRepository) MarkUsed(ctx context.Context, id int64) error {
    query := `UPDATE generated_contents SET used = 1, updated_at = NOW() WHERE id = $1`

    return r.tm.WithTransaction(ctx, func(ctx context.Context) error {
        res, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, id)
        if err != nil {
            r.log.Errorw("failed to mark content used", "id", id, "err", err)
            return fmt.Errorf("mark content %d used: %w", id, err)
        }
        n, err := res.RowsAffected()
        if err != nil {
            return err
        }
        if n == 0 {
            return appErrors.NewContentNotFound(id)
        }
        return nil
    })
}

// describeFilter renders a filter for log lines.
func describeFilter(f model.ContentFilter) string {
    var parts []string
    if f.Channel != nil {
        parts = append(parts, "channel="+string(*f.Channel))
    }
    if f.ProspectTier != nil {
        parts = append(parts, "tier="+string(*f.ProspectTier))
    }
    if f.StartDate != nil {
        parts = append(parts, "start="+f.StartDate.String())
    }
    if f.EndDate != nil {
        parts = append(parts, "end="+f.EndDate.String())
    }
    if len(parts) == 0 {
        return "none"
    }
    return strings.Join(parts, ",")
}
