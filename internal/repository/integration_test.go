//go:build integration

package repository

import (
    "context"
    "path/filepath"
    "testing"
    "time"

    "github.com/jmoiron/sqlx"
    _ "github.com/lib/pq"
    "github.com/stretchr/testify/suite"
    "github.com/testcontainers/testcontainers-go"
    "github.com/testcontainers/testcontainers-go/modules/postgres"
    "github.com/testcontainers/testcontainers-go/wait"

    appErrors "github.com/unclebandit/editorial-content-service/internal/errors"
    "github.com/unclebandit/editorial-content-service/internal/logger"
    "github.com/unclebandit/editorial-content-service/internal/model"
)

type PostgresIntegrationSuite struct {
    suite.Suite
    ctx       context.Context
    container *postgres.PostgresContainer
    db        *sqlx.DB
    repo      *PostgresContentRepository
}

func (s *PostgresIntegrationSuite) SetupSuite() {
    s.ctx = context.Background()

    migrationsPath, err := filepath.Abs("../db/migrations")
    s.Require().NoError(err)

    container, err := postgres.Run(s.ctx,
        "postgres:16-alpine",
        postgres.WithDatabase("test_db"),
        postgres.WithUsername("test"),
        postgres.WithPassword("test"),
        postgres.WithInitScripts(
            filepath.Join(migrationsPath, "001_create_generated_contents.up.sql"),
            filepath.Join(migrationsPath, "002_index_unused_contents.up.sql"),
        ),
        testcontainers.WithWaitStrategy(
            wait.ForLog("database system is ready to accept connections").
                WithOccurrence(2).
                WithStartupTimeout(30*time.Second),
        ),
    )
    s.Require().NoError(err)
    s.container = container

    connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
    s.Require().NoError(err)

    db, err := sqlx.Connect("postgres", connStr)
    s.Require().NoError(err)
    s.db = db
    s.repo = NewPostgresContentRepository(db, logger.Nop())
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
    if s.db != nil {
        s.db.Close()
    }
    if s.container != nil {
        _ = s.container.Terminate(s.ctx)
    }
}

func (s *PostgresIntegrationSuite) SetupTest() {
    _, _ = s.db.ExecContext(s.ctx, "DELETE FROM generated_contents")
}

func (s *PostgresIntegrationSuite) save(ch model.Channel, tier model.ProspectTier, d model.Date) *model.Content {
    c := &model.Content{GeneralTheme: "g", WeeklyTheme: "w", Body: "b"}
    s.Require().NoError(s.repo.Save(s.ctx, c, &model.GenerationRequest{Channel: ch, ProspectTier: tier, Date: d}))
    return c
}

func (s *PostgresIntegrationSuite) TestSaveThenListAll() {
    saved := s.save(model.ChannelInstagram, model.TierQualified, model.NewDate(2025, 6, 2))
    s.NotZero(saved.ID)

    got, err := s.repo.ListAll(s.ctx, model.ContentFilter{})
    s.Require().NoError(err)
    s.Require().Len(got, 1)
    s.Equal(saved.ID, got[0].ID)
    s.Equal(model.ChannelInstagram, got[0].Channel)
    s.Equal(model.TierQualified, got[0].ProspectTier)
    s.Equal("2025-06-02", got[0].GenerationDate.String())
    s.Equal(0, got[0].Used)
}

func (s *PostgresIntegrationSuite) TestFiltersAreConjunctive() {
    s.save(model.ChannelMail, model.TierQualified, model.NewDate(2025, 6, 1))
    s.save(model.ChannelMail, model.TierLowQualified, model.NewDate(2025, 6, 3))
    s.save(model.ChannelTikTok, model.TierQualified, model.NewDate(2025, 6, 3))
    newest := s.save(model.ChannelMail, model.TierQualified, model.NewDate(2025, 6, 7))

    ch := model.ChannelMail
    tier := model.TierQualified
    start := model.NewDate(2025, 6, 1)
    end := model.NewDate(2025, 6, 7)
    got, err := s.repo.ListAll(s.ctx, model.ContentFilter{Channel: &ch, ProspectTier: &tier, StartDate: &start, EndDate: &end})
    s.Require().NoError(err)
    s.Require().Len(got, 2)
    s.Equal(newest.ID, got[0].ID)
}

func (s *PostgresIntegrationSuite) TestMarkUsed() {
    c := s.save(model.ChannelLinkedIn, model.TierHighlyQualified, model.NewDate(2025, 6, 5))

    s.Require().NoError(s.repo.MarkUsed(s.ctx, c.ID))
    s.Empty(s.repo.ListUnused(s.ctx))

    var nf *appErrors.ErrContentNotFound
    s.ErrorAs(s.repo.MarkUsed(s.ctx, c.ID+1000), &nf)
}

func TestPostgresIntegrationSuite(t *testing.T) {
    suite.Run(t, new(PostgresIntegrationSuite))
}
