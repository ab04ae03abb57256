package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"paylock/services/ledger/internal/entity"
	"paylock/services/ledger/internal/model"
	"paylock/services/ledger/internal/repo/persistent"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const migrationsDir = "../../../../migrations"

// setupMigratedTestDB builds the schema from the goose migrations with foreign keys enforced.
func setupMigratedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	// SQLite only maps the bare TIMESTAMP declared type to time values.
	fsys := fstest.MapFS{}
	for _, file := range files {
		raw, err := os.ReadFile(file)
		require.NoError(t, err)
		ddl := strings.ReplaceAll(string(raw), "TIMESTAMP WITH TIME ZONE", "TIMESTAMP")
		fsys[filepath.Base(file)] = &fstest.MapFile{Data: []byte(ddl)}
	}

	goose.SetBaseFS(fsys)
	goose.SetLogger(goose.NopLogger())
	t.Cleanup(func() { goose.SetBaseFS(nil) })
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.Up(sqlDB, "."))

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	require.Equal(t, 1, fk)
	return db
}

func TestMigrations_MatchModels(t *testing.T) {
	db := setupMigratedTestDB(t)
	migrator := db.Migrator()

	models := []interface{}{
		&model.PostModel{},
		&model.UnlockRecordModel{},
		&model.InvestorSeatModel{},
		&model.PlatformFeeRecordModel{},
	}
	for _, m := range models {
		stmt := &gorm.Statement{DB: db}
		require.NoError(t, stmt.Parse(m))
		table := stmt.Schema.Table
		require.True(t, migrator.HasTable(m), table)

		var columns []string
		require.NoError(t, db.Raw("SELECT name FROM pragma_table_info(?)", table).Scan(&columns).Error)
		require.NotEmpty(t, columns, table)

		for _, field := range stmt.Schema.Fields {
			if field.DBName == "" {
				continue
			}
			assert.Contains(t, columns, field.DBName, "%s.%s missing from migrations", table, field.DBName)
		}
		for _, column := range columns {
			assert.NotNil(t, stmt.Schema.LookUpField(column), "%s.%s has no model field", table, column)
		}

		for name := range stmt.Schema.ParseIndexes() {
			assert.True(t, migrator.HasIndex(m, name), "%s index %s missing from migrations", table, name)
		}
	}
}

func TestMigrations_EnforceSeatForeignKey(t *testing.T) {
	f := newLedgerFixtureOn(t, setupMigratedTestDB(t), LedgerOptions{})
	post := f.publish(t, scenarioBPost(3))

	err := f.ledger.WithPostLock(context.Background(), post.ID, func(tx persistent.LedgerTx, locked *entity.Post) error {
		_, err := NewSeatAllocator().ClaimSeat(tx, locked, "x", uuid.NewString())
		return err
	})
	assert.ErrorIs(t, err, gorm.ErrForeignKeyViolated)
	assert.Equal(t, int64(0), f.count(t, &model.InvestorSeatModel{}))
}

func TestAttemptUnlock_OnMigratedSchema(t *testing.T) {
	f := newLedgerFixtureOn(t, setupMigratedTestDB(t), LedgerOptions{AutoDowngrade: true})
	post := f.publish(t, scenarioBPost(2))
	ctx := context.Background()

	buyout, err := f.pay(post.ID, "x", entity.AccessContent, true, "5.00")
	require.NoError(t, err)
	assert.Equal(t, entity.TierBuyout, buyout.Tier)
	require.NotNil(t, buyout.Position)
	assert.Equal(t, 1, *buyout.Position)
	assert.Equal(t, buyout.Record.ID, f.seat(t, post.ID, "x").UnlockRecordID)

	second, err := f.pay(post.ID, "z", entity.AccessContent, true, "5.00")
	require.NoError(t, err)
	assert.Equal(t, 2, *second.Position)

	downgraded, err := f.pay(post.ID, "w", entity.AccessContent, true, "5.00")
	require.NoError(t, err)
	assert.True(t, downgraded.Downgraded)
	assert.Equal(t, entity.TierStandard, downgraded.Tier)

	standard, err := f.pay(post.ID, "y", entity.AccessContent, false, "1.00")
	require.NoError(t, err)
	assert.Equal(t, entity.TierStandard, standard.Tier)

	comment, err := f.pay(post.ID, "y", entity.AccessComments, false, "0.10")
	require.NoError(t, err)
	assert.Equal(t, entity.TierComment, comment.Tier)

	replay, err := f.pay(post.ID, "x", entity.AccessContent, true, "5.00")
	require.NoError(t, err)
	assert.True(t, replay.AlreadyPaid)

	assert.Equal(t, int64(5), f.count(t, &model.UnlockRecordModel{}))
	assert.Equal(t, int64(2), f.count(t, &model.InvestorSeatModel{}))
	assert.Equal(t, int64(5), f.count(t, &model.PlatformFeeRecordModel{}))

	stored, err := f.ledger.FindUnlock(ctx, post.ID, "w", entity.AccessContent)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.Downgraded)
	assert.Equal(t, "5.00", stored.AmountOffered)

	investor, err := f.uc.GetInvestorEarnings(ctx, "x")
	require.NoError(t, err)
	require.Len(t, investor.Seats, 1)
	assert.Equal(t, 4, investor.Seats[0].TotalUnlocksOnPost)

	creator, err := f.uc.GetCreatorEarnings(ctx, "creator")
	require.NoError(t, err)
	require.Len(t, creator.Posts, 1)
	assert.Equal(t, 5, creator.Posts[0].Unlocks)
}

var errConnectionReset = errors.New("connection reset by peer")

// interruptedLedger fails every commit right after its seat row is written.
type interruptedLedger struct {
	persistent.LedgerRepository
}

func (r *interruptedLedger) WithPostLock(ctx context.Context, postID string, fn func(tx persistent.LedgerTx, post *entity.Post) error) error {
	return r.LedgerRepository.WithPostLock(ctx, postID, func(tx persistent.LedgerTx, post *entity.Post) error {
		return fn(&interruptedTx{LedgerTx: tx}, post)
	})
}

type interruptedTx struct {
	persistent.LedgerTx
}

func (t *interruptedTx) CreateSeat(seat *entity.InvestorSeat) error {
	if err := t.LedgerTx.CreateSeat(seat); err != nil {
		return err
	}
	return errConnectionReset
}

func TestAttemptUnlock_RollsBackWhenCommitFailsAfterSeat(t *testing.T) {
	f := newLedgerFixtureOn(t, setupMigratedTestDB(t), LedgerOptions{})
	post := f.publish(t, scenarioBPost(10))
	ctx := context.Background()

	_, err := f.pay(post.ID, "x", entity.AccessContent, true, "5.00")
	require.NoError(t, err)

	healthy := f.ledger
	f.ledger = &interruptedLedger{LedgerRepository: healthy}
	f.rebuild()

	req := UnlockRequest{
		PostID:        post.ID,
		UserID:        "z",
		AccessKind:    entity.AccessContent,
		WantsBuyout:   true,
		AmountOffered: "5.00",
		Currency:      "USDC",
		Proof:         f.proof(),
	}
	_, err = f.uc.AttemptUnlock(ctx, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, errConnectionReset)

	assert.Equal(t, int64(1), f.count(t, &model.InvestorSeatModel{}))
	assert.Equal(t, int64(1), f.count(t, &model.UnlockRecordModel{}))
	assert.Equal(t, int64(1), f.count(t, &model.PlatformFeeRecordModel{}))
	assert.Equal(t, entity.MustParseMoney("0.2475"), f.seat(t, post.ID, "x").EarningsAccruedUSD)

	seat, err := healthy.GetSeat(ctx, post.ID, "z")
	require.NoError(t, err)
	assert.Nil(t, seat)

	investor, err := f.uc.GetInvestorEarnings(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, entity.MustParseMoney("0.2475"), investor.TotalEarningsUSD)

	creator, err := f.uc.GetCreatorEarnings(ctx, "creator")
	require.NoError(t, err)
	require.Len(t, creator.Posts, 1)
	assert.Equal(t, 1, creator.Posts[0].Unlocks)

	// The rolled back proof is still unspent.
	f.ledger = healthy
	f.rebuild()
	result, err := f.uc.AttemptUnlock(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 2, *result.Position)
	assert.Equal(t, entity.MustParseMoney("0.2475")+entity.MustParseMoney("0.2475"), f.seat(t, post.ID, "x").EarningsAccruedUSD)
}
