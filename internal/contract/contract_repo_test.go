package contract_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/Vietanh2703/BASMS-BE-sub000/internal/contract"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/dbutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockRepo(t *testing.T) (contract.Repository, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return contract.NewRepository(db), sqlDB, mock
}

func TestRepositoryCreatePeriod_RetiresCurrentAndNumbersNext(t *testing.T) {
	repo, sqlDB, mock := newMockRepo(t)
	contractID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(MAX(period_number), 0) FROM "contract_periods" WHERE contract_id = $1`)).
		WithArgs(contractID).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "contract_periods" SET "is_current_period"=$1 WHERE contract_id = $2 AND is_current_period = $3`)).
		WithArgs(false, contractID, true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "contract_periods"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := sqlDB.Begin()
	require.NoError(t, err)

	p := &contract.ContractPeriod{
		ID:              uuid.New(),
		ContractID:      contractID,
		PeriodType:      contract.PeriodRenewal,
		PeriodStartDate: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
	err = repo.WithTx(tx).CreatePeriod(context.Background(), p)

	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.Equal(t, 2, p.PeriodNumber)
	assert.True(t, p.IsCurrentPeriod)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryFindHolidayByDate_NotFound(t *testing.T) {
	repo, _, mock := newMockRepo(t)
	date := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "public_holidays" WHERE holiday_date = $1 AND year = $2`)).
		WithArgs(date, 2026, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "holiday_date", "year"}))

	h, err := repo.FindHolidayByDate(context.Background(), date, 2026)

	assert.NoError(t, err)
	assert.Nil(t, h)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreateHoliday_Savepoint(t *testing.T) {
	duplicate := &pgconn.PgError{Code: "23505", ConstraintName: "uq_public_holidays_date_year"}

	tests := []struct {
		name      string
		insertErr error
		wantEnd   string
	}{
		{name: "insert releases savepoint", wantEnd: "RELEASE SAVEPOINT public_holiday_insert"},
		{name: "duplicate rolls back to savepoint", insertErr: duplicate, wantEnd: "ROLLBACK TO SAVEPOINT public_holiday_insert"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, sqlDB, mock := newMockRepo(t)

			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta("SAVEPOINT public_holiday_insert")).
				WillReturnResult(sqlmock.NewResult(0, 0))
			insert := mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "public_holidays"`))
			if tt.insertErr != nil {
				insert.WillReturnError(tt.insertErr)
			} else {
				insert.WillReturnResult(sqlmock.NewResult(0, 1))
			}
			mock.ExpectExec(regexp.QuoteMeta(tt.wantEnd)).
				WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectCommit()

			tx, err := sqlDB.Begin()
			require.NoError(t, err)

			err = repo.WithTx(tx).CreateHoliday(context.Background(), &contract.PublicHoliday{
				ID:          uuid.New(),
				HolidayDate: time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC),
				HolidayName: "Ngày Quốc tế Lao động",
				Year:        2026,
			})
			if tt.insertErr != nil {
				assert.True(t, dbutil.IsUniqueViolation(err))
			} else {
				assert.NoError(t, err)
			}

			// the outer transaction survives a duplicate
			require.NoError(t, tx.Commit())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
