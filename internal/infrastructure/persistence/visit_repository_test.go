package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/clubgate/backend/internal/domain/shared"
	"github.com/clubgate/backend/internal/domain/visitor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestGormVisitRepository_CountByHostOnDate(t *testing.T) {
	t.Run("counts visits for a host day", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormVisitRepository(gormDB)

		date := time.Date(2026, 8, 14, 15, 30, 0, 0, time.UTC)

		rows := sqlmock.NewRows([]string{"count"}).AddRow(4)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "visits" WHERE host_member_number = \$1 AND visit_date = \$2`).
			WithArgs("M-1001", visitor.DayOf(date)).
			WillReturnRows(rows)

		count, err := repo.CountByHostOnDate(context.Background(), "M-1001", date)

		assert.NoError(t, err)
		assert.Equal(t, int64(4), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormVisitRepository_CountByGuestInRange(t *testing.T) {
	t.Run("counts guest visits in a half-open range", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormVisitRepository(gormDB)

		guestID := uuid.New()
		from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 1, 0)

		rows := sqlmock.NewRows([]string{"count"}).AddRow(2)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "visits" WHERE guest_id = \$1 AND visit_date >= \$2 AND visit_date < \$3`).
			WithArgs(guestID, from, to).
			WillReturnRows(rows)

		count, err := repo.CountByGuestInRange(context.Background(), guestID, from, to)

		assert.NoError(t, err)
		assert.Equal(t, int64(2), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormVisitRepository_FindOpenVisits(t *testing.T) {
	t.Run("returns visits without a sign-out", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormVisitRepository(gormDB)

		visitID := uuid.New()
		guestID := uuid.New()
		cutoff := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
		signedIn := cutoff.Add(-6 * time.Hour)

		rows := sqlmock.NewRows([]string{"id", "guest_id", "host_member_number", "visit_date", "signed_in_at", "status"}).
			AddRow(visitID, guestID, "M-1001", visitor.DayOf(signedIn), signedIn, "approved")

		mock.ExpectQuery(`SELECT \* FROM "visits" WHERE signed_out_at IS NULL AND signed_in_at < \$1 ORDER BY signed_in_at ASC`).
			WithArgs(cutoff).
			WillReturnRows(rows)

		visits, err := repo.FindOpenVisits(context.Background(), cutoff)

		assert.NoError(t, err)
		assert.Len(t, visits, 1)
		assert.True(t, visits[0].IsOpen())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormVisitRepository_FindByID(t *testing.T) {
	t.Run("returns ErrNotFound for missing visit", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormVisitRepository(gormDB)

		visitID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "visits" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(visitID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		visit, err := repo.FindByID(context.Background(), visitID)

		assert.Nil(t, visit)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
