package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(db), dbMock
}

func TestRepository_GetClosures(t *testing.T) {
	repo, dbMock := newMockRepo(t)

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	reason := "renovation"
	barberID := int64(7)

	// Отсечка по календарному ключу, не по моменту: DATE-колонка против
	// timestamptz кастовалась бы в полночь зоны сессии и могла срезать
	// последний день закрытия
	dbMock.ExpectQuery("SELECT .+ FROM closures").
		WithArgs("2026-08-28", barberID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "barber_id", "start_date", "end_date", "reason", "created_at"}).
			AddRow(int64(1), nil, start, end, reason, start).
			AddRow(int64(2), barberID, start, start, nil, start))

	set, err := repo.GetClosures(context.Background(), barberID, "2026-08-28")
	require.NoError(t, err)

	require.Len(t, set.Shop, 1)
	require.Len(t, set.Barber, 1)

	assert.True(t, set.Shop[0].IsShopWide())
	require.NotNil(t, set.Shop[0].Reason)
	assert.Equal(t, reason, *set.Shop[0].Reason)

	require.NotNil(t, set.Barber[0].BarberID)
	assert.Equal(t, barberID, *set.Barber[0].BarberID)
	assert.Nil(t, set.Barber[0].Reason)

	require.NoError(t, dbMock.ExpectationsWereMet())
}
