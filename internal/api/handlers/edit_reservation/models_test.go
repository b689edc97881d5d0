package edit_reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanieLevy/RamelBarbershop-sub005/internal/schedtime"
	"github.com/DanieLevy/RamelBarbershop-sub005/pkg/types"
)

func TestToUseCaseRequest_DateInShopZone(t *testing.T) {
	// Зона западнее UTC: целевая дата разбирается в зоне барбершопа,
	// иначе DayStart мутатора резолвит предыдущий календарный день
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	n, err := schedtime.NewNormalizer("America/New_York")
	require.NoError(t, err)

	body := &EditReservationRequest{
		ExpectedVersion: 2,
		NewDate:         "2026-08-28",
		NewStartTime:    "10:30",
	}

	req, err := body.ToUseCaseRequest(10, 42, loc)
	require.NoError(t, err)

	key, err := n.DateKey(req.NewDate)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-28", key)
	assert.Equal(t, types.TimeString("10:30"), req.NewStartTime)
}

func TestToUseCaseRequest_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		body EditReservationRequest
	}{
		{name: "bad date", body: EditReservationRequest{NewDate: "28.08.2026", NewStartTime: "10:30"}},
		{name: "bad time", body: EditReservationRequest{NewDate: "2026-08-28", NewStartTime: "10:75"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.body.ToUseCaseRequest(10, 42, time.UTC)
			require.Error(t, err)
		})
	}
}
