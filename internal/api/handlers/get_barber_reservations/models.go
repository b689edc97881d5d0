package get_barber_reservations

import (
	"time"

	"github.com/DanieLevy/RamelBarbershop-sub005/internal/domain"
	"github.com/DanieLevy/RamelBarbershop-sub005/internal/service/reservations/models"
)

// ToServiceRequest создает запрос сервиса из параметров запроса
// Дата интерпретируется в таймзоне барбершопа, иначе для зон западнее UTC
// полночь UTC выпадает на предыдущий календарный день
func ToServiceRequest(barberID, userID int64, dateStr string, includeInactive bool, loc *time.Location) (*models.GetBarberReservationsRequest, error) {
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
	if err != nil {
		return nil, err
	}

	return &models.GetBarberReservationsRequest{
		BarberID:        barberID,
		UserID:          userID,
		Date:            date,
		IncludeInactive: includeInactive,
	}, nil
}
