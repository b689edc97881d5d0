package cancel_reservation

import "github.com/DanieLevy/RamelBarbershop-sub005/internal/service/reservations/models"

// CancelReservationRequest тело запроса на отмену брони
type CancelReservationRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelReservationRequest) ToServiceRequest(userID int64) *models.CancelReservationRequest {
	return &models.CancelReservationRequest{
		UserID:             userID,
		CancellationReason: r.CancellationReason,
	}
}
