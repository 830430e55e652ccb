package create_service_booking

import (
	"time"

	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

// Request модель запроса на бронирование услуги
type Request struct {
	CustomerID        int64             // ID клиента
	HotelID           int64             // ID отеля
	ServiceID         int64             // ID услуги
	BookingDate       time.Time         // Дата и время оказания услуги
	ResourceOverrides types.ResourceMap // Переопределения количеств ресурсов (опционально)
}

// Response модель ответа с созданным бронированием услуги
type Response struct {
	ID                int64             // ID бронирования услуги
	HotelID           int64             // ID отеля
	CustomerID        int64             // ID клиента
	ServiceID         int64             // ID услуги
	BookingDate       time.Time         // Дата оказания услуги
	RequiredResources types.ResourceMap // Зарезервированная карта ресурсов
	Cost              float64           // Стоимость услуги
	Status            string            // Статус бронирования

	CreatedAt time.Time // Время создания
}
