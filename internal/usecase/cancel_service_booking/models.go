package cancel_service_booking

// Request модель запроса на отмену бронирования услуги
type Request struct {
	ServiceBookingID int64  // ID бронирования услуги
	CustomerID       int64  // ID клиента, инициировавшего отмену
	Reason           string // Причина отмены
}

// Response модель ответа после отмены
type Response struct {
	ID           int64   // ID бронирования услуги
	Status       string  // Новый статус бронирования
	RefundAmount float64 // Сумма возврата
}
