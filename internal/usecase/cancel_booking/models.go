package cancel_booking

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID  int64 // ID бронирования
	CanceledBy int64 // ID пользователя, инициировавшего отмену
}

// Response модель ответа после отмены
type Response struct {
	ID             int64   // ID бронирования
	Status         string  // Новый статус бронирования
	PenaltyApplied float64 // Начисленный штраф
	PenaltyPaid    bool    // Штраф списан с баланса
}
