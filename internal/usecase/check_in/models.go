package check_in

import "time"

// Request модель запроса на заселение
type Request struct {
	BookingID int64 // ID бронирования
}

// Response модель ответа после заселения
type Response struct {
	ID        int64     // ID бронирования
	Status    string    // Новый статус бронирования
	RoomIDs   []int64   // Номера бронирования
	UpdatedAt time.Time // Время обновления
}
