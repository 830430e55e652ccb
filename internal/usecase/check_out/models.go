package check_out

import "time"

// Request модель запроса на выселение
type Request struct {
	BookingID int64 // ID бронирования
}

// Response модель ответа после выселения
type Response struct {
	ID            int64     // ID бронирования
	Status        string    // Новый статус бронирования
	PaymentStatus string    // Платежный статус после выселения
	PaymentID     int64     // ID созданной платежной транзакции
	Amount        float64   // Сумма к оплате
	CheckedOutAt  time.Time // Отметка времени выезда
}
