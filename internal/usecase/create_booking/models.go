package create_booking

import "time"

// Request модель запроса на создание бронирования номеров
type Request struct {
	CustomerID int64     // ID клиента
	HotelID    int64     // ID отеля
	RoomIDs    []int64   // Номера, включаемые в бронирование
	CheckIn    time.Time // Дата заезда
	CheckOut   time.Time // Дата выезда
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                     int64     // ID созданного бронирования
	HotelID                int64     // ID отеля
	CustomerID             int64     // ID клиента
	RoomIDs                []int64   // Номера бронирования
	CheckIn                time.Time // Дата заезда
	CheckOut               time.Time // Дата выезда
	Status                 string    // Статус бронирования
	TotalAmount            float64   // Полная стоимость проживания
	PaymentStatus          string    // Платежный статус
	CancellationGraceHours int       // Окно льготной отмены в часах

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
