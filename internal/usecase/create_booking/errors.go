package create_booking

import "errors"

var (
	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = errors.New("create_booking: customer not found")

	// ErrRoomNotFound возвращается, когда один из номеров не найден в отеле
	ErrRoomNotFound = errors.New("create_booking: room not found")

	// ErrRoomNotAvailable возвращается, когда номер недоступен на выбранные
	// даты (пересечение с активным бронированием или номер на обслуживании)
	ErrRoomNotAvailable = errors.New("create_booking: room is not available")

	// ErrInvalidDateRange возвращается при некорректном интервале дат
	ErrInvalidDateRange = errors.New("create_booking: invalid date range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
