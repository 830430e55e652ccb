package cancel_service_booking

import "errors"

var (
	// ErrServiceBookingNotFound возвращается, когда бронирование услуги
	// не найдено
	ErrServiceBookingNotFound = errors.New("cancel_service_booking: service booking not found")

	// ErrAccessDenied возвращается, когда отмену инициирует не владелец
	// бронирования
	ErrAccessDenied = errors.New("cancel_service_booking: access denied")

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = errors.New("cancel_service_booking: booking is already cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_service_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_service_booking: internal error")
)
