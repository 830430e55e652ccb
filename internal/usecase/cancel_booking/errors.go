package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrInvalidTransition возвращается, когда отмена невозможна
	// из текущего статуса бронирования
	ErrInvalidTransition = errors.New("cancel_booking: invalid status transition")

	// ErrInsufficientFunds возвращается, когда на балансе клиента
	// не хватает средств на штраф
	ErrInsufficientFunds = errors.New("cancel_booking: insufficient funds for penalty")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
