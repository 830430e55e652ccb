package stock

import "errors"

var (
	// ErrLedgerNotFound возвращается, когда stock ledger для пары
	// (отель, услуга) не настроен
	ErrLedgerNotFound = errors.New("stock ledger not found")

	// ErrInsufficientStock возвращается, когда доступного остатка
	// недостаточно для резервации
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrItemNotFound возвращается, когда позиция склада не найдена
	ErrItemNotFound = errors.New("stock item not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("stock service: internal error")
)
