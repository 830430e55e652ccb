package servicebooking

import "errors"

var (
	// ErrServiceBookingNotFound возвращается, когда бронирование услуги не найдено
	ErrServiceBookingNotFound = errors.New("servicebooking.repository: service booking not found")

	// ErrStatusNotChanged возвращается, когда условная отмена не затронула
	// ни одной строки (бронирование уже не в статусе confirmed)
	ErrStatusNotChanged = errors.New("servicebooking.repository: status not changed")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("servicebooking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("servicebooking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("servicebooking.repository: failed to scan row")
)
