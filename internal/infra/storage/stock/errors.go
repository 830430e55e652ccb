package stock

import "errors"

var (
	// ErrLedgerNotFound возвращается, когда stock ledger для пары
	// (отель, услуга) не настроен
	ErrLedgerNotFound = errors.New("stock.repository: ledger not found")

	// ErrInsufficientStock возвращается, когда guard
	// "reserved + qty <= total" не прошел
	ErrInsufficientStock = errors.New("stock.repository: insufficient stock")

	// ErrItemNotFound возвращается, когда позиция склада не найдена
	ErrItemNotFound = errors.New("stock.repository: stock item not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("stock.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("stock.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("stock.repository: failed to scan row")
)
