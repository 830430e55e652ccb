package capacity

import "errors"

var (
	// ErrLedgerNotFound возвращается, когда ledger для пары
	// (отель, услуга) не настроен
	ErrLedgerNotFound = errors.New("capacity.repository: ledger not found")

	// ErrNoFreeSlots возвращается, когда guard на счетчике
	// одновременных бронирований не прошел
	ErrNoFreeSlots = errors.New("capacity.repository: no free booking slots")

	// ErrResourceShort возвращается, когда guard на количестве ресурса
	// не прошел (доступно меньше, чем требуется)
	ErrResourceShort = errors.New("capacity.repository: insufficient resource quantity")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("capacity.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("capacity.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("capacity.repository: failed to scan row")
)
