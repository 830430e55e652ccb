package capacity

import (
	"errors"
	"strings"
)

var (
	// ErrLedgerNotFound возвращается, когда ledger для пары
	// (отель, услуга) не настроен
	ErrLedgerNotFound = errors.New("capacity ledger not found")

	// ErrCapacityUnavailable возвращается, когда свободных слотов или
	// ресурсов недостаточно для резервации
	ErrCapacityUnavailable = errors.New("capacity unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("capacity service: internal error")
)

// CapacityUnavailableError уточняет ErrCapacityUnavailable списком
// недостающих ресурсов. Пустой список означает нехватку свободных слотов.
type CapacityUnavailableError struct {
	MissingResources []string
}

func (e *CapacityUnavailableError) Error() string {
	if len(e.MissingResources) == 0 {
		return "capacity unavailable: no free booking slots"
	}
	return "capacity unavailable: missing resources: " + strings.Join(e.MissingResources, ", ")
}

func (e *CapacityUnavailableError) Unwrap() error {
	return ErrCapacityUnavailable
}
