package create_service_booking

import (
	"errors"
	"strings"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или не активна
	ErrServiceNotFound = errors.New("create_service_booking: service not found")

	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = errors.New("create_service_booking: customer not found")

	// ErrLedgerNotFound возвращается, когда capacity ledger для услуги
	// не настроен
	ErrLedgerNotFound = errors.New("create_service_booking: capacity ledger not found")

	// ErrCapacityUnavailable возвращается, когда свободных слотов или
	// ресурсов недостаточно
	ErrCapacityUnavailable = errors.New("create_service_booking: capacity unavailable")

	// ErrInsufficientFunds возвращается, когда на балансе клиента
	// не хватает средств на услугу
	ErrInsufficientFunds = errors.New("create_service_booking: insufficient funds")

	// ErrUnknownResource возвращается, когда переопределение ссылается на
	// ресурс, не объявленный услугой
	ErrUnknownResource = errors.New("create_service_booking: unknown resource id")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_service_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_service_booking: internal error")
)

// CapacityUnavailableError уточняет ErrCapacityUnavailable списком
// недостающих ресурсов, чтобы клиент видел, чего именно не хватает
type CapacityUnavailableError struct {
	MissingResources []string
}

func (e *CapacityUnavailableError) Error() string {
	if len(e.MissingResources) == 0 {
		return ErrCapacityUnavailable.Error()
	}
	return ErrCapacityUnavailable.Error() + ": missing " + strings.Join(e.MissingResources, ", ")
}

func (e *CapacityUnavailableError) Unwrap() error {
	return ErrCapacityUnavailable
}
