package handlers

import (
	"errors"

	"github.com/m04kA/HMS-ReservationService/pkg/txmanager"
)

// IsTxRetryExhausted возвращает true, если операция не прошла из-за
// исчерпания повторов сериализуемой транзакции. Такие ошибки временные,
// клиенту имеет смысл повторить запрос.
func IsTxRetryExhausted(err error) bool {
	return errors.Is(err, txmanager.ErrTxRetryExhausted)
}
