// Package txmanager управляет транзакциями БД с записью метрик.
// Бизнес-код получает транзакцию неявно: менеджер кладет её в контекст,
// репозитории достают через dbmetrics.GetExecutor.
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/HMS-ReservationService/pkg/dbmetrics"
)

// MaxSerializableRetries бюджет повторов сериализуемой транзакции
// при конфликте сериализации, после чего ошибка отдается вызывающему.
const MaxSerializableRetries = 3

var (
	// ErrTxRetryExhausted возвращается, когда бюджет повторов
	// сериализуемой транзакции исчерпан (transient conflict)
	ErrTxRetryExhausted = errors.New("txmanager: serialization retries exhausted")
)

// TransactionManager менеджер транзакций поверх инструментированной БД
type TransactionManager struct {
	db *dbmetrics.DB
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db *dbmetrics.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	err := m.run(ctx, &sql.TxOptions{}, fn)
	m.observe("default", err)
	return err
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	err := m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
	m.observe("read_only", err)
	return err
}

// DoSerializable выполняет fn в сериализуемой транзакции.
// Конфликты сериализации (SQLSTATE 40001/40P01) повторяются до
// MaxSerializableRetries попыток, затем возвращается ErrTxRetryExhausted.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 1; attempt <= MaxSerializableRetries; attempt++ {
		err = m.run(ctx, opts, fn)
		if err == nil || !IsSerializationFailure(err) {
			m.observe("serializable", err)
			return err
		}
		m.db.Metrics().TxRetries.WithLabelValues("serializable").Inc()

		select {
		case <-ctx.Done():
			m.observe("serializable", ctx.Err())
			return ctx.Err()
		default:
		}
	}

	m.observe("serializable", err)
	return fmt.Errorf("%w: %v", ErrTxRetryExhausted, err)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("txmanager: begin transaction: %w", err)
	}

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("txmanager: commit transaction: %w", err)
	}
	return nil
}

func (m *TransactionManager) observe(isolation string, err error) {
	status := "committed"
	if err != nil {
		status = "rolled_back"
	}
	m.db.Metrics().TxTotal.WithLabelValues(isolation, status).Inc()
}

// IsSerializationFailure сообщает, вызвана ли ошибка конфликтом
// сериализации или дедлоком PostgreSQL
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	// 40001 serialization_failure, 40P01 deadlock_detected
	return pqErr.Code == "40001" || pqErr.Code == "40P01"
}
