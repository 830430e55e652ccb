package finance

import (
	"context"
	"fmt"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/HMS-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий финансовых записей.
// Транзакции и инвойсы пишутся только изнутри той же БД-транзакции,
// что и породивший их переход статуса.
type Repository struct {
	db DBExecutor
}

// NewRepository создает репозиторий финансовых записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreatePayment создает запись платежной транзакции
func (r *Repository) CreatePayment(ctx context.Context, tx *domain.PaymentTransaction) (*domain.PaymentTransaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payment_transactions").
		Columns("hotel_id", "customer_id", "booking_id", "service_booking_id", "amount", "kind", "status").
		Values(tx.HotelID, tx.CustomerID, tx.BookingID, tx.ServiceBookingID, tx.Amount, tx.Kind, tx.Status).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreatePayment - build insert query: %v", ErrBuildQuery, err)
	}

	created := *tx
	err = executor.QueryRowContext(ctx, query, args...).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreatePayment - scan returning: %v", ErrScanRow, err)
	}

	return &created, nil
}

// CreateInvoice создает инвойс для платежной транзакции
func (r *Repository) CreateInvoice(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("invoices").
		Columns("payment_id", "hotel_id", "customer_id", "amount", "description").
		Values(invoice.PaymentID, invoice.HotelID, invoice.CustomerID, invoice.Amount, invoice.Description).
		Suffix("RETURNING id, issued_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateInvoice - build insert query: %v", ErrBuildQuery, err)
	}

	created := *invoice
	err = executor.QueryRowContext(ctx, query, args...).Scan(&created.ID, &created.IssuedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateInvoice - scan returning: %v", ErrScanRow, err)
	}

	return &created, nil
}
