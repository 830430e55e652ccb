package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/HMS-ReservationService/pkg/psqlbuilder"
)

// Repository read-only репозиторий каталога услуг отеля
type Repository struct {
	db DBExecutor
}

// NewRepository создает репозиторий каталога услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetService получает активную услугу отеля.
// Неактивная услуга для бронирования не существует.
func (r *Repository) GetService(ctx context.Context, hotelID, serviceID int64) (*domain.HotelService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "hotel_id", "name", "cost", "required_resources", "is_active").
		From("hotel_services").
		Where(squirrel.Eq{"id": serviceID, "hotel_id": hotelID, "is_active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var svc domain.HotelService
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID,
		&svc.HotelID,
		&svc.Name,
		&svc.Cost,
		&svc.RequiredResources,
		&svc.IsActive,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	return &svc, nil
}
