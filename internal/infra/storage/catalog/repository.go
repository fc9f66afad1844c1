package catalog

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/psqlbuilder"
)

// Querier часть *sqlx.DB, нужная репозиторию
type Querier interface {
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// Repository read-only репозиторий каталога услуг и пакетов
type Repository struct {
	db Querier
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// NewRepositoryWithQuerier создает репозиторий поверх произвольного Querier
func NewRepositoryWithQuerier(db Querier) *Repository {
	return &Repository{db: db}
}

// ListActiveServiceTypes возвращает активные типы услуг с активными пакетами в порядке отображения
func (r *Repository) ListActiveServiceTypes(ctx context.Context) ([]domain.ServiceType, error) {
	return r.list(ctx, squirrel.Eq{"is_active": true}, true)
}

// GetServiceType возвращает тип услуги со всеми пакетами (включая неактивные)
func (r *Repository) GetServiceType(ctx context.Context, id int64) (*domain.ServiceType, error) {
	services, err := r.list(ctx, squirrel.Eq{"id": id}, false)
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return nil, ErrServiceNotFound
	}
	return &services[0], nil
}

func (r *Repository) list(ctx context.Context, where squirrel.Sqlizer, activePackagesOnly bool) ([]domain.ServiceType, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"icon",
		"description",
		"scheduling_mode",
		"requires_venue",
		"is_active",
		"display_order",
	).
		From("service_types").
		Where(where).
		OrderBy("display_order ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: list - build service types query: %v", ErrBuildQuery, err)
	}

	var serviceRows []serviceTypeRow
	if err := r.db.SelectContext(ctx, &serviceRows, query, args...); err != nil {
		return nil, fmt.Errorf("%w: list - select service types: %w", ErrExecQuery, err)
	}

	if len(serviceRows) == 0 {
		return []domain.ServiceType{}, nil
	}

	ids := make([]int64, len(serviceRows))
	for i, row := range serviceRows {
		ids[i] = row.ID
	}

	packagesBuilder := psqlbuilder.Select(
		"id",
		"service_id",
		"name",
		"duration_hours",
		"price",
		"is_active",
		"display_order",
	).
		From("packages").
		Where(squirrel.Eq{"service_id": ids}).
		OrderBy("display_order ASC", "id ASC")

	if activePackagesOnly {
		packagesBuilder = packagesBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err = packagesBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: list - build packages query: %v", ErrBuildQuery, err)
	}

	var packageRows []packageRow
	if err := r.db.SelectContext(ctx, &packageRows, query, args...); err != nil {
		return nil, fmt.Errorf("%w: list - select packages: %w", ErrExecQuery, err)
	}

	services := make([]domain.ServiceType, len(serviceRows))
	index := make(map[int64]int, len(serviceRows))
	for i, row := range serviceRows {
		services[i] = row.toDomain()
		index[row.ID] = i
	}

	for _, row := range packageRows {
		if i, ok := index[row.ServiceID]; ok {
			services[i].Packages = append(services[i].Packages, row.toDomain())
		}
	}

	return services, nil
}
