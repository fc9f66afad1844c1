package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/catalog"
)

const activeServicesKey = "catalog:active"

// Service read-модель каталога услуг
type Service struct {
	repo   CatalogRepository
	cache  Cache
	ttl    time.Duration
	logger Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(repo CatalogRepository, cache Cache, ttl time.Duration, logger Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// ListActiveServiceTypes возвращает активные услуги с активными пакетами
// Ошибки кэша не мешают ответу: читаем из БД
func (s *Service) ListActiveServiceTypes(ctx context.Context) ([]domain.ServiceType, error) {
	if s.cache != nil {
		var cached []domain.ServiceType
		err := s.cache.Get(ctx, activeServicesKey, &cached)
		if err == nil {
			return cached, nil
		}
		s.logger.Info("ListActiveServiceTypes: cache miss: %v", err)
	}

	services, err := s.repo.ListActiveServiceTypes(ctx)
	if err != nil {
		s.logger.Error("ListActiveServiceTypes: repository error: %v", err)
		return nil, fmt.Errorf("%w: list service types: %v", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.Save(ctx, activeServicesKey, services, s.ttl); err != nil {
			s.logger.Warn("ListActiveServiceTypes: failed to cache catalog: %v", err)
		}
	}

	return services, nil
}

// ResolvePackage находит активную услугу и её активный пакет.
// Всегда читает из БД: цена и длительность берутся для снимка в бронировании
func (s *Service) ResolvePackage(ctx context.Context, serviceID, packageID int64) (*domain.ServiceType, *domain.Package, error) {
	service, err := s.repo.GetServiceType(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, nil, ErrServiceNotFound
		}
		s.logger.Error("ResolvePackage: failed to get service id=%d: %v", serviceID, err)
		return nil, nil, fmt.Errorf("%w: get service type: %v", ErrInternal, err)
	}

	if !service.Active {
		return nil, nil, ErrServiceNotFound
	}

	pkg, ok := service.FindPackage(packageID)
	if !ok || !pkg.Active {
		return nil, nil, ErrPackageNotFound
	}

	return service, pkg, nil
}

// Invalidate сбрасывает кэш каталога
func (s *Service) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, activeServicesKey)
}
