package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/service/availability"
	catalogService "github.com/m04kA/SMC-StudioBooking/internal/service/catalog"
)

// UseCase use case для получения слотов на дату
type UseCase struct {
	bookingRepo  BookingRepository
	catalog      CatalogService
	settings     SettingsProvider
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalog CatalogService,
	settings SettingsProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalog:      catalog,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов.
// Только чтение: результат не кэшируется и вычисляется заново на каждый запрос
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, package=%d, date=%s",
		req.ServiceID, req.PackageID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и настройки студии
	now := uc.timeProvider.Now()

	settings, err := uc.settings.Current(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 3. Проверяем дату
	if err := availability.ValidateDate(req.Date, now, settings); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		if errors.Is(err, availability.ErrDateTooFarInFuture) {
			return nil, fmt.Errorf("%w: %v", ErrDateTooFarInFuture, err)
		}
		return nil, ErrInvalidDate
	}

	// 4. Получаем услугу и пакет
	service, pkg, err := uc.catalog.ResolvePackage(ctx, req.ServiceID, req.PackageID)
	if err != nil {
		switch {
		case errors.Is(err, catalogService.ErrServiceNotFound):
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		case errors.Is(err, catalogService.ErrPackageNotFound):
			uc.logger.Warn("GetAvailableSlots: package id=%d not found in service id=%d", req.PackageID, req.ServiceID)
			return nil, ErrPackageNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to resolve package: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve package: %v", ErrInternal, err)
	}

	// 5. Получаем все бронирования на дату (политика отмененных применяется в движке)
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{
		StartDate: &req.Date,
		EndDate:   &req.Date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Вычисляем слоты
	slots := availability.ComputeSlots(availability.Params{
		Mode:          service.Mode,
		DurationHours: pkg.DurationHours,
		Date:          req.Date,
		Now:           now,
		Settings:      settings,
		Bookings:      bookings,
	})

	free := 0
	for _, s := range slots {
		if s.Available {
			free++
		}
	}
	uc.logger.Info("GetAvailableSlots: %d/%d slots available (mode=%s, bookings=%d)",
		free, len(slots), service.Mode, len(bookings))

	return &Response{
		Date:          req.Date,
		ServiceID:     service.ID,
		PackageID:     pkg.ID,
		Mode:          service.Mode,
		DurationHours: pkg.DurationHours,
		Slots:         slots,
	}, nil
}
