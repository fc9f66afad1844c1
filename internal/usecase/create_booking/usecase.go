package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/booking"
	discountRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/discount"
	"github.com/m04kA/SMC-StudioBooking/internal/service/availability"
	catalogService "github.com/m04kA/SMC-StudioBooking/internal/service/catalog"
	discountService "github.com/m04kA/SMC-StudioBooking/internal/service/discounts"
	"github.com/m04kA/SMC-StudioBooking/internal/service/pricing"
	"github.com/m04kA/SMC-StudioBooking/pkg/ptr"
	"github.com/m04kA/SMC-StudioBooking/pkg/txmanager"
)

// Причины конфликтов для метрик
const (
	conflictSerialization = "serialization"
	conflictConstraint    = "constraint"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	discountRepo DiscountRepository
	discounts    DiscountResolver
	catalog      CatalogService
	settings     SettingsProvider
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	discountRepo DiscountRepository,
	discounts DiscountResolver,
	catalog CatalogService,
	settings SettingsProvider,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		discountRepo: discountRepo,
		discounts:    discounts,
		catalog:      catalog,
		settings:     settings,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка слота, запись бронирования и погашение кодов выполняются в одной
// сериализуемой транзакции: либо применяется все, либо ничего
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%d, package=%d, date=%s, start=%s",
		req.ServiceID, req.PackageID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и настройки студии
	now := uc.timeProvider.Now()

	settings, err := uc.settings.Current(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 3. Проверяем дату
	if err := availability.ValidateDate(req.Date, now, settings); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
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
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		case errors.Is(err, catalogService.ErrPackageNotFound):
			uc.logger.Warn("CreateBooking: package id=%d not found in service id=%d", req.PackageID, req.ServiceID)
			return nil, ErrPackageNotFound
		}
		uc.logger.Error("CreateBooking: failed to resolve package: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve package: %v", ErrInternal, err)
	}

	// 5. Проверяем запрос относительно режима услуги и пакета
	if err := validateAgainstPackage(req, service, pkg); err != nil {
		uc.logger.Warn("CreateBooking: package validation failed: %v", err)
		return nil, err
	}

	if req.QuotedHours != nil && *req.QuotedHours != pkg.DurationHours {
		uc.logger.Warn("CreateBooking: quoted hours=%d, package hours=%d", *req.QuotedHours, pkg.DurationHours)
		return nil, fmt.Errorf("%w: package duration is now %dh", ErrPriceChanged, pkg.DurationHours)
	}

	// 6. Проверяем коды скидок (без изменения их состояния)
	promo, err := uc.resolvePromo(ctx, req.PromoCode, settings)
	if err != nil {
		return nil, err
	}

	giftCard, err := uc.resolveGiftCard(ctx, req.GiftCardCode)
	if err != nil {
		return nil, err
	}

	// 7. Вычисляем цену на сервере, цена клиента используется только для сверки
	quote := pricing.ComputeFinalPrice(pkg.Price, promo, giftCard)

	if req.QuotedPrice != nil && *req.QuotedPrice != quote.Price {
		uc.logger.Warn("CreateBooking: quoted price=%d, computed price=%d", *req.QuotedPrice, quote.Price)
		return nil, fmt.Errorf("%w: price is now %d", ErrPriceChanged, quote.Price)
	}
	if req.QuotedOriginalPrice != nil && *req.QuotedOriginalPrice != quote.OriginalPrice {
		uc.logger.Warn("CreateBooking: quoted original price=%d, package price=%d", *req.QuotedOriginalPrice, quote.OriginalPrice)
		return nil, fmt.Errorf("%w: package price is now %d", ErrPriceChanged, quote.OriginalPrice)
	}

	booking := uc.buildBooking(req, service, pkg, promo, giftCard, quote)

	var result *domain.Booking

	// 8. Проверка слота, запись и погашение кодов в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Бронирования на дату (под блокировкой строк)
		bookings, err := uc.bookingRepo.List(txCtx, domain.BookingsFilter{
			StartDate: &req.Date,
			EndDate:   &req.Date,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 8.2. Повторная проверка доступности на момент фиксации
		reason := availability.CheckStart(availability.Params{
			Mode:          service.Mode,
			DurationHours: pkg.DurationHours,
			Date:          req.Date,
			Now:           now,
			Settings:      settings,
			Bookings:      bookings,
		}, req.StartTime.Hour())

		if err := uc.mapSlotReason(reason, req, pkg, settings); err != nil {
			return err
		}

		// 8.3. Создаем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateBooking: constraint rejected overlapping booking on %s", req.Date.Format(domain.DateFormat))
				uc.metrics.BookingConflict(conflictConstraint)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		// 8.4. Учитываем использование промокода (глобальный промокод не имеет счетчика)
		if promo != nil && !promo.Global {
			if err := uc.discountRepo.IncrementPromoUsage(txCtx, promo.Code); err != nil {
				if errors.Is(err, discountRepo.ErrPromoCodeExhausted) {
					uc.logger.Warn("CreateBooking: promo code=%s exhausted during commit", promo.Code)
					return ErrPromoCodeInvalid
				}
				uc.logger.Error("CreateBooking: failed to increment promo usage: %v", err)
				return fmt.Errorf("%w: failed to increment promo usage: %w", ErrInternal, err)
			}
		}

		// 8.5. Погашаем подарочную карту
		if giftCard != nil {
			if err := uc.discountRepo.RedeemGiftCard(txCtx, giftCard.Code, created.ID); err != nil {
				if errors.Is(err, discountRepo.ErrGiftCardAlreadyUsed) {
					uc.logger.Warn("CreateBooking: gift card=%s redeemed concurrently", giftCard.Code)
					return ErrGiftCardAlreadyUsed
				}
				uc.logger.Error("CreateBooking: failed to redeem gift card: %v", err)
				return fmt.Errorf("%w: failed to redeem gift card: %w", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrTransactionAborted) {
			uc.logger.Warn("CreateBooking: transaction aborted after retries: %v", err)
			uc.metrics.BookingConflict(conflictSerialization)
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	uc.metrics.BookingCreated(string(result.SchedulingMode))
	uc.logger.Info("CreateBooking: booking id=%d created (mode=%s, price=%d, original=%d)",
		result.ID, result.SchedulingMode, result.Price, result.OriginalPrice)

	return &Response{Booking: result, Quote: quote}, nil
}

// resolvePromo проверяет промокод, пустой код означает отсутствие скидки
func (uc *UseCase) resolvePromo(ctx context.Context, code *string, settings *domain.StudioSettings) (*domain.Discount, error) {
	if code == nil || strings.TrimSpace(*code) == "" {
		return nil, nil
	}

	promo, err := uc.discounts.ResolvePromoCode(ctx, *code, settings)
	if err != nil {
		switch {
		case errors.Is(err, discountService.ErrPromoCodeExpired):
			return nil, ErrPromoCodeExpired
		case errors.Is(err, discountService.ErrPromoCodeInvalid), errors.Is(err, discountService.ErrInvalidRequest):
			return nil, ErrPromoCodeInvalid
		}
		uc.logger.Error("CreateBooking: failed to resolve promo code: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve promo code: %v", ErrInternal, err)
	}
	return promo, nil
}

// resolveGiftCard проверяет подарочную карту, пустой код означает отсутствие карты
func (uc *UseCase) resolveGiftCard(ctx context.Context, code *string) (*domain.GiftCard, error) {
	if code == nil || strings.TrimSpace(*code) == "" {
		return nil, nil
	}

	card, err := uc.discounts.ResolveGiftCard(ctx, *code)
	if err != nil {
		switch {
		case errors.Is(err, discountService.ErrGiftCardNotFound), errors.Is(err, discountService.ErrInvalidRequest):
			return nil, ErrGiftCardNotFound
		case errors.Is(err, discountService.ErrGiftCardAlreadyUsed):
			return nil, ErrGiftCardAlreadyUsed
		}
		uc.logger.Error("CreateBooking: failed to resolve gift card: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve gift card: %v", ErrInternal, err)
	}
	return card, nil
}

// mapSlotReason переводит причину недоступности слота в ошибку use case
func (uc *UseCase) mapSlotReason(reason domain.SlotReason, req *Request, pkg *domain.Package, settings *domain.StudioSettings) error {
	switch reason {
	case domain.ReasonNone:
		return nil
	case domain.ReasonBookedEvent, domain.ReasonBookedSession:
		uc.logger.Warn("CreateBooking: slot %s on %s is taken (%s)",
			req.StartTime, req.Date.Format(domain.DateFormat), reason)
		uc.metrics.BookingConflict(string(reason))
		return ErrSlotNotAvailable
	}

	// outside_hours: либо интервал не помещается в рабочее окно, либо не выдержан срок уведомления
	start := req.StartTime.Hour()
	if !req.StartTime.IsZero() && !settings.IsWithinHours(start, start+pkg.DurationHours) {
		uc.logger.Warn("CreateBooking: %s+%dh is outside studio hours %02d:00-%02d:00",
			req.StartTime, pkg.DurationHours, settings.OpenHour, settings.CloseHour)
		return fmt.Errorf("%w: studio works from %02d:00 to %02d:00",
			ErrInvalidTimeSlot, settings.OpenHour, settings.CloseHour)
	}

	uc.logger.Warn("CreateBooking: start %s on %s violates %d minutes notice",
		req.StartTime, req.Date.Format(domain.DateFormat), settings.MinBookingNoticeMinutes)
	return fmt.Errorf("%w: bookings require at least %d minutes notice",
		ErrTooLateToBook, settings.MinBookingNoticeMinutes)
}

// buildBooking собирает бронирование со снимком услуги, пакета и цены
func (uc *UseCase) buildBooking(
	req *Request,
	service *domain.ServiceType,
	pkg *domain.Package,
	promo *domain.Discount,
	giftCard *domain.GiftCard,
	quote pricing.Quote,
) *domain.Booking {
	b := &domain.Booking{
		ServiceName:    service.Name,
		PackageName:    pkg.Name,
		SchedulingMode: service.Mode,
		DurationHours:  pkg.DurationHours,
		BookingDate:    req.Date,
		ClientName:     strings.TrimSpace(req.ClientName),
		Email:          strings.TrimSpace(req.Email),
		Phone:          req.Phone,
		Notes:          req.Notes,
		Price:          quote.Price,
		OriginalPrice:  quote.OriginalPrice,
		Status:         domain.StatusPending,
	}

	if service.RequiresVenue {
		b.VenueCity = ptr.Ptr(strings.TrimSpace(*req.VenueCity))
		b.VenuePlace = ptr.Ptr(strings.TrimSpace(*req.VenuePlace))
	}

	if service.Mode == domain.ModeHourly {
		b.StartTime = req.StartTime
		// конец проверен в validateAgainstPackage и не переходит через полночь
		b.EndTime, _ = req.StartTime.AddHours(pkg.DurationHours)
	}

	if promo != nil {
		b.PromoCode = ptr.Ptr(promo.Code)
	}
	if giftCard != nil {
		b.GiftCardCode = ptr.Ptr(giftCard.Code)
	}

	return b
}
