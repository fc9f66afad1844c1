package discounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	discountRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/discount"
)

// Значения меток для метрик
const (
	kindPromo    = "promo_code"
	kindGiftCard = "gift_card"

	resultValid    = "valid"
	resultGlobal   = "global"
	resultInvalid  = "invalid"
	resultExpired  = "expired"
	resultNotFound = "not_found"
	resultUsed     = "already_used"
)

// Service проверяет промокоды и подарочные карты и возвращает условия скидки.
// Состояние кодов здесь не меняется: погашение происходит только при фиксации бронирования
type Service struct {
	repo         DiscountRepository
	settings     SettingsProvider
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса скидок
func NewService(repo DiscountRepository, settings SettingsProvider, metrics Metrics, logger Logger) *Service {
	return &Service{
		repo:         repo,
		settings:     settings,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// CheckPromoCode проверяет промокод для публичного эндпоинта (настройки студии читаются здесь)
func (s *Service) CheckPromoCode(ctx context.Context, code string) (*domain.Discount, error) {
	settings, err := s.settings.Current(ctx)
	if err != nil {
		s.logger.Error("CheckPromoCode: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: get settings: %v", ErrInternal, err)
	}
	return s.ResolvePromoCode(ctx, code, settings)
}

// ResolvePromoCode разрешает промокод в условия скидки
// Глобальный промокод из настроек студии разрешается без обращения к таблице promo_codes
func (s *Service) ResolvePromoCode(ctx context.Context, code string, settings *domain.StudioSettings) (*domain.Discount, error) {
	canonical := domain.NormalizeCode(code)
	if canonical == "" {
		return nil, fmt.Errorf("%w: promo code is empty", ErrInvalidRequest)
	}

	if global, ok := settings.ActiveGlobalPromo(canonical); ok {
		s.logger.Info("ResolvePromoCode: code=%s resolved as global promo", canonical)
		s.metrics.DiscountResolved(kindPromo, resultGlobal)
		return global, nil
	}

	promo, err := s.repo.GetPromoCode(ctx, canonical)
	if err != nil {
		if errors.Is(err, discountRepo.ErrPromoCodeNotFound) {
			s.logger.Warn("ResolvePromoCode: code=%s not found", canonical)
			s.metrics.DiscountResolved(kindPromo, resultInvalid)
			return nil, ErrPromoCodeInvalid
		}
		s.logger.Error("ResolvePromoCode: failed to get code=%s: %v", canonical, err)
		return nil, fmt.Errorf("%w: get promo code: %v", ErrInternal, err)
	}

	if !promo.Active || promo.IsExhausted() || !promo.DiscountType.IsValid() {
		s.logger.Warn("ResolvePromoCode: code=%s inactive or exhausted (used=%d)", canonical, promo.UsedCount)
		s.metrics.DiscountResolved(kindPromo, resultInvalid)
		return nil, ErrPromoCodeInvalid
	}

	if promo.IsExpired(settings.Today(s.timeProvider.Now())) {
		s.logger.Warn("ResolvePromoCode: code=%s expired", canonical)
		s.metrics.DiscountResolved(kindPromo, resultExpired)
		return nil, ErrPromoCodeExpired
	}

	s.metrics.DiscountResolved(kindPromo, resultValid)
	terms := promo.Terms()
	return &terms, nil
}

// ResolveGiftCard проверяет подарочную карту
func (s *Service) ResolveGiftCard(ctx context.Context, code string) (*domain.GiftCard, error) {
	canonical := domain.NormalizeCode(code)
	if canonical == "" {
		return nil, fmt.Errorf("%w: gift card code is empty", ErrInvalidRequest)
	}

	card, err := s.repo.GetGiftCard(ctx, canonical)
	if err != nil {
		if errors.Is(err, discountRepo.ErrGiftCardNotFound) {
			s.logger.Warn("ResolveGiftCard: code=%s not found", canonical)
			s.metrics.DiscountResolved(kindGiftCard, resultNotFound)
			return nil, ErrGiftCardNotFound
		}
		s.logger.Error("ResolveGiftCard: failed to get code=%s: %v", canonical, err)
		return nil, fmt.Errorf("%w: get gift card: %v", ErrInternal, err)
	}

	if card.IsUsed {
		s.logger.Warn("ResolveGiftCard: code=%s already used by booking=%v", canonical, card.RedeemedBookingID)
		s.metrics.DiscountResolved(kindGiftCard, resultUsed)
		return nil, ErrGiftCardAlreadyUsed
	}

	s.metrics.DiscountResolved(kindGiftCard, resultValid)
	return card, nil
}

// CheckGiftCard возвращает подарочную карту для публичного эндпоинта проверки
// Погашенная карта возвращается с IsUsed = true, решение принимает клиент
func (s *Service) CheckGiftCard(ctx context.Context, code string) (*domain.GiftCard, error) {
	card, err := s.ResolveGiftCard(ctx, code)
	if err == nil || !errors.Is(err, ErrGiftCardAlreadyUsed) {
		return card, err
	}

	card, err = s.repo.GetGiftCard(ctx, domain.NormalizeCode(code))
	if err != nil {
		s.logger.Error("CheckGiftCard: failed to reload code=%s: %v", domain.NormalizeCode(code), err)
		return nil, fmt.Errorf("%w: get gift card: %v", ErrInternal, err)
	}
	return card, nil
}
