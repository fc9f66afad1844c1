package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	settingsRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/settings"
	"github.com/m04kA/SMC-StudioBooking/internal/service/settings/models"
)

// Service сервис настроек студии.
// Настройки читаются один раз на запрос и явно передаются в движки доступности и цен
type Service struct {
	repo        SettingsRepository
	defaults    domain.StudioSettings
	location    *time.Location
	invalidator CacheInvalidator
	logger      Logger
}

// NewService создает новый экземпляр сервиса настроек
// defaults используются, пока в БД нет строки настроек; location - фиксированный часовой пояс студии
func NewService(
	repo SettingsRepository,
	defaults domain.StudioSettings,
	location *time.Location,
	invalidator CacheInvalidator,
	logger Logger,
) *Service {
	return &Service{
		repo:        repo,
		defaults:    defaults,
		location:    location,
		invalidator: invalidator,
		logger:      logger,
	}
}

// Current возвращает действующие настройки (из БД или значения по умолчанию)
func (s *Service) Current(ctx context.Context) (*domain.StudioSettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Error("Current: failed to get settings: %v", err)
			return nil, fmt.Errorf("%w: get settings: %v", ErrInternal, err)
		}
		defaults := s.defaults
		settings = &defaults
	}

	settings.Location = s.location
	return settings, nil
}

// Get возвращает настройки для административного эндпоинта
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	settings, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSettings(settings), nil
}

// Update частично обновляет настройки студии
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating studio settings")

	settings, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(settings)

	if err := validateSettings(settings); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.repo.Upsert(ctx, settings)
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}
	updated.Location = s.location

	if s.invalidator != nil {
		if err := s.invalidator.Invalidate(ctx); err != nil {
			// кэш истечет по TTL
			s.logger.Warn("Update: failed to invalidate cache: %v", err)
		}
	}

	s.logger.Info("Update: settings saved (hours=%d-%d, notice=%dm, advance=%dd, release_cancelled=%t)",
		updated.OpenHour, updated.CloseHour, updated.MinBookingNoticeMinutes,
		updated.AdvanceBookingDays, updated.ReleaseCancelledSlots)

	return models.FromDomainSettings(updated), nil
}

// validateSettings проверяет согласованность настроек
func validateSettings(s *domain.StudioSettings) error {
	if s.OpenHour < 0 || s.CloseHour > domain.HoursPerDay || s.OpenHour >= s.CloseHour {
		return fmt.Errorf("%w: operating hours must satisfy 0 <= open < close <= 24", ErrInvalidInput)
	}
	if s.MinBookingNoticeMinutes < 0 || s.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: min booking notice must be between 0 and %d minutes",
			ErrInvalidInput, domain.MaxBookingNoticeMinutes)
	}
	if s.AdvanceBookingDays < 0 || s.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advance booking days must be between 0 and %d",
			ErrInvalidInput, domain.MaxAdvanceBookingDays)
	}

	if s.GlobalPromo == nil {
		if s.GlobalPromoActive {
			return fmt.Errorf("%w: global promo cannot be active without a code", ErrInvalidInput)
		}
		return nil
	}

	promo := s.GlobalPromo
	if promo.Code == "" {
		return fmt.Errorf("%w: global promo code is empty", ErrInvalidInput)
	}
	if !promo.Type.IsValid() {
		return fmt.Errorf("%w: unknown discount type %q", ErrInvalidInput, promo.Type)
	}
	if promo.Value <= 0 {
		return fmt.Errorf("%w: discount value must be positive", ErrInvalidInput)
	}
	if promo.Type == domain.DiscountPercentage && promo.Value > domain.MaxPercentageDiscount {
		return fmt.Errorf("%w: percentage discount cannot exceed %d", ErrInvalidInput, domain.MaxPercentageDiscount)
	}

	return nil
}
