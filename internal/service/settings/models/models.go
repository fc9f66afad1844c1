package models

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// GlobalPromo условия глобального промокода
type GlobalPromo struct {
	Code  string `json:"code"`
	Type  string `json:"discount_type"`
	Value int64  `json:"discount_value"`
}

// UpdateSettingsRequest запрос на обновление настроек студии
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	OpenHour                *int         `json:"openHour,omitempty"`
	CloseHour               *int         `json:"closeHour,omitempty"`
	MinBookingNoticeMinutes *int         `json:"minBookingNoticeMinutes,omitempty"`
	AdvanceBookingDays      *int         `json:"advanceBookingDays,omitempty"`
	ReleaseCancelledSlots   *bool        `json:"releaseCancelledSlots,omitempty"`
	GlobalPromo             *GlobalPromo `json:"globalPromo,omitempty"`
	GlobalPromoActive       *bool        `json:"globalPromoActive,omitempty"`
}

// SettingsResponse ответ с настройками студии
type SettingsResponse struct {
	Timezone                string       `json:"timezone"`
	OpenHour                int          `json:"openHour"`
	CloseHour               int          `json:"closeHour"`
	MinBookingNoticeMinutes int          `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int          `json:"advanceBookingDays"`
	ReleaseCancelledSlots   bool         `json:"releaseCancelledSlots"`
	GlobalPromo             *GlobalPromo `json:"globalPromo,omitempty"`
	GlobalPromoActive       bool         `json:"globalPromoActive"`
	UpdatedAt               *time.Time   `json:"updatedAt,omitempty"`
}

// ApplyTo применяет переданные поля к настройкам
func (r *UpdateSettingsRequest) ApplyTo(s *domain.StudioSettings) {
	if r.OpenHour != nil {
		s.OpenHour = *r.OpenHour
	}
	if r.CloseHour != nil {
		s.CloseHour = *r.CloseHour
	}
	if r.MinBookingNoticeMinutes != nil {
		s.MinBookingNoticeMinutes = *r.MinBookingNoticeMinutes
	}
	if r.AdvanceBookingDays != nil {
		s.AdvanceBookingDays = *r.AdvanceBookingDays
	}
	if r.ReleaseCancelledSlots != nil {
		s.ReleaseCancelledSlots = *r.ReleaseCancelledSlots
	}
	if r.GlobalPromo != nil {
		s.GlobalPromo = &domain.Discount{
			Code:   domain.NormalizeCode(r.GlobalPromo.Code),
			Type:   domain.DiscountType(r.GlobalPromo.Type),
			Value:  r.GlobalPromo.Value,
			Global: true,
		}
	}
	if r.GlobalPromoActive != nil {
		s.GlobalPromoActive = *r.GlobalPromoActive
	}
}

// FromDomainSettings конвертирует доменную модель в ответ
func FromDomainSettings(s *domain.StudioSettings) *SettingsResponse {
	resp := &SettingsResponse{
		OpenHour:                s.OpenHour,
		CloseHour:               s.CloseHour,
		MinBookingNoticeMinutes: s.MinBookingNoticeMinutes,
		AdvanceBookingDays:      s.AdvanceBookingDays,
		ReleaseCancelledSlots:   s.ReleaseCancelledSlots,
		GlobalPromoActive:       s.GlobalPromoActive,
	}
	if s.Location != nil {
		resp.Timezone = s.Location.String()
	}
	if s.GlobalPromo != nil {
		resp.GlobalPromo = &GlobalPromo{
			Code:  s.GlobalPromo.Code,
			Type:  string(s.GlobalPromo.Type),
			Value: s.GlobalPromo.Value,
		}
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
