package domain

import (
	"strings"
	"time"
)

// DiscountType is the kind of reduction a promo code grants
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage" // value is 1..100
	DiscountFixed      DiscountType = "fixed"      // value is in minor units
)

// IsValid reports whether t is a known discount type
func (t DiscountType) IsValid() bool {
	return t == DiscountPercentage || t == DiscountFixed
}

// NormalizeCode returns the canonical (trimmed, upper-case) form of a promo or gift-card code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// PromoCode is a reusable or limited-use discount token
type PromoCode struct {
	Code          string // canonical upper-case form
	DiscountType  DiscountType
	DiscountValue int64
	ExpiresAt     *time.Time // last valid day, nil = never expires
	MaxUses       *int       // nil = unlimited
	UsedCount     int
	Active        bool
	CreatedAt     time.Time
}

// IsExpired returns true if the code's last valid day is before today
func (p *PromoCode) IsExpired(today time.Time) bool {
	if p.ExpiresAt == nil {
		return false
	}
	expiry := time.Date(p.ExpiresAt.Year(), p.ExpiresAt.Month(), p.ExpiresAt.Day(), 0, 0, 0, 0, today.Location())
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	return day.After(expiry)
}

// IsExhausted returns true if a limited code has no uses left
func (p *PromoCode) IsExhausted() bool {
	return p.MaxUses != nil && p.UsedCount >= *p.MaxUses
}

// Terms returns the discount terms of the code
func (p *PromoCode) Terms() Discount {
	return Discount{Code: p.Code, Type: p.DiscountType, Value: p.DiscountValue}
}

// Discount are resolved promo terms applied by the pricing engine
type Discount struct {
	Code   string
	Type   DiscountType
	Value  int64
	Global bool // the studio-wide promo from settings, no usage tracking
}

// GiftCard is a single-use fixed-amount credit
type GiftCard struct {
	Code              string
	Amount            int64 // minor units
	IsUsed            bool
	RedeemedBookingID *int64
	CreatedAt         time.Time
}
