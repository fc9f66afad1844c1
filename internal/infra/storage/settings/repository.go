package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/psqlbuilder"
)

// settingsRowID единственная строка таблицы studio_settings
const settingsRowID = 1

// Repository репозиторий настроек студии
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает настройки студии. Часовой пояс не хранится в БД и не заполняется
func (r *Repository) Get(ctx context.Context) (*domain.StudioSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"open_hour",
		"close_hour",
		"min_booking_notice_minutes",
		"advance_booking_days",
		"release_cancelled_slots",
		"global_promo_code",
		"global_promo_type",
		"global_promo_value",
		"global_promo_active",
		"updated_at",
	).
		From("studio_settings").
		Where(squirrel.Eq{"id": settingsRowID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var (
		s          domain.StudioSettings
		promoCode  sql.NullString
		promoType  sql.NullString
		promoValue sql.NullInt64
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.OpenHour,
		&s.CloseHour,
		&s.MinBookingNoticeMinutes,
		&s.AdvanceBookingDays,
		&s.ReleaseCancelledSlots,
		&promoCode,
		&promoType,
		&promoValue,
		&s.GlobalPromoActive,
		&s.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %w", ErrScanRow, err)
	}

	if promoCode.Valid && promoType.Valid && promoValue.Valid {
		s.GlobalPromo = &domain.Discount{
			Code:   promoCode.String,
			Type:   domain.DiscountType(promoType.String),
			Value:  promoValue.Int64,
			Global: true,
		}
	}

	return &s, nil
}

// Upsert создает или полностью перезаписывает строку настроек
func (r *Repository) Upsert(ctx context.Context, s *domain.StudioSettings) (*domain.StudioSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var promoCode, promoType, promoValue interface{}
	if s.GlobalPromo != nil {
		promoCode = domain.NormalizeCode(s.GlobalPromo.Code)
		promoType = string(s.GlobalPromo.Type)
		promoValue = s.GlobalPromo.Value
	}

	query, args, err := psqlbuilder.Insert("studio_settings").
		Columns(
			"id",
			"open_hour",
			"close_hour",
			"min_booking_notice_minutes",
			"advance_booking_days",
			"release_cancelled_slots",
			"global_promo_code",
			"global_promo_type",
			"global_promo_value",
			"global_promo_active",
		).
		Values(
			settingsRowID,
			s.OpenHour,
			s.CloseHour,
			s.MinBookingNoticeMinutes,
			s.AdvanceBookingDays,
			s.ReleaseCancelledSlots,
			promoCode,
			promoType,
			promoValue,
			s.GlobalPromoActive,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			open_hour = EXCLUDED.open_hour,
			close_hour = EXCLUDED.close_hour,
			min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			release_cancelled_slots = EXCLUDED.release_cancelled_slots,
			global_promo_code = EXCLUDED.global_promo_code,
			global_promo_type = EXCLUDED.global_promo_type,
			global_promo_value = EXCLUDED.global_promo_value,
			global_promo_active = EXCLUDED.global_promo_active,
			updated_at = NOW()
		RETURNING updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	return s, nil
}
