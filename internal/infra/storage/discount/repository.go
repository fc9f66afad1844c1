package discount

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

// Repository репозиторий промокодов и подарочных карт
// Коды хранятся в каноническом виде (верхний регистр), нормализация - задача вызывающего
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetPromoCode получает промокод по каноническому коду
func (r *Repository) GetPromoCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"code",
		"discount_type",
		"discount_value",
		"expires_at",
		"max_uses",
		"used_count",
		"is_active",
		"created_at",
	).
		From("promo_codes").
		Where(squirrel.Eq{"code": code}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPromoCode - build select query: %v", ErrBuildQuery, err)
	}

	var (
		promo     domain.PromoCode
		expiresAt sql.NullTime
		maxUses   sql.NullInt32
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&promo.Code,
		&promo.DiscountType,
		&promo.DiscountValue,
		&expiresAt,
		&maxUses,
		&promo.UsedCount,
		&promo.Active,
		&promo.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPromoCodeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPromoCode - scan promo code: %w", ErrScanRow, err)
	}

	if expiresAt.Valid {
		promo.ExpiresAt = &expiresAt.Time
	}
	if maxUses.Valid {
		limit := int(maxUses.Int32)
		promo.MaxUses = &limit
	}

	return &promo, nil
}

// IncrementPromoUsage атомарно увеличивает счетчик использований.
// Условие в WHERE не даёт превысить max_uses даже при конкурентных вызовах
func (r *Repository) IncrementPromoUsage(ctx context.Context, code string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("promo_codes").
		Set("used_count", squirrel.Expr("used_count + 1")).
		Where(squirrel.Eq{"code": code}).
		Where(squirrel.Or{
			squirrel.Eq{"max_uses": nil},
			squirrel.Expr("used_count < max_uses"),
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: IncrementPromoUsage - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: IncrementPromoUsage - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementPromoUsage - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPromoCodeExhausted
	}

	return nil
}

// GetGiftCard получает подарочную карту по каноническому коду
func (r *Repository) GetGiftCard(ctx context.Context, code string) (*domain.GiftCard, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"code",
		"amount",
		"is_used",
		"redeemed_booking_id",
		"created_at",
	).
		From("gift_cards").
		Where(squirrel.Eq{"code": code}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetGiftCard - build select query: %v", ErrBuildQuery, err)
	}

	var (
		card       domain.GiftCard
		redeemedBy sql.NullInt64
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&card.Code,
		&card.Amount,
		&card.IsUsed,
		&redeemedBy,
		&card.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGiftCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetGiftCard - scan gift card: %w", ErrScanRow, err)
	}

	if redeemedBy.Valid {
		card.RedeemedBookingID = &redeemedBy.Int64
	}

	return &card, nil
}

// RedeemGiftCard помечает карту использованной, только если она ещё не использована (compare-and-set).
// Из двух конкурентных погашений успешно только одно
func (r *Repository) RedeemGiftCard(ctx context.Context, code string, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("gift_cards").
		Set("is_used", true).
		Set("redeemed_booking_id", bookingID).
		Where(squirrel.Eq{"code": code, "is_used": false}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RedeemGiftCard - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RedeemGiftCard - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RedeemGiftCard - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrGiftCardAlreadyUsed
	}

	return nil
}
