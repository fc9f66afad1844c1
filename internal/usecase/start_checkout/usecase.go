package start_checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-StudioBooking/internal/integrations/checkout"
)

// UseCase создает сессию оплаты для ожидающего бронирования.
// Ответственность сервиса заканчивается на цене бронирования: сумма берется из сохраненного снимка
type UseCase struct {
	bookingRepo BookingRepository
	client      CheckoutClient
	logger      Logger
}

// NewUseCase создает новый экземпляр use case; client может быть nil, если оплата не настроена
func NewUseCase(bookingRepo BookingRepository, client CheckoutClient, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		client:      client,
		logger:      logger,
	}
}

// Execute выполняет use case
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("StartCheckout: booking id=%d", req.BookingID)

	if uc.client == nil {
		uc.logger.Warn("StartCheckout: checkout is disabled")
		return nil, ErrCheckoutDisabled
	}

	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("StartCheckout: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("StartCheckout: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if booking.Status != domain.StatusPending {
		uc.logger.Warn("StartCheckout: booking id=%d has status %s", booking.ID, booking.Status)
		return nil, ErrNotPending
	}

	if booking.Price <= 0 {
		uc.logger.Info("StartCheckout: booking id=%d is fully discounted", booking.ID)
		return nil, ErrNothingToPay
	}

	session, err := uc.client.CreateSession(ctx, checkout.SessionRequest{
		BookingID:   booking.ID,
		Amount:      booking.Price,
		Email:       booking.Email,
		Description: fmt.Sprintf("%s (%s) %s", booking.ServiceName, booking.PackageName, booking.BookingDate.Format(domain.DateFormat)),
	})
	if err != nil {
		uc.logger.Error("StartCheckout: failed to create session for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}

	uc.logger.Info("StartCheckout: session=%s created for booking id=%d, amount=%d", session.ID, booking.ID, booking.Price)

	return &Response{
		BookingID: booking.ID,
		SessionID: session.ID,
		URL:       session.URL,
		Amount:    booking.Price,
	}, nil
}
