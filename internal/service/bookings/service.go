package bookings

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
)

// Service административные операции над бронированиями.
// Операции доверенные: доступность слотов и скидки здесь не перепроверяются
type Service struct {
	bookingRepo BookingRepository
	settings    SettingsProvider
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	settings SettingsProvider,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		settings:    settings,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования за период с опциональным фильтром по статусу
// Отмененные бронирования включаются, если статус не задан
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := "List: fetching bookings"
	if req.From != nil {
		logMsg += fmt.Sprintf(", from=%s", req.From.Format(domain.DateFormat))
	}
	if req.To != nil {
		logMsg += fmt.Sprintf(", to=%s", req.To.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	s.logger.Info(logMsg)

	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		s.logger.Warn("List: invalid period %s - %s", req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: 'to' must not be before 'from'", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// TransitionStatus устанавливает статус бронирования.
// Переход в любой статус разрешен, повторная установка текущего статуса ничего не меняет
func (s *Service) TransitionStatus(ctx context.Context, id int64, status string) (*models.BookingResponse, error) {
	s.logger.Info("TransitionStatus: booking id=%d to status=%s", id, status)

	newStatus, err := models.ToDomainBookingStatus(status)
	if err != nil {
		s.logger.Warn("TransitionStatus: invalid status=%s for booking id=%d", status, id)
		return nil, ErrInvalidStatus
	}

	var result *domain.Booking

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "TransitionStatus", id)
		if err != nil {
			return err
		}

		if booking.Status == newStatus {
			s.logger.Info("TransitionStatus: booking id=%d already %s", id, newStatus)
			result = booking
			return nil
		}

		if booking.Status.IsTerminal() {
			// ручная корректировка администратором
			s.logger.Warn("TransitionStatus: overriding terminal status %s of booking id=%d", booking.Status, id)
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, id, newStatus); err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
				// слот освобожденной отмены уже занят другим бронированием
				s.logger.Warn("TransitionStatus: booking id=%d cannot leave %s, slot is taken", id, booking.Status)
				return ErrStatusConflict
			}
			return s.mapWriteError("TransitionStatus", id, err)
		}

		result, err = s.getBooking(txCtx, "TransitionStatus", id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("TransitionStatus: booking id=%d is %s", id, result.Status)
	return models.FromDomainBooking(result), nil
}

// AdminReplaceBookingFields заменяет поля бронирования по решению администратора.
// Доступность и скидки не перепроверяются; отклоняется только то, что нельзя сохранить
func (s *Service) AdminReplaceBookingFields(ctx context.Context, id int64, req *models.PatchBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("AdminReplaceBookingFields: booking id=%d", id)

	patch, err := req.ToDomainPatch()
	if err != nil {
		s.logger.Warn("AdminReplaceBookingFields: invalid patch for booking id=%d: %v", id, err)
		if errors.Is(err, models.ErrInvalidStatus) {
			return nil, ErrInvalidStatus
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if err := validatePatch(patch); err != nil {
		s.logger.Warn("AdminReplaceBookingFields: validation failed for booking id=%d: %v", id, err)
		return nil, err
	}

	var result *domain.Booking

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "AdminReplaceBookingFields", id)
		if err != nil {
			return err
		}

		patch.Apply(booking)

		if err := validateTimes(booking); err != nil {
			s.logger.Warn("AdminReplaceBookingFields: inconsistent times for booking id=%d: %v", id, err)
			return err
		}

		if err := s.bookingRepo.Update(txCtx, booking); err != nil {
			return s.mapWriteError("AdminReplaceBookingFields", id, err)
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("AdminReplaceBookingFields: booking id=%d updated (date=%s, status=%s, price=%d)",
		id, result.BookingDate.Format(domain.DateFormat), result.Status, result.Price)
	return models.FromDomainBooking(result), nil
}

// CalendarEvent возвращает данные события для подтвержденного или завершенного бронирования
func (s *Service) CalendarEvent(ctx context.Context, id int64) (*models.CalendarEventResponse, error) {
	s.logger.Info("CalendarEvent: booking id=%d", id)

	booking, err := s.getBooking(ctx, "CalendarEvent", id)
	if err != nil {
		return nil, err
	}

	if booking.Status != domain.StatusConfirmed && booking.Status != domain.StatusCompleted {
		s.logger.Warn("CalendarEvent: booking id=%d has status %s", id, booking.Status)
		return nil, ErrNotCalendarEvent
	}

	settings, err := s.settings.Current(ctx)
	if err != nil {
		s.logger.Error("CalendarEvent: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: CalendarEvent - get settings: %v", ErrInternal, err)
	}

	return buildCalendarEvent(booking, settings.Location), nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) mapWriteError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		s.logger.Warn("%s: booking id=%d not found during update", op, id)
		return ErrBookingNotFound
	case errors.Is(err, bookingRepo.ErrSlotNotAvailable):
		s.logger.Warn("%s: booking id=%d would overlap another booking", op, id)
		return ErrConflict
	case errors.Is(err, bookingRepo.ErrInvalidData):
		s.logger.Warn("%s: booking id=%d rejected by check constraint: %v", op, id, err)
		return fmt.Errorf("%w: %s - booking data rejected by storage", ErrInvalidInput, op)
	}
	s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

// validatePatch проверяет значения, которые нельзя сохранить
func validatePatch(p domain.BookingPatch) error {
	if p.ClientName != nil && (*p.ClientName == "" || len(*p.ClientName) > domain.MaxNameLength) {
		return fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if p.Email != nil {
		if _, err := mail.ParseAddress(*p.Email); err != nil {
			return fmt.Errorf("%w: invalid email", ErrInvalidInput)
		}
	}
	if p.Notes != nil && len(*p.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	if p.Price != nil && *p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if p.OriginalPrice != nil && *p.OriginalPrice < 0 {
		return fmt.Errorf("%w: originalPrice must not be negative", ErrInvalidInput)
	}
	if p.StartTime != nil && !p.StartTime.IsZero() && !p.StartTime.IsWholeHour() {
		return fmt.Errorf("%w: start_time must be a whole hour", ErrInvalidInput)
	}
	if p.EndTime != nil && !p.EndTime.IsZero() && !p.EndTime.IsWholeHour() {
		return fmt.Errorf("%w: end_time must be a whole hour", ErrInvalidInput)
	}
	return nil
}

// validateTimes проверяет итоговый интервал: весь день без времени, почасовое с start < end
func validateTimes(b *domain.Booking) error {
	if b.SchedulingMode == domain.ModeWholeDay {
		if !b.StartTime.IsZero() || !b.EndTime.IsZero() {
			return fmt.Errorf("%w: whole-day booking must not have start_time or end_time", ErrInvalidInput)
		}
		return nil
	}
	if b.StartTime.IsZero() != b.EndTime.IsZero() {
		return fmt.Errorf("%w: start_time and end_time must be set together", ErrInvalidInput)
	}
	if b.StartTime.IsZero() {
		return fmt.Errorf("%w: hourly booking requires start_time and end_time", ErrInvalidInput)
	}
	if !b.StartTime.IsBefore(b.EndTime) {
		return fmt.Errorf("%w: start_time must be before end_time", ErrInvalidInput)
	}
	return nil
}

func buildCalendarEvent(b *domain.Booking, loc *time.Location) *models.CalendarEventResponse {
	if loc == nil {
		loc = time.UTC
	}

	day := time.Date(b.BookingDate.Year(), b.BookingDate.Month(), b.BookingDate.Day(), 0, 0, 0, 0, loc)

	event := &models.CalendarEventResponse{
		UID:      fmt.Sprintf("booking-%d", b.ID),
		Summary:  fmt.Sprintf("%s (%s): %s", b.ServiceName, b.PackageName, b.ClientName),
		Date:     day.Format(domain.DateFormat),
		Timezone: loc.String(),
		Location: venue(b),
		Attendee: models.Attendee{Name: b.ClientName, Email: b.Email, Phone: b.Phone},
		Status:   string(b.Status),
	}
	if b.Notes != nil {
		event.Description = *b.Notes
	}

	if b.IsWholeDay() {
		event.AllDay = true
		event.Start = day
		event.End = day.AddDate(0, 0, 1)
		return event
	}

	event.Start = day.Add(time.Duration(b.StartTime.Minutes()) * time.Minute)
	event.End = day.Add(time.Duration(b.EndTime.Minutes()) * time.Minute)
	return event
}

func venue(b *domain.Booking) string {
	parts := make([]string, 0, 2)
	for _, p := range []*string{b.VenuePlace, b.VenueCity} {
		if p != nil && strings.TrimSpace(*p) != "" {
			parts = append(parts, strings.TrimSpace(*p))
		}
	}
	return strings.Join(parts, ", ")
}
