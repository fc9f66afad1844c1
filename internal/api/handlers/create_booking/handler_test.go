package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-StudioBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

type fakeUseCase struct {
	req *createBooking.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &createBooking.Response{Booking: &domain.Booking{
		ID:             42,
		ServiceName:    "Sesja portretowa",
		PackageName:    "Standard",
		SchedulingMode: domain.ModeHourly,
		DurationHours:  2,
		BookingDate:    req.Date,
		StartTime:      req.StartTime,
		EndTime:        types.MustTimeString("16:00"),
		ClientName:     req.ClientName,
		Email:          req.Email,
		Price:          26500,
		OriginalPrice:  35000,
		Status:         domain.StatusPending,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}}, nil
}

const validBody = `{
	"serviceId": 1,
	"packageId": 11,
	"service": "Sesja portretowa",
	"hours": 2,
	"price": 26500,
	"originalPrice": 35000,
	"date": "2025-06-20",
	"start_time": "14:00",
	"end_time": "16:00",
	"name": "Anna Kowalska",
	"email": "anna@example.com",
	"promo_code": "",
	"gift_card_code": "GIFT-50"
}`

func post(h *Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body)))
	return w
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{}
	w := post(NewHandler(uc, logger.Nop()), validBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Equal(t, 14, uc.req.StartTime.Hour())
	assert.Nil(t, uc.req.PromoCode)
	require.NotNil(t, uc.req.GiftCardCode)
	assert.Equal(t, int64(26500), *uc.req.QuotedPrice)
	assert.Equal(t, 2, *uc.req.QuotedHours)

	var body struct {
		Booking struct {
			ID     int64  `json:"id"`
			Status string `json:"status"`
			Start  string `json:"start_time"`
			Price  int64  `json:"price"`
		} `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(42), body.Booking.ID)
	assert.Equal(t, "pending", body.Booking.Status)
	assert.Equal(t, "14:00", body.Booking.Start)
	assert.Equal(t, int64(26500), body.Booking.Price)
}

func TestHandle_ValidationErrors(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, logger.Nop())

	w := post(h, `{"serviceId": 1, "packageId": 11, "date": "20.06.2025", "start_time": "14:30", "name": "", "email": "nope"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "date")
	assert.Contains(t, resp.Fields, "start_time")
	assert.Contains(t, resp.Fields, "name")
	assert.Contains(t, resp.Fields, "email")

	w = post(h, `{"serviceId": 1, "unknown": true}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		msg    string
	}{
		{createBooking.ErrSlotNotAvailable, http.StatusConflict, msgSlotNotAvailable},
		{createBooking.ErrGiftCardAlreadyUsed, http.StatusConflict, msgGiftCardUsed},
		{createBooking.ErrPriceChanged, http.StatusConflict, msgPriceChanged},
		{createBooking.ErrPromoCodeInvalid, http.StatusNotFound, msgPromoCodeInvalid},
		{createBooking.ErrPromoCodeExpired, http.StatusNotFound, msgPromoCodeExpired},
		{createBooking.ErrGiftCardNotFound, http.StatusNotFound, msgGiftCardNotFound},
		{createBooking.ErrPackageNotFound, http.StatusNotFound, msgPackageNotFound},
		{createBooking.ErrInvalidTimeSlot, http.StatusBadRequest, msgInvalidTimeSlot},
		{createBooking.ErrTooLateToBook, http.StatusBadRequest, msgTooLateToBook},
		{createBooking.ErrInternal, http.StatusInternalServerError, "внутренняя ошибка сервера"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := post(NewHandler(&fakeUseCase{err: tt.err}, logger.Nop()), validBody)
			assert.Equal(t, tt.status, w.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.msg, resp.Error)
		})
	}
}
