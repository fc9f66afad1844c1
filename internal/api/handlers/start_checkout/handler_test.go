package start_checkout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	startCheckout "github.com/m04kA/SMC-StudioBooking/internal/usecase/start_checkout"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

type fakeUseCase struct {
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *startCheckout.Request) (*startCheckout.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &startCheckout.Response{BookingID: req.BookingID, SessionID: "cs_test", URL: "https://checkout.example/cs_test", Amount: 26500}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		want   string
	}{
		{"ok", nil, http.StatusOK, `{"url":"https://checkout.example/cs_test"}`},
		{"not found", startCheckout.ErrBookingNotFound, http.StatusNotFound, msgNotFound},
		{"nothing to pay", startCheckout.ErrNothingToPay, http.StatusConflict, msgNothingToPay},
		{"not pending", startCheckout.ErrNotPending, http.StatusConflict, msgNotPending},
		{"disabled", startCheckout.ErrCheckoutDisabled, http.StatusServiceUnavailable, msgDisabled},
		{"provider", startCheckout.ErrPaymentProvider, http.StatusBadGateway, msgPaymentFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/7/checkout", nil)
			r = mux.SetURLVars(r, map[string]string{"bookingId": "7"})

			w := httptest.NewRecorder()
			NewHandler(&fakeUseCase{err: tt.err}, logger.Nop()).Handle(w, r)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}
}
