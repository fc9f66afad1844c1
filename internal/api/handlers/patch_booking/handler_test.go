package patch_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

type fakeService struct {
	transitioned string
	patched      *models.PatchBookingRequest
	err          error
}

func (f *fakeService) TransitionStatus(_ context.Context, id int64, status string) (*models.BookingResponse, error) {
	f.transitioned = status
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, Status: status}, nil
}

func (f *fakeService) AdminReplaceBookingFields(_ context.Context, id int64, req *models.PatchBookingRequest) (*models.BookingResponse, error) {
	f.patched = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, Status: "pending"}, nil
}

func patch(h *Handler, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPatch, target, strings.NewReader(body)))
	return w
}

func TestHandle_StatusOnlyUsesTransition(t *testing.T) {
	svc := &fakeService{}
	w := patch(NewHandler(svc, logger.Nop()), "/api/v1/bookings?id=5", `{"status": "confirmed"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "confirmed", svc.transitioned)
	assert.Nil(t, svc.patched)
}

func TestHandle_FieldPatchUsesAdminReplace(t *testing.T) {
	svc := &fakeService{}
	w := patch(NewHandler(svc, logger.Nop()), "/api/v1/bookings?id=5", `{"status": "confirmed", "price": 0}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, svc.transitioned)
	if assert.NotNil(t, svc.patched) {
		assert.Equal(t, int64(0), *svc.patched.Price)
	}
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		err    error
		status int
	}{
		{"missing id", "/api/v1/bookings", `{"status": "confirmed"}`, nil, http.StatusBadRequest},
		{"empty patch", "/api/v1/bookings?id=5", `{}`, nil, http.StatusBadRequest},
		{"bad json", "/api/v1/bookings?id=5", `{"status": }`, nil, http.StatusBadRequest},
		{"not found", "/api/v1/bookings?id=5", `{"status": "confirmed"}`, bookings.ErrBookingNotFound, http.StatusNotFound},
		{"bad status", "/api/v1/bookings?id=5", `{"status": "paid"}`, bookings.ErrInvalidStatus, http.StatusBadRequest},
		{"conflict", "/api/v1/bookings?id=5", `{"start_time": "10:00"}`, bookings.ErrConflict, http.StatusConflict},
		{"internal", "/api/v1/bookings?id=5", `{"name": "X"}`, bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := patch(NewHandler(&fakeService{err: tt.err}, logger.Nop()), tt.target, tt.body)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestHandle_ConflictMessages(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		err     error
		message string
	}{
		{"status only", `{"status": "confirmed"}`, bookings.ErrStatusConflict, msgStatusConflict},
		{"fields", `{"date": "2025-06-21"}`, bookings.ErrConflict, msgConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := patch(NewHandler(&fakeService{err: tt.err}, logger.Nop()), "/api/v1/bookings?id=5", tt.body)
			assert.Equal(t, http.StatusConflict, w.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.message, resp["error"])
		})
	}
}
