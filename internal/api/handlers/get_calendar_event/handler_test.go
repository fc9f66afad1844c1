package get_calendar_event

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) CalendarEvent(_ context.Context, id int64) (*models.CalendarEventResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.CalendarEventResponse{UID: "booking-1", AllDay: true}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		err    error
		status int
	}{
		{"ok", "1", nil, http.StatusOK},
		{"bad id", "abc", nil, http.StatusBadRequest},
		{"not found", "1", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"pending booking", "1", bookings.ErrNotCalendarEvent, http.StatusConflict},
		{"internal", "1", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, logger.Nop())
			r := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings/"+tt.id+"/calendar-event", nil)
			r = mux.SetURLVars(r, map[string]string{"bookingId": tt.id})

			w := httptest.NewRecorder()
			h.Handle(w, r)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
