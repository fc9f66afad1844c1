package update_settings

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/service/settings"
	"github.com/m04kA/SMC-StudioBooking/internal/service/settings/models"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

type fakeService struct {
	req *models.UpdateSettingsRequest
	err error
}

func (f *fakeService) Update(_ context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.SettingsResponse{OpenHour: *req.OpenHour, CloseHour: 20}, nil
}

func put(h *Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPut, "/api/v1/admin/settings", strings.NewReader(body)))
	return w
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	w := put(NewHandler(svc, logger.Nop()), `{"openHour": 9, "releaseCancelledSlots": true}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 9, *svc.req.OpenHour)
	assert.True(t, *svc.req.ReleaseCancelledSlots)
	assert.Nil(t, svc.req.CloseHour)
}

func TestHandle_Errors(t *testing.T) {
	w := put(NewHandler(&fakeService{}, logger.Nop()), `{"openHour": "nine"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	invalid := fmt.Errorf("%w: openHour must be before closeHour", settings.ErrInvalidInput)
	w = put(NewHandler(&fakeService{err: invalid}, logger.Nop()), `{"openHour": 21}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = put(NewHandler(&fakeService{err: settings.ErrInternal}, logger.Nop()), `{"openHour": 9}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
