package check_gift_card

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/service/discounts"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

type fakeService struct {
	card *domain.GiftCard
	err  error
}

func (f *fakeService) CheckGiftCard(context.Context, string) (*domain.GiftCard, error) {
	return f.card, f.err
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		svc    *fakeService
		status int
		want   string
	}{
		{"valid", &fakeService{card: &domain.GiftCard{Amount: 5000}}, http.StatusOK, `{"gift_card":{"amount":5000,"is_used":false}}`},
		{"used", &fakeService{card: &domain.GiftCard{Amount: 5000, IsUsed: true}}, http.StatusOK, `"is_used":true`},
		{"unknown", &fakeService{err: discounts.ErrGiftCardNotFound}, http.StatusNotFound, msgGiftCardNotFound},
		{"internal", &fakeService{err: discounts.ErrInternal}, http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			NewHandler(tt.svc, logger.Nop()).
				Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/gift-cards", strings.NewReader(`{"code": "GIFT-50"}`)))

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}
}
