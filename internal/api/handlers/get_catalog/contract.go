package get_catalog

import (
	"context"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

type CatalogService interface {
	ListActiveServiceTypes(ctx context.Context) ([]domain.ServiceType, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
