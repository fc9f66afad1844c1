package get_catalog

import "github.com/m04kA/SMC-StudioBooking/internal/domain"

// CatalogResponse HTTP response model
type CatalogResponse struct {
	Services []ServiceTypeResponse `json:"services"`
}

type ServiceTypeResponse struct {
	ID            int64             `json:"id"`
	Name          string            `json:"name"`
	Icon          string            `json:"icon"`
	Description   string            `json:"description"`
	Mode          string            `json:"mode"`
	RequiresVenue bool              `json:"requiresVenue"`
	Packages      []PackageResponse `json:"packages"`
}

type PackageResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Hours  int    `json:"hours"`
	Price  int64  `json:"price"` // в минимальных единицах валюты
	Active bool   `json:"active"`
}

// FromDomain конвертирует каталог в HTTP response
func FromDomain(services []domain.ServiceType) *CatalogResponse {
	resp := &CatalogResponse{Services: make([]ServiceTypeResponse, 0, len(services))}
	for i := range services {
		svc := &services[i]
		active := svc.ActivePackages()

		packages := make([]PackageResponse, len(active))
		for j, p := range active {
			packages[j] = PackageResponse{
				ID:     p.ID,
				Name:   p.Name,
				Hours:  p.DurationHours,
				Price:  p.Price,
				Active: p.Active,
			}
		}

		resp.Services = append(resp.Services, ServiceTypeResponse{
			ID:            svc.ID,
			Name:          svc.Name,
			Icon:          svc.Icon,
			Description:   svc.Description,
			Mode:          string(svc.Mode),
			RequiresVenue: svc.RequiresVenue,
			Packages:      packages,
		})
	}
	return resp
}
