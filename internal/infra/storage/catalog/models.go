package catalog

import "github.com/m04kA/SMC-StudioBooking/internal/domain"

type serviceTypeRow struct {
	ID            int64  `db:"id"`
	Name          string `db:"name"`
	Icon          string `db:"icon"`
	Description   string `db:"description"`
	Mode          string `db:"scheduling_mode"`
	RequiresVenue bool   `db:"requires_venue"`
	Active        bool   `db:"is_active"`
	DisplayOrder  int    `db:"display_order"`
}

type packageRow struct {
	ID            int64  `db:"id"`
	ServiceID     int64  `db:"service_id"`
	Name          string `db:"name"`
	DurationHours int    `db:"duration_hours"`
	Price         int64  `db:"price"`
	Active        bool   `db:"is_active"`
	DisplayOrder  int    `db:"display_order"`
}

func (r serviceTypeRow) toDomain() domain.ServiceType {
	return domain.ServiceType{
		ID:            r.ID,
		Name:          r.Name,
		Icon:          r.Icon,
		Description:   r.Description,
		Mode:          domain.SchedulingMode(r.Mode),
		RequiresVenue: r.RequiresVenue,
		Active:        r.Active,
		DisplayOrder:  r.DisplayOrder,
		Packages:      []domain.Package{},
	}
}

func (r packageRow) toDomain() domain.Package {
	return domain.Package{
		ID:            r.ID,
		ServiceID:     r.ServiceID,
		Name:          r.Name,
		DurationHours: r.DurationHours,
		Price:         r.Price,
		Active:        r.Active,
		DisplayOrder:  r.DisplayOrder,
	}
}
