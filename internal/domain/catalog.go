package domain

// SchedulingMode defines how a service occupies the studio calendar
type SchedulingMode string

const (
	// ModeHourly services occupy [start, start+duration) within operating hours
	ModeHourly SchedulingMode = "hourly"
	// ModeWholeDay services (events, venue-based) occupy the whole day
	ModeWholeDay SchedulingMode = "whole_day"
)

// IsValid reports whether m is a known mode
func (m SchedulingMode) IsValid() bool {
	return m == ModeHourly || m == ModeWholeDay
}

// ServiceType is a category of photography engagement (portrait session, wedding, ...)
type ServiceType struct {
	ID            int64
	Name          string
	Icon          string
	Description   string
	Mode          SchedulingMode
	RequiresVenue bool
	Active        bool
	DisplayOrder  int
	Packages      []Package
}

// Package is a priced, fixed-duration offering under a ServiceType
type Package struct {
	ID            int64
	ServiceID     int64
	Name          string
	DurationHours int
	Price         int64 // minor units
	Active        bool
	DisplayOrder  int
}

// FindPackage returns the package with the given id
func (s *ServiceType) FindPackage(packageID int64) (*Package, bool) {
	for i := range s.Packages {
		if s.Packages[i].ID == packageID {
			return &s.Packages[i], true
		}
	}
	return nil, false
}

// ActivePackages returns the active packages in display order
func (s *ServiceType) ActivePackages() []Package {
	result := make([]Package, 0, len(s.Packages))
	for _, p := range s.Packages {
		if p.Active {
			result = append(result, p)
		}
	}
	return result
}
