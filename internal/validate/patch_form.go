package validate

import (
	"strings"

	"github.com/chargemap/backend-go/internal/models"
	"github.com/chargemap/backend-go/internal/station"
)

// PatchForm is a partial station edit: nil fields were not submitted and
// stay untouched. The id never appears here; it travels separately as the
// document key.
type PatchForm struct {
	Name         *string     `json:"name,omitempty"`
	Address      *string     `json:"address,omitempty"`
	Latitude     *string     `json:"latitude,omitempty"`
	Longitude    *string     `json:"longitude,omitempty"`
	Type         *string     `json:"type,omitempty"`
	Operator     *string     `json:"operator,omitempty"`
	OpeningHours *string     `json:"openingHours,omitempty"`
	Ports        *[]PortForm `json:"ports,omitempty"`
}

// Validate checks only the submitted fields, with the same rules as a full
// submission. A ports field, when present, must still hold at least one
// valid port.
func (f PatchForm) Validate() (station.Patch, Errors) {
	errs := Errors{}
	patch := station.Patch{}

	if f.Name != nil {
		name := strings.TrimSpace(*f.Name)
		if len(name) < 3 {
			errs["name"] = "Station name must be at least 3 characters"
		} else {
			patch.Name = &name
		}
	}

	if f.Latitude != nil {
		latitude := coerceFloat("latitude", *f.Latitude, errs)
		if latitude < -90 || latitude > 90 {
			errs["latitude"] = "Latitude must be between -90 and 90"
		} else if _, bad := errs["latitude"]; !bad {
			patch.Latitude = &latitude
		}
	}

	if f.Longitude != nil {
		longitude := coerceFloat("longitude", *f.Longitude, errs)
		if longitude < -180 || longitude > 180 {
			errs["longitude"] = "Longitude must be between -180 and 180"
		} else if _, bad := errs["longitude"]; !bad {
			patch.Longitude = &longitude
		}
	}

	if f.Type != nil {
		stationType := models.StationType(*f.Type)
		if !stationType.IsValid() {
			errs["type"] = "Station type must be one of AC, DC or Hybrid"
		} else {
			patch.Type = &stationType
		}
	}

	if f.Ports != nil {
		if len(*f.Ports) == 0 {
			errs["ports"] = "At least one port is required"
		}
		ports := make([]models.Port, 0, len(*f.Ports))
		for i, portForm := range *f.Ports {
			ports = append(ports, portForm.validate(i, errs))
		}
		patch.Ports = ports
	}

	// Optional free-text fields pass through; empty means "clear"
	if f.Address != nil {
		address := strings.TrimSpace(*f.Address)
		patch.Address = &address
	}
	if f.Operator != nil {
		operator := strings.TrimSpace(*f.Operator)
		patch.Operator = &operator
	}
	if f.OpeningHours != nil {
		openingHours := strings.TrimSpace(*f.OpeningHours)
		patch.OpeningHours = &openingHours
	}

	if len(errs) > 0 {
		return station.Patch{}, errs
	}
	return patch, nil
}
