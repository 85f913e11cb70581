package validate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/chargemap/backend-go/internal/models"
)

// Errors maps a field path (e.g. "ports[1].powerKW") to a message. A
// submission that produces any entry is rejected as a whole; nothing is
// ever partially persisted.
type Errors map[string]string

func (e Errors) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e))
}

// PortForm is a single port row as submitted, before coercion.
type PortForm struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	PowerKW     string `json:"powerKW"`
	Status      string `json:"status"`
	PricePerKWh string `json:"pricePerKWh"`
}

// StationForm is a station submission with numeric fields still in their
// text-input form. Validate coerces and range-checks them.
type StationForm struct {
	Name         string     `json:"name"`
	Address      string     `json:"address"`
	Latitude     string     `json:"latitude"`
	Longitude    string     `json:"longitude"`
	Type         string     `json:"type"`
	Operator     string     `json:"operator"`
	OpeningHours string     `json:"openingHours"`
	Ports        []PortForm `json:"ports"`
}

// Validate checks the submission and returns the resulting station draft
// (id unset) or a field-keyed error map. Invalid enum values are rejected
// outright, never silently defaulted. Empty optional fields come back as
// absent.
func (f StationForm) Validate() (*models.Station, Errors) {
	errs := Errors{}

	name := strings.TrimSpace(f.Name)
	if len(name) < 3 {
		errs["name"] = "Station name must be at least 3 characters"
	}

	latitude := coerceFloat("latitude", f.Latitude, errs)
	if latitude < -90 || latitude > 90 {
		errs["latitude"] = "Latitude must be between -90 and 90"
	}
	longitude := coerceFloat("longitude", f.Longitude, errs)
	if longitude < -180 || longitude > 180 {
		errs["longitude"] = "Longitude must be between -180 and 180"
	}

	stationType := models.StationType(f.Type)
	if !stationType.IsValid() {
		errs["type"] = "Station type must be one of AC, DC or Hybrid"
	}

	if len(f.Ports) == 0 {
		errs["ports"] = "At least one port is required"
	}

	ports := make([]models.Port, 0, len(f.Ports))
	for i, portForm := range f.Ports {
		ports = append(ports, portForm.validate(i, errs))
	}

	if len(errs) > 0 {
		return nil, errs
	}

	draft := &models.Station{
		Name:         name,
		Address:      models.OptionalString(strings.TrimSpace(f.Address)),
		Latitude:     latitude,
		Longitude:    longitude,
		Type:         stationType,
		Ports:        ports,
		Operator:     models.OptionalString(strings.TrimSpace(f.Operator)),
		OpeningHours: models.OptionalString(strings.TrimSpace(f.OpeningHours)),
	}
	return draft, nil
}

// validate checks one port row independently of its siblings. A blank id
// gets a freshly generated token; an existing id is preserved so the row
// stays stable across edits.
func (p PortForm) validate(index int, errs Errors) models.Port {
	prefix := fmt.Sprintf("ports[%d]", index)

	portType := models.PortType(p.Type)
	if !portType.IsValid() {
		errs[prefix+".type"] = "Port type must be one of Type 1, Type 2, CCS or CHAdeMO"
	}

	powerKW := coerceFloat(prefix+".powerKW", p.PowerKW, errs)
	if powerKW <= 0 {
		errs[prefix+".powerKW"] = "Power must be positive"
	}

	status := models.PortStatus(p.Status)
	if !status.IsValid() {
		errs[prefix+".status"] = "Port status must be one of available, occupied or out_of_order"
	}

	var pricePerKWh *float64
	if strings.TrimSpace(p.PricePerKWh) != "" {
		price := coerceFloat(prefix+".pricePerKWh", p.PricePerKWh, errs)
		if price < 0 {
			errs[prefix+".pricePerKWh"] = "Price cannot be negative"
		} else {
			pricePerKWh = &price
		}
	}

	id := strings.TrimSpace(p.ID)
	if id == "" {
		id = uuid.NewString()
	}

	return models.Port{
		ID:          id,
		Type:        portType,
		PowerKW:     powerKW,
		Status:      status,
		PricePerKWh: pricePerKWh,
	}
}

func coerceFloat(field, raw string, errs Errors) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		errs[field] = "Must be a number"
		return 0
	}
	return value
}
