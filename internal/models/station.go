package models

type StationType string

const (
	StationTypeAC     StationType = "AC"
	StationTypeDC     StationType = "DC"
	StationTypeHybrid StationType = "Hybrid"
)

func (t StationType) IsValid() bool {
	switch t {
	case StationTypeAC, StationTypeDC, StationTypeHybrid:
		return true
	}
	return false
}

type PortType string

const (
	PortTypeType1   PortType = "Type 1"
	PortTypeType2   PortType = "Type 2"
	PortTypeCCS     PortType = "CCS"
	PortTypeCHAdeMO PortType = "CHAdeMO"
)

func (t PortType) IsValid() bool {
	switch t {
	case PortTypeType1, PortTypeType2, PortTypeCCS, PortTypeCHAdeMO:
		return true
	}
	return false
}

type PortStatus string

const (
	PortStatusAvailable  PortStatus = "available"
	PortStatusOccupied   PortStatus = "occupied"
	PortStatusOutOfOrder PortStatus = "out_of_order"
)

func (s PortStatus) IsValid() bool {
	switch s {
	case PortStatusAvailable, PortStatusOccupied, PortStatusOutOfOrder:
		return true
	}
	return false
}

// Port is a single charging connector at a station. The ID is generated on
// the client side and stays stable across edits. Ports are stored as an
// embedded ordered list on the station document; list order is display order.
type Port struct {
	ID          string     `json:"id" dynamodbav:"id"`
	Type        PortType   `json:"type" dynamodbav:"type"`
	PowerKW     float64    `json:"powerKW" dynamodbav:"powerKW"`
	Status      PortStatus `json:"status" dynamodbav:"status"`
	PricePerKWh *float64   `json:"pricePerKWh,omitempty" dynamodbav:"pricePerKWh,omitempty"`
}

// Station is a physical charging location. The ID doubles as the document
// key in the stations table and is never part of an update payload.
type Station struct {
	ID           string      `json:"id" dynamodbav:"id"`
	Name         string      `json:"name" dynamodbav:"name"`
	Address      *string     `json:"address,omitempty" dynamodbav:"address,omitempty"`
	Latitude     float64     `json:"latitude" dynamodbav:"latitude"`
	Longitude    float64     `json:"longitude" dynamodbav:"longitude"`
	Type         StationType `json:"type" dynamodbav:"type"`
	Ports        []Port      `json:"ports" dynamodbav:"ports"`
	Operator     *string     `json:"operator,omitempty" dynamodbav:"operator,omitempty"`
	OpeningHours *string     `json:"openingHours,omitempty" dynamodbav:"openingHours,omitempty"`
}

// OptionalString normalizes a free-text optional field: an empty value is
// represented as absent rather than as an empty string.
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	value := s
	return &value
}

// Normalize folds empty optional fields to absent so the persisted document
// never carries empty strings for address, operator or openingHours.
func (s *Station) Normalize() {
	if s.Address != nil && *s.Address == "" {
		s.Address = nil
	}
	if s.Operator != nil && *s.Operator == "" {
		s.Operator = nil
	}
	if s.OpeningHours != nil && *s.OpeningHours == "" {
		s.OpeningHours = nil
	}
}
