package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chargemap/backend-go/internal/models"
)

func validForm() StationForm {
	return StationForm{
		Name:         "Tashkent City Charger",
		Address:      "1 Navoi Street, Tashkent",
		Latitude:     "41.311081",
		Longitude:    "69.240562",
		Type:         "DC",
		Operator:     "ElectroCar",
		OpeningHours: "24/7",
		Ports: []PortForm{
			{ID: "p1-1", Type: "CCS", PowerKW: "50", Status: "available", PricePerKWh: "2500"},
			{ID: "p1-2", Type: "CHAdeMO", PowerKW: "50", Status: "occupied"},
		},
	}
}

func TestValidateAcceptsValidSubmission(t *testing.T) {
	draft, errs := validForm().Validate()
	require.Nil(t, errs)
	require.NotNil(t, draft)

	assert.Empty(t, draft.ID, "validator never assigns a station id")
	assert.Equal(t, "Tashkent City Charger", draft.Name)
	assert.Equal(t, 41.311081, draft.Latitude)
	assert.Equal(t, 69.240562, draft.Longitude)
	assert.Equal(t, models.StationTypeDC, draft.Type)

	require.Len(t, draft.Ports, 2)
	assert.Equal(t, "p1-1", draft.Ports[0].ID, "existing port ids are preserved")
	require.NotNil(t, draft.Ports[0].PricePerKWh)
	assert.Equal(t, 2500.0, *draft.Ports[0].PricePerKWh)
	assert.Nil(t, draft.Ports[1].PricePerKWh, "price is optional")
}

func TestValidatePreservesPortOrderAndCount(t *testing.T) {
	form := validForm()
	form.Ports = []PortForm{
		{ID: "z", Type: "Type 2", PowerKW: "22", Status: "available"},
		{ID: "a", Type: "CCS", PowerKW: "60", Status: "out_of_order"},
		{ID: "m", Type: "Type 1", PowerKW: "11", Status: "occupied"},
	}

	draft, errs := form.Validate()
	require.Nil(t, errs)
	require.Len(t, draft.Ports, 3)
	assert.Equal(t, "z", draft.Ports[0].ID)
	assert.Equal(t, "a", draft.Ports[1].ID)
	assert.Equal(t, "m", draft.Ports[2].ID)
}

func TestValidateAssignsPortIDWhenBlank(t *testing.T) {
	form := validForm()
	form.Ports[0].ID = ""

	draft, errs := form.Validate()
	require.Nil(t, errs)
	assert.NotEmpty(t, draft.Ports[0].ID)
	assert.Equal(t, "p1-2", draft.Ports[1].ID)
}

func TestValidateNormalizesEmptyOptionals(t *testing.T) {
	form := validForm()
	form.Address = ""
	form.Operator = "  "
	form.OpeningHours = ""

	draft, errs := form.Validate()
	require.Nil(t, errs)
	assert.Nil(t, draft.Address)
	assert.Nil(t, draft.Operator)
	assert.Nil(t, draft.OpeningHours)
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*StationForm)
		wantField string
	}{
		{
			name:      "name shorter than 3 characters",
			mutate:    func(f *StationForm) { f.Name = "ab" },
			wantField: "name",
		},
		{
			name:      "latitude not numeric",
			mutate:    func(f *StationForm) { f.Latitude = "north" },
			wantField: "latitude",
		},
		{
			name:      "latitude out of range",
			mutate:    func(f *StationForm) { f.Latitude = "91.5" },
			wantField: "latitude",
		},
		{
			name:      "longitude out of range",
			mutate:    func(f *StationForm) { f.Longitude = "-180.1" },
			wantField: "longitude",
		},
		{
			name:      "unknown station type is rejected not defaulted",
			mutate:    func(f *StationForm) { f.Type = "Turbo" },
			wantField: "type",
		},
		{
			name:      "zero ports",
			mutate:    func(f *StationForm) { f.Ports = nil },
			wantField: "ports",
		},
		{
			name:      "port power must be positive",
			mutate:    func(f *StationForm) { f.Ports[1].PowerKW = "0" },
			wantField: "ports[1].powerKW",
		},
		{
			name:      "port price cannot be negative",
			mutate:    func(f *StationForm) { f.Ports[0].PricePerKWh = "-1" },
			wantField: "ports[0].pricePerKWh",
		},
		{
			name:      "unknown port type",
			mutate:    func(f *StationForm) { f.Ports[0].Type = "Tesla" },
			wantField: "ports[0].type",
		},
		{
			name:      "unknown port status",
			mutate:    func(f *StationForm) { f.Ports[0].Status = "broken" },
			wantField: "ports[0].status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			draft, errs := form.Validate()
			assert.Nil(t, draft, "rejected submission must not produce a draft")
			require.NotNil(t, errs)
			assert.Contains(t, errs, tt.wantField)
		})
	}
}

func TestValidateCollectsAllFieldErrors(t *testing.T) {
	form := validForm()
	form.Name = "x"
	form.Type = "Turbo"
	form.Ports[0].PowerKW = "-5"

	_, errs := form.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "type")
	assert.Contains(t, errs, "ports[0].powerKW")
}

func TestPatchFormValidatesOnlySubmittedFields(t *testing.T) {
	name := "Renamed Charger"
	patch, errs := PatchForm{Name: &name}.Validate()
	require.Nil(t, errs)
	require.NotNil(t, patch.Name)
	assert.Equal(t, "Renamed Charger", *patch.Name)
	assert.Nil(t, patch.Latitude)
	assert.Nil(t, patch.Ports)
}

func TestPatchFormRejectsInvalidSubmittedField(t *testing.T) {
	badType := "Turbo"
	_, errs := PatchForm{Type: &badType}.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "type")
}

func TestPatchFormRejectsEmptyPortList(t *testing.T) {
	ports := []PortForm{}
	_, errs := PatchForm{Ports: &ports}.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "ports")
}

func TestPatchFormPassesEmptyOptionalThrough(t *testing.T) {
	empty := ""
	patch, errs := PatchForm{Address: &empty}.Validate()
	require.Nil(t, errs)
	require.NotNil(t, patch.Address, "empty means clear, which is a change")
	assert.Equal(t, "", *patch.Address)
}
