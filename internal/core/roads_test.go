package core

import (
	"testing"

	"risk_service/internal/domain/model"
)

func TestClassifyRoute(t *testing.T) {
	cases := []struct {
		route       string
		wantType    string
		wantNetwork string
	}{
		{"Carretera Central", "CARRETERA", "NACIONAL"},
		{"Panamericana Sur", "CARRETERA", "NACIONAL"},
		{"Autopista Ramiro Prialé", "CARRETERA", "NACIONAL"},
		{"Jirón de la Unión", "JIRON", "URBANA"},
		{"Jr. Ancash", "JIRON", "URBANA"},
		{"Calle Los Pinos", "CALLE", "URBANA"},
		{"Ca. Berlín", "CALLE", "URBANA"},
		{"Avenida Arequipa", "AVENIDA", "URBANA"},
		{"Av. Larco", "AVENIDA", "URBANA"},
		{"Malecón de la Reserva", "", ""},
		{"", "", ""},
	}
	for _, c := range cases {
		gotType, gotNetwork := ClassifyRoute(c.route)
		if gotType != c.wantType || gotNetwork != c.wantNetwork {
			t.Errorf("ClassifyRoute(%q) = (%q, %q), want (%q, %q)",
				c.route, gotType, gotNetwork, c.wantType, c.wantNetwork)
		}
	}
}

func TestClassifyHighway(t *testing.T) {
	cases := []struct {
		highway     string
		wantType    string
		wantNetwork string
	}{
		{"motorway", "CARRETERA", "NACIONAL"},
		{"trunk", "CARRETERA", "NACIONAL"},
		{"primary", "AVENIDA", "URBANA"},
		{"secondary", "AVENIDA", "URBANA"},
		{"residential", "CALLE", "URBANA"},
		{"footway", "", ""},
	}
	for _, c := range cases {
		gotType, gotNetwork := ClassifyHighway(c.highway)
		if gotType != c.wantType || gotNetwork != c.wantNetwork {
			t.Errorf("ClassifyHighway(%q) = (%q, %q), want (%q, %q)",
				c.highway, gotType, gotNetwork, c.wantType, c.wantNetwork)
		}
	}
}

func TestExtractLocationDetails(t *testing.T) {
	res := model.GeocodeResult{
		FormattedAddress: "Av. Larco 123, Miraflores, Lima, Peru",
		Components: []model.AddressComponent{
			{LongName: "Avenida Larco", Types: []string{"route"}},
			{LongName: "Miraflores", Types: []string{"locality", "political"}},
			{LongName: "Lima", Types: []string{"administrative_area_level_2", "political"}},
			{LongName: "Lima", Types: []string{"administrative_area_level_1", "political"}},
			{LongName: "Peru", Types: []string{"country", "political"}},
		},
	}

	details := ExtractLocationDetails(res)
	if details.Departamento != "LIMA" {
		t.Errorf("Departamento = %q, want LIMA", details.Departamento)
	}
	if details.Provincia != "LIMA" {
		t.Errorf("Provincia = %q, want LIMA", details.Provincia)
	}
	if details.Distrito != "MIRAFLORES" {
		t.Errorf("Distrito = %q, want MIRAFLORES", details.Distrito)
	}
	if details.TypeOfRoad != "AVENIDA" || details.RoadNetwork != "URBANA" {
		t.Errorf("Road = (%q, %q), want (AVENIDA, URBANA)", details.TypeOfRoad, details.RoadNetwork)
	}
}

func TestExtractLocationDetailsLevel3BeatsLocality(t *testing.T) {
	res := model.GeocodeResult{
		Components: []model.AddressComponent{
			{LongName: "Surco", Types: []string{"locality"}},
			{LongName: "Santiago de Surco", Types: []string{"administrative_area_level_3"}},
		},
	}
	details := ExtractLocationDetails(res)
	if details.Distrito != "SANTIAGO DE SURCO" {
		t.Errorf("Distrito = %q, want the administrative component over the locality", details.Distrito)
	}
}

func TestExtractLocationDetailsEmpty(t *testing.T) {
	details := ExtractLocationDetails(model.GeocodeResult{})
	if details != (model.LocationDetails{}) {
		t.Errorf("Expected empty details for a result without components, got %+v", details)
	}
}
