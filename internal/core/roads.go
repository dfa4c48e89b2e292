package core

import (
	"strings"

	"risk_service/internal/domain/model"
)

// Geocoder component types used for administrative extraction.
const (
	compDepartamento = "administrative_area_level_1"
	compProvincia    = "administrative_area_level_2"
	compDistrito     = "administrative_area_level_3"
	compLocality     = "locality"
	compRoute        = "route"
)

// Keyword lists for guessing the road class from a route name. Matching is
// substring-based on the uppercased name.
var (
	carreteraKeywords = []string{"CARRETERA", "PANAMERICANA", "AUTOPISTA"}
	jironKeywords     = []string{"JIRON", "JIRÓN", "JR."}
	calleKeywords     = []string{"CALLE", "CA."}
	avenidaKeywords   = []string{"AVENIDA", "AV."}
)

// ClassifyRoute guesses the road type and network from a route name.
// Both results are empty when the name matches no keyword list, leaving the
// caller to substitute defaults.
func ClassifyRoute(route string) (typeOfRoad, roadNetwork string) {
	name := strings.ToUpper(route)
	switch {
	case containsAny(name, carreteraKeywords):
		return "CARRETERA", "NACIONAL"
	case containsAny(name, jironKeywords):
		return "JIRON", "URBANA"
	case containsAny(name, calleKeywords):
		return "CALLE", "URBANA"
	case containsAny(name, avenidaKeywords):
		return "AVENIDA", "URBANA"
	}
	return "", ""
}

// ClassifyHighway maps an OSM highway tag to the same road classes, used
// when the geocoder returned no route component.
func ClassifyHighway(highway string) (typeOfRoad, roadNetwork string) {
	switch highway {
	case "motorway", "trunk":
		return "CARRETERA", "NACIONAL"
	case "primary", "secondary":
		return "AVENIDA", "URBANA"
	case "tertiary", "residential", "unclassified", "living_street":
		return "CALLE", "URBANA"
	}
	return "", ""
}

// ExtractLocationDetails scans a reverse-geocode result's components for
// administrative areas and a route. A locality stands in for the district
// only when no administrative_area_level_3 component is present. Fields the
// result gives no hint for stay empty.
func ExtractLocationDetails(res model.GeocodeResult) model.LocationDetails {
	var details model.LocationDetails
	for _, comp := range res.Components {
		switch {
		case hasType(comp, compDepartamento):
			details.Departamento = strings.ToUpper(comp.LongName)
		case hasType(comp, compProvincia):
			details.Provincia = strings.ToUpper(comp.LongName)
		case hasType(comp, compDistrito):
			details.Distrito = strings.ToUpper(comp.LongName)
		case hasType(comp, compLocality):
			if details.Distrito == "" {
				details.Distrito = strings.ToUpper(comp.LongName)
			}
		case hasType(comp, compRoute):
			details.TypeOfRoad, details.RoadNetwork = ClassifyRoute(comp.LongName)
		}
	}
	return details
}

func hasType(comp model.AddressComponent, t string) bool {
	for _, ct := range comp.Types {
		if ct == t {
			return true
		}
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
