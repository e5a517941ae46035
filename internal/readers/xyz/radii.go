package xyz

import "strings"

// bondTolerance is added to the sum of covalent radii when deciding
// whether two atoms are bonded, in ångström.
const bondTolerance = 0.56

// defaultRadius is used for elements missing from covalentRadii.
const defaultRadius = 0.75

// covalentRadii in ångström, keyed by upper-cased symbol.
var covalentRadii = map[string]float64{
	"H":  0.32,
	"HE": 0.46,
	"LI": 1.33,
	"BE": 1.02,
	"B":  0.85,
	"C":  0.75,
	"N":  0.71,
	"O":  0.63,
	"F":  0.64,
	"NE": 0.67,
	"NA": 1.55,
	"MG": 1.39,
	"AL": 1.26,
	"SI": 1.16,
	"P":  1.11,
	"S":  1.03,
	"CL": 0.99,
	"AR": 0.96,
	"K":  1.96,
	"CA": 1.71,
	"TI": 1.36,
	"FE": 1.16,
	"CO": 1.11,
	"NI": 1.10,
	"CU": 1.12,
	"ZN": 1.18,
	"GA": 1.24,
	"GE": 1.21,
	"AS": 1.21,
	"SE": 1.16,
	"BR": 1.14,
	"AG": 1.28,
	"SN": 1.40,
	"I":  1.33,
	"PT": 1.23,
	"AU": 1.24,
	"PB": 1.44,
}

// radius returns the covalent radius for an element symbol.
func radius(element string) float64 {
	if r, ok := covalentRadii[strings.ToUpper(element)]; ok {
		return r
	}
	return defaultRadius
}

func isHydrogen(element string) bool {
	return strings.EqualFold(element, "H")
}
