// Package pricing holds the static price table the calculator quotes from.
package pricing

import "fmt"

// PriceRange is an inclusive low/high estimate in whole dollars.
type PriceRange struct {
	Low  int
	High int
}

// Display formats a range for notifications, e.g. "$295 - $395".
func (r PriceRange) Display() string {
	return fmt.Sprintf("$%d - $%d", r.Low, r.High)
}

// Contains reports whether a quoted price falls inside the range.
func (r PriceRange) Contains(price float64) bool {
	return price >= float64(r.Low) && price <= float64(r.High)
}

// tiers maps home size -> package -> price range.
var tiers = map[string]map[string]PriceRange{
	"small": {
		"basic":  {295, 395},
		"deluxe": {445, 545},
		"luxury": {595, 745},
	},
	"medium": {
		"basic":  {395, 495},
		"deluxe": {595, 695},
		"luxury": {795, 945},
	},
	"large": {
		"basic":  {495, 595},
		"deluxe": {745, 845},
		"luxury": {995, 1195},
	},
	"xl": {
		"basic":  {645, 745},
		"deluxe": {945, 1095},
		"luxury": {1295, 1595},
	},
}

// packageNames maps package IDs to their customer-facing names.
var packageNames = map[string]string{
	"basic":  "Basic",
	"deluxe": "Deluxe",
	"luxury": "Luxury",
}

// packageFeatures lists what each package includes, in display order.
var packageFeatures = map[string][]string{
	"basic": {
		"Exterior Glass Cleaning",
		"That's it, simple & clean.",
	},
	"deluxe": {
		"Everything in Basic, plus:",
		"Interior Glass Cleaning",
		"Light Track Cleaning",
		"Light Sill Wipe",
		"Screen Dusting",
	},
	"luxury": {
		"Everything in Deluxe, plus:",
		"Deep Track Scrubbing",
		"Deep Sill Cleaning",
		"Full Screen Wash",
	},
}

// RangeFor returns the price range for a home size and package.
func RangeFor(homeSize, pkg string) (PriceRange, error) {
	byPackage, ok := tiers[homeSize]
	if !ok {
		return PriceRange{}, fmt.Errorf("unknown home size %q", homeSize)
	}
	r, ok := byPackage[pkg]
	if !ok {
		return PriceRange{}, fmt.Errorf("unknown package %q", pkg)
	}
	return r, nil
}

// PackageName returns the display name for a package ID, falling back to the
// raw ID for unknown values.
func PackageName(pkg string) string {
	if name, ok := packageNames[pkg]; ok {
		return name
	}
	return pkg
}

// Features returns the feature list for a package ID, nil for unknown values.
func Features(pkg string) []string {
	return packageFeatures[pkg]
}
