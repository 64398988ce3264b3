package scoring

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Category classifies the product under assessment.
type Category string

const (
	CategoryMeat      Category = "Meat"
	CategoryDairy     Category = "Dairy"
	CategoryBeverages Category = "Beverages"
	CategorySnacks    Category = "Snacks"
	CategoryOther     Category = "Other"
)

// EnergySource is the primary energy source of the production site.
type EnergySource string

const (
	EnergySolar EnergySource = "solar"
	EnergyWind  EnergySource = "wind"
	EnergyHydro EnergySource = "hydro"
	EnergyGas   EnergySource = "gas"
	EnergyCoal  EnergySource = "coal"
	EnergyMixed EnergySource = "mixed"
)

// WasteManagement is the waste handling practice.
type WasteManagement string

const (
	WasteRecycling    WasteManagement = "recycling"
	WasteLandfill     WasteManagement = "landfill"
	WasteIncineration WasteManagement = "incineration"
	WasteNone         WasteManagement = "none"
)

// PackagingType is the dominant packaging material.
type PackagingType string

const (
	PackagingPlastic       PackagingType = "plastic"
	PackagingGlass         PackagingType = "glass"
	PackagingMetal         PackagingType = "metal"
	PackagingBiodegradable PackagingType = "biodegradable"
	PackagingRecycledPaper PackagingType = "recycled_paper"
)

// TransportationMode is the main outbound logistics mode. It is informational only.
type TransportationMode string

const (
	TransportRoad     TransportationMode = "road"
	TransportRail     TransportationMode = "rail"
	TransportSea      TransportationMode = "sea"
	TransportAir      TransportationMode = "air"
	TransportElectric TransportationMode = "electric"
)

var (
	Categories          = []Category{CategoryMeat, CategoryDairy, CategoryBeverages, CategorySnacks, CategoryOther}
	EnergySources       = []EnergySource{EnergySolar, EnergyWind, EnergyHydro, EnergyGas, EnergyCoal, EnergyMixed}
	WastePractices      = []WasteManagement{WasteRecycling, WasteLandfill, WasteIncineration, WasteNone}
	PackagingTypes      = []PackagingType{PackagingPlastic, PackagingGlass, PackagingMetal, PackagingBiodegradable, PackagingRecycledPaper}
	TransportationModes = []TransportationMode{TransportRoad, TransportRail, TransportSea, TransportAir, TransportElectric}
)

// Record is the flat set of company and product attributes that feeds one evaluation.
// Optional attributes left at their zero value (or nil) are treated as not applicable
// and contribute nothing to their score component.
type Record struct {
	CompanyName string   `json:"company_name" yaml:"company_name"`
	ProductName string   `json:"product_name,omitempty" yaml:"product_name,omitempty"`
	Country     string   `json:"country" yaml:"country"`
	Category    Category `json:"category,omitempty" yaml:"category,omitempty"`

	HalalCertified          bool    `json:"halal_certified" yaml:"halal_certified"`
	ZabihaRequired          bool    `json:"zabiha_required" yaml:"zabiha_required"`
	UsesNonHalalIngredients bool    `json:"uses_non_halal_ingredients" yaml:"uses_non_halal_ingredients"`
	CrossContaminationRisk  float64 `json:"cross_contamination_risk" yaml:"cross_contamination_risk"`
	AnimalWelfareCertified  bool    `json:"animal_welfare_certified" yaml:"animal_welfare_certified"`

	EnergySource              EnergySource       `json:"energy_source" yaml:"energy_source"`
	RenewablePercentage       *int               `json:"renewable_percentage,omitempty" yaml:"renewable_percentage,omitempty"`
	CarbonEmissionPerUnit     float64            `json:"carbon_emission_per_unit" yaml:"carbon_emission_per_unit"`
	WaterUsagePerUnit         float64            `json:"water_usage_per_unit" yaml:"water_usage_per_unit"`
	WasteManagement           WasteManagement    `json:"waste_management" yaml:"waste_management"`
	PackagingType             PackagingType      `json:"packaging_type,omitempty" yaml:"packaging_type,omitempty"`
	TransportationMode        TransportationMode `json:"transportation_mode,omitempty" yaml:"transportation_mode,omitempty"`
	SupplierTransparencyScore float64            `json:"supplier_transparency_score" yaml:"supplier_transparency_score"`

	FairLabourCertified *bool  `json:"fair_labour_certified,omitempty" yaml:"fair_labour_certified,omitempty"`
	CSRInitiatives      string `json:"csr_initiatives,omitempty" yaml:"csr_initiatives,omitempty"`
}

// EthicsModeled reports whether the record carries any ethical attribute.
func (r Record) EthicsModeled() bool {
	return r.FairLabourCertified != nil || r.hasCSR()
}

// ZabihaVerified is true when a meat product that requires zabiha slaughter is halal certified.
func (r Record) ZabihaVerified() bool {
	return r.Category == CategoryMeat && r.ZabihaRequired && r.HalalCertified
}

// hasCSR treats any non-empty description as a CSR initiative.
func (r Record) hasCSR() bool {
	return r.CSRInitiatives != ""
}

func (r Record) fairLabour() bool {
	return r.FairLabourCertified != nil && *r.FairLabourCertified
}

// Clamp pins numeric attributes into their declared input ranges.
func (r Record) Clamp() Record {
	r.CrossContaminationRisk = clampFloat(r.CrossContaminationRisk, 0, 1)
	r.CarbonEmissionPerUnit = clampFloat(r.CarbonEmissionPerUnit, 0, 20)
	r.WaterUsagePerUnit = clampFloat(r.WaterUsagePerUnit, 0, 500)
	r.SupplierTransparencyScore = clampFloat(r.SupplierTransparencyScore, 0, 1)
	if r.RenewablePercentage != nil {
		pct := *r.RenewablePercentage
		if pct < 0 {
			pct = 0
		} else if pct > 100 {
			pct = 100
		}
		r.RenewablePercentage = &pct
	}
	return r
}

// Validate checks the required identity field, that every number is finite and
// the enumerated attributes.
func (r Record) Validate() error {
	if strings.TrimSpace(r.CompanyName) == "" {
		return errors.New("company_name is required")
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"cross_contamination_risk", r.CrossContaminationRisk},
		{"carbon_emission_per_unit", r.CarbonEmissionPerUnit},
		{"water_usage_per_unit", r.WaterUsagePerUnit},
		{"supplier_transparency_score", r.SupplierTransparencyScore},
	} {
		if !Finite(f.value) {
			return fmt.Errorf("%s must be a finite number, got %v", f.name, f.value)
		}
	}
	if !contains(EnergySources, r.EnergySource) {
		return fmt.Errorf("energy_source %q is not one of %v", r.EnergySource, EnergySources)
	}
	if !contains(WastePractices, r.WasteManagement) {
		return fmt.Errorf("waste_management %q is not one of %v", r.WasteManagement, WastePractices)
	}
	if r.Category != "" && !contains(Categories, r.Category) {
		return fmt.Errorf("category %q is not one of %v", r.Category, Categories)
	}
	if r.PackagingType != "" && !contains(PackagingTypes, r.PackagingType) {
		return fmt.Errorf("packaging_type %q is not one of %v", r.PackagingType, PackagingTypes)
	}
	if r.TransportationMode != "" && !contains(TransportationModes, r.TransportationMode) {
		return fmt.Errorf("transportation_mode %q is not one of %v", r.TransportationMode, TransportationModes)
	}
	return nil
}

func contains[T comparable](options []T, v T) bool {
	for _, opt := range options {
		if opt == v {
			return true
		}
	}
	return false
}

// Finite reports whether v is neither NaN nor an infinity.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// clampFloat expects a finite v; Validate rejects the rest.
func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
