package store

import (
	"strings"
	"time"

	"greenhalal/backend/internal/enrich"
)

// ReferenceCompany is a public-database row used to enrich submitted records.
type ReferenceCompany struct {
	CompanyName           string   `gorm:"primaryKey;size:256"`
	CarbonEmissionPerUnit *float64 `gorm:"column:carbon_emission_per_unit"`
	HalalCertified        *bool
	CertificationID       string `gorm:"size:64;index"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// ReferenceFromEntry converts an enrichment entry into its persisted form.
func ReferenceFromEntry(e enrich.Entry) ReferenceCompany {
	return ReferenceCompany{
		CompanyName:           strings.TrimSpace(e.CompanyName),
		CarbonEmissionPerUnit: e.CarbonEmissionPerUnit,
		HalalCertified:        e.HalalCertified,
		CertificationID:       strings.TrimSpace(e.CertificationID),
	}
}

// Entry converts the row back into an enrichment entry.
func (r ReferenceCompany) Entry() enrich.Entry {
	return enrich.Entry{
		CompanyName:           r.CompanyName,
		CarbonEmissionPerUnit: r.CarbonEmissionPerUnit,
		HalalCertified:        r.HalalCertified,
		CertificationID:       r.CertificationID,
	}
}

// Marker records a one-time store operation, such as the default reference seed.
type Marker struct {
	Name      string `gorm:"primaryKey;size:128"`
	CreatedAt time.Time
}

// TableName keeps markers apart from domain tables.
func (Marker) TableName() string {
	return "store_markers"
}
