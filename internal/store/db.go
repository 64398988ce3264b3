package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"greenhalal/backend/internal/enrich"
)

// Database wraps the GORM DB handle and exposes repository helpers.
type Database struct {
	gorm *gorm.DB
	mu   sync.Mutex
}

// Open initializes the SQLite-backed database at the provided path.
func Open(path string, silent bool) (*Database, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("database path is empty")
	}
	cfg := &gorm.Config{}
	if silent {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}
	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&ReferenceCompany{}, &Marker{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.Exec("PRAGMA journal_mode=WAL").Error; err != nil {
		logrus.WithError(err).Warn("enable WAL mode")
	}
	if err := db.Exec("PRAGMA synchronous=NORMAL").Error; err != nil {
		logrus.WithError(err).Warn("set synchronous pragma")
	}
	return &Database{gorm: db}, nil
}

// Close closes the underlying database connection.
func (d *Database) Close() error {
	if d == nil {
		return nil
	}
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SeedReferencesOnce seeds entries the first time marker is seen and never again,
// so companies deleted later stay deleted. It reports the rows inserted and
// whether the seed ran.
func (d *Database) SeedReferencesOnce(marker string, entries []enrich.Entry) (int64, bool, error) {
	if d == nil {
		return 0, false, errors.New("database is nil")
	}
	rows := toRows(entries)
	d.mu.Lock()
	defer d.mu.Unlock()

	var (
		inserted int64
		ran      bool
	)
	err := d.gorm.Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&Marker{Name: marker})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		ran = true
		if len(rows) == 0 {
			return nil
		}
		res = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
		inserted = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, false, fmt.Errorf("seed references once: %w", err)
	}
	return inserted, ran, nil
}

// UpsertReferences inserts or replaces the provided entries.
func (d *Database) UpsertReferences(entries []enrich.Entry) error {
	if d == nil {
		return errors.New("database is nil")
	}
	rows := toRows(entries)
	if len(rows) == 0 {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Transaction(func(tx *gorm.DB) error {
		const batchSize = 250
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "company_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"carbon_emission_per_unit", "halal_certified", "certification_id", "updated_at"}),
		}).CreateInBatches(&rows, batchSize).Error
	})
}

// DeleteReference removes a company from the reference table.
func (d *Database) DeleteReference(company string) error {
	if d == nil {
		return errors.New("database is nil")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	res := d.gorm.Where("company_name = ?", company).Delete(&ReferenceCompany{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListReferences returns every stored reference entry ordered by company name.
func (d *Database) ListReferences() ([]enrich.Entry, error) {
	if d == nil {
		return nil, errors.New("database is nil")
	}
	var rows []ReferenceCompany
	if err := d.gorm.Order("company_name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}
	entries := make([]enrich.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.Entry())
	}
	return entries, nil
}

// CountReferences returns the number of stored reference entries.
func (d *Database) CountReferences() (int64, error) {
	var count int64
	if err := d.gorm.Model(&ReferenceCompany{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// LoadTable builds the immutable enrichment table from the stored entries.
func (d *Database) LoadTable() (*enrich.Table, error) {
	entries, err := d.ListReferences()
	if err != nil {
		return nil, err
	}
	logrus.WithField("reference_companies", len(entries)).Info("loaded reference table")
	return enrich.NewTable(entries), nil
}

// toRows converts entries to rows, keeping the last entry for a repeated company.
func toRows(entries []enrich.Entry) []ReferenceCompany {
	rows := make([]ReferenceCompany, 0, len(entries))
	index := make(map[string]int, len(entries))
	for _, e := range entries {
		row := ReferenceFromEntry(e)
		if row.CompanyName == "" {
			continue
		}
		if i, ok := index[row.CompanyName]; ok {
			rows[i] = row
			continue
		}
		index[row.CompanyName] = len(rows)
		rows = append(rows, row)
	}
	return rows
}

const defaultsMarker = "default_reference_companies"

// Bootstrap seeds the default reference companies on first use, imports the optional
// reference file and freezes the stored rows into an enrichment table.
func (d *Database) Bootstrap(referencePath string) (*enrich.Table, error) {
	inserted, _, err := d.SeedReferencesOnce(defaultsMarker, enrich.DefaultEntries())
	if err != nil {
		return nil, fmt.Errorf("seed reference table: %w", err)
	}
	if inserted > 0 {
		logrus.WithField("inserted", inserted).Info("seeded default reference companies")
	}

	if path := strings.TrimSpace(referencePath); path != "" {
		entries, err := enrich.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reference file: %w", err)
		}
		if err := d.UpsertReferences(entries); err != nil {
			return nil, fmt.Errorf("import reference file: %w", err)
		}
		logrus.WithFields(logrus.Fields{
			"path":    path,
			"entries": len(entries),
		}).Info("imported reference companies")
	}

	table, err := d.LoadTable()
	if err != nil {
		return nil, fmt.Errorf("load reference table: %w", err)
	}
	return table, nil
}
