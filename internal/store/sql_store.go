package store

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/evyataryagoni/countryselect/internal/country"
	"github.com/evyataryagoni/countryselect/internal/locales"
	"github.com/samber/lo"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CountryTranslationModel is the GORM model for the country_translations table
// One row per (locale, code) pair
type CountryTranslationModel struct {
	Locale string `gorm:"column:locale;primaryKey;size:35"`
	Code   string `gorm:"column:code;primaryKey;size:2"`
	Name   string `gorm:"column:name;size:255;not null"`
}

// TableName specifies the table name for GORM
// By default, GORM would pluralize to "country_translation_models"
func (CountryTranslationModel) TableName() string {
	return "country_translations"
}

// saveBatchSize caps the rows of one INSERT statement
const saveBatchSize = 100

// SQLStore implements Store interface on any GORM dialect
// NewMySQLStore and NewSQLiteStore pick the driver
type SQLStore struct {
	db *gorm.DB
}

// NewMySQLStore creates a new MySQL-backed store
//
// Parameters:
//   - dsn: Data Source Name (connection string)
//     Format: user:password@tcp(host:port)/dbname?parseTime=true
//     Example: root:password@tcp(localhost:3306)/countries?parseTime=true&charset=utf8mb4
func NewMySQLStore(dsn string) (*SQLStore, error) {
	return openSQLStore(mysql.Open(dsn), "MySQL")
}

// NewSQLiteStore creates a new SQLite-backed store
// Useful for single-node deployments that still want the data outside the binary
func NewSQLiteStore(path string) (*SQLStore, error) {
	return openSQLStore(sqlite.Open(path), "SQLite")
}

// NewSQLStoreFromDB wraps an already opened GORM handle
func NewSQLStoreFromDB(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

func openSQLStore(dialector gorm.Dialector, name string) (*SQLStore, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Disable query logging (set to Info for debugging)
	}

	db, err := gorm.Open(dialector, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s with GORM: %w", name, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping %s database: %w", name, err)
	}

	return &SQLStore{db: db}, nil
}

// Migrate creates or updates the country_translations table
func (s *SQLStore) Migrate() error {
	if err := s.db.AutoMigrate(&CountryTranslationModel{}); err != nil {
		return fmt.Errorf("failed to migrate country_translations: %w", err)
	}
	return nil
}

// Lookup returns the name of code in locale
//
// GORM query: SELECT * FROM country_translations WHERE locale = ? AND code = ? LIMIT 1
func (s *SQLStore) Lookup(locale, code string) (string, error) {
	code = country.CanonicalCode(code)

	var record CountryTranslationModel
	result := s.db.Where("locale = ? AND code = ?", locale, code).Take(&record)
	if result.Error == nil {
		return record.Name, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("database query failed: %w", result.Error)
	}

	// No row: find out whether the locale exists at all
	known, err := s.hasLocale(locale)
	if err != nil {
		return "", err
	}
	if !known {
		return "", fmt.Errorf("%w: %s", country.ErrMissingLocale, locale)
	}
	return "", fmt.Errorf("%w: %s/%s", country.ErrNotFound, locale, code)
}

func (s *SQLStore) hasLocale(locale string) (bool, error) {
	var count int64
	if err := s.db.Model(&CountryTranslationModel{}).Where("locale = ?", locale).Count(&count).Error; err != nil {
		return false, fmt.Errorf("database query failed: %w", err)
	}
	return count > 0, nil
}

// AllCodes returns the codes of a locale in ascending order
func (s *SQLStore) AllCodes(locale string) ([]string, error) {
	var codes []string
	err := s.db.Model(&CountryTranslationModel{}).
		Where("locale = ?", locale).
		Order("code").
		Pluck("code", &codes).Error
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	if len(codes) == 0 {
		return nil, fmt.Errorf("%w: %s", country.ErrMissingLocale, locale)
	}
	return codes, nil
}

// Table returns every translation of a locale
func (s *SQLStore) Table(locale string) (map[string]string, error) {
	var records []CountryTranslationModel
	if err := s.db.Where("locale = ?", locale).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", country.ErrMissingLocale, locale)
	}

	countries := make(map[string]string, len(records))
	for _, r := range records {
		countries[r.Code] = r.Name
	}
	return countries, nil
}

// Locales lists the distinct locales in the table
func (s *SQLStore) Locales() ([]string, error) {
	var names []string
	err := s.db.Model(&CountryTranslationModel{}).
		Distinct("locale").
		Pluck("locale", &names).Error
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// SaveTable replaces the translations of one locale
// Rows of the locale are deleted and the new table inserted in one transaction,
// so codes dropped from the table do not survive the reload
func (s *SQLStore) SaveTable(locale string, countries map[string]string) error {
	if len(countries) == 0 {
		return fmt.Errorf("refusing to store empty table for locale %s", locale)
	}

	records := make([]CountryTranslationModel, 0, len(countries))
	for code, name := range countries {
		records = append(records, CountryTranslationModel{
			Locale: locale,
			Code:   country.CanonicalCode(code),
			Name:   name,
		})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Code < records[j].Code })

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("locale = ?", locale).Delete(&CountryTranslationModel{}).Error; err != nil {
			return err
		}
		for _, batch := range lo.Chunk(records, saveBatchSize) {
			if err := tx.Create(&batch).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save locale %s: %w", locale, err)
	}
	return nil
}

// LoadTable replaces every locale of a translation table
// Returns the number of translations written
func (s *SQLStore) LoadTable(table locales.Table) (int, error) {
	count := 0
	for _, locale := range table.Locales() {
		countries, _ := table.Countries(locale)
		if err := s.SaveTable(locale, countries); err != nil {
			return count, err
		}
		count += len(countries)
	}
	return count, nil
}

// IsEmpty checks if the translations table has any rows
func (s *SQLStore) IsEmpty() (bool, error) {
	var n int64
	if err := s.db.Model(&CountryTranslationModel{}).Count(&n).Error; err != nil {
		return false, fmt.Errorf("database query failed: %w", err)
	}
	return n == 0, nil
}

// Close closes the database connection
// Should be called when the application shuts down
func (s *SQLStore) Close() error {
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
