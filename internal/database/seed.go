package database

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/justsurfingit/job-board/internal/models"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed seed.yaml
var defaultSeed []byte

type SeedRole struct {
	Name        string   `yaml:"name"`
	Permissions []string `yaml:"permissions"`
}

// SeedData is the reference data every installation starts with.
type SeedData struct {
	Countries         []string   `yaml:"countries"`
	Levels            []string   `yaml:"levels"`
	EmploymentFormats []string   `yaml:"employment_formats"`
	WorkFormats       []string   `yaml:"work_formats"`
	ResponseStatuses  []string   `yaml:"response_statuses"`
	Roles             []SeedRole `yaml:"roles"`
}

// LoadSeed parses the file at path, or the embedded defaults when path is empty.
func LoadSeed(path string) (*SeedData, error) {
	raw := defaultSeed
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		raw = b
	}

	var data SeedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &data, nil
}

// Seed inserts missing reference rows. Existing rows are left untouched, so it
// is safe to run on every start.
func Seed(db *gorm.DB, data *SeedData) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, name := range data.Countries {
			if err := tx.Where(models.Country{Name: name}).FirstOrCreate(&models.Country{}).Error; err != nil {
				return fmt.Errorf("country %q: %w", name, err)
			}
		}
		for _, name := range data.Levels {
			if err := tx.Where(models.Level{Name: name}).FirstOrCreate(&models.Level{}).Error; err != nil {
				return fmt.Errorf("level %q: %w", name, err)
			}
		}
		for _, name := range data.EmploymentFormats {
			if err := tx.Where(models.EmploymentFormat{Name: name}).FirstOrCreate(&models.EmploymentFormat{}).Error; err != nil {
				return fmt.Errorf("employment format %q: %w", name, err)
			}
		}
		for _, name := range data.WorkFormats {
			if err := tx.Where(models.WorkFormat{Name: name}).FirstOrCreate(&models.WorkFormat{}).Error; err != nil {
				return fmt.Errorf("work format %q: %w", name, err)
			}
		}
		for _, name := range data.ResponseStatuses {
			if err := tx.Where(models.ResponseStatus{Name: name}).FirstOrCreate(&models.ResponseStatus{}).Error; err != nil {
				return fmt.Errorf("response status %q: %w", name, err)
			}
		}

		for _, r := range data.Roles {
			perms := make([]models.Permission, 0, len(r.Permissions))
			for _, codename := range r.Permissions {
				var p models.Permission
				if err := tx.Where(models.Permission{Codename: codename}).FirstOrCreate(&p).Error; err != nil {
					return fmt.Errorf("permission %q: %w", codename, err)
				}
				perms = append(perms, p)
			}

			var role models.Role
			if err := tx.Where(models.Role{Name: r.Name}).FirstOrCreate(&role).Error; err != nil {
				return fmt.Errorf("role %q: %w", r.Name, err)
			}
			if err := tx.Model(&role).Association("Permissions").Replace(perms); err != nil {
				return fmt.Errorf("role %q permissions: %w", r.Name, err)
			}
		}

		logrus.WithFields(logrus.Fields{
			"countries": len(data.Countries),
			"levels":    len(data.Levels),
			"roles":     len(data.Roles),
		}).Info("reference data seeded")
		return nil
	})
}
