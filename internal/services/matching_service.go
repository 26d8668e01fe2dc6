package services

import (
	"context"
	"strings"

	"github.com/justsurfingit/job-board/internal/models"
	"gorm.io/gorm"
)

// Company names shorter than this match almost any text.
const minMatchableName = 3

type MatcherService struct {
	DB *gorm.DB
}

func NewMatcherService(db *gorm.DB) *MatcherService {
	return &MatcherService{DB: db}
}

// FindCompany matches a free-form company name against stored companies.
// An exact case-insensitive match wins; otherwise the first company whose
// name contains, or is contained in, the candidate.
func (s *MatcherService) FindCompany(ctx context.Context, name string) (*models.Company, error) {
	candidate := strings.ToLower(strings.TrimSpace(name))
	if len(candidate) < minMatchableName {
		return nil, nil
	}

	// TODO: cache the name list once company counts make a full scan noticeable.
	var companies []models.Company
	if err := s.DB.WithContext(ctx).Order("id").Find(&companies).Error; err != nil {
		return nil, err
	}

	for i := range companies {
		if strings.ToLower(companies[i].Name) == candidate {
			return &companies[i], nil
		}
	}
	for i := range companies {
		companyName := strings.ToLower(companies[i].Name)
		if len(companyName) < minMatchableName {
			continue
		}
		if strings.Contains(candidate, companyName) || strings.Contains(companyName, candidate) {
			return &companies[i], nil
		}
	}
	return nil, nil
}
