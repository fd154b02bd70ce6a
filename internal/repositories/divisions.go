package repositories

import (
	"context"
	"github.com/maxaizer/gb2260/internal/entities"
	"gorm.io/gorm"
)

type Divisions struct {
	db *gorm.DB
}

func NewDivisionsRepository(db *gorm.DB) *Divisions {
	return &Divisions{db: db}
}

// GetCodesByName returns codes of divisions whose name matches exactly, ignoring whitespace.
func (repo *Divisions) GetCodesByName(ctx context.Context, source, revision, name string) ([]string, error) {

	var codes []string
	name = entities.NormalizeDivisionName(name)
	if err := repo.db.WithContext(ctx).Model(&entities.Division{}).
		Where("source = ? AND revision = ? AND normalized_name = ?", source, revision, name).
		Order("code").
		Pluck("code", &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

func (repo *Divisions) Count(ctx context.Context) (int64, error) {

	var count int64
	if err := repo.db.WithContext(ctx).Model(&entities.Division{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
