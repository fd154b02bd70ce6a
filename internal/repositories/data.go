package repositories

import (
	"context"
	"github.com/maxaizer/gb2260/internal/entities"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Data stores opaque blobs by key, e.g. per-user bot settings between restarts.
type Data struct {
	db *gorm.DB
}

func NewDataRepository(db *gorm.DB) *Data {
	return &Data{db: db}
}

func (repo *Data) Save(ctx context.Context, id string, data []byte) error {
	return repo.db.WithContext(ctx).Save(&entities.ArbitraryData{
		ID:    id,
		Value: data,
	}).Error
}

func (repo *Data) Load(ctx context.Context, id string) ([]byte, error) {
	data := &entities.ArbitraryData{}
	err := repo.db.WithContext(ctx).First(data, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "load %s", id)
	}
	return data.Value, nil
}

func (repo *Data) Remove(ctx context.Context, id string) error {
	return repo.db.WithContext(ctx).Delete(&entities.ArbitraryData{}, "id = ?", id).Error
}
