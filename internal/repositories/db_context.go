package repositories

import (
	"fmt"
	"github.com/glebarez/sqlite"
	"github.com/maxaizer/gb2260/internal/entities"
	"github.com/maxaizer/gb2260/internal/metrics"
	"github.com/maxaizer/gb2260/pkg/gb2260"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"time"
)

const mirrorBatchSize = 500

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate(store *gb2260.Store) error {
	err := c.DB.AutoMigrate(entities.Division{})
	if err != nil {
		return fmt.Errorf("failed to migrate Division entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.ArbitraryData{})
	if err != nil {
		return fmt.Errorf("failed to migrate ArbitraryData entity: %w", err)
	}

	var divisionsCount int64
	if err = c.DB.Model(entities.Division{}).Count(&divisionsCount).Error; err != nil {
		return fmt.Errorf("failed to count divisions: %w", err)
	}

	if divisionsCount == 0 {
		if err = c.PopulateDivisions(store); err != nil {
			return fmt.Errorf("failed to populate divisions: %w", err)
		}
	} else {
		metrics.MirroredDivisions.Set(float64(divisionsCount))
	}

	return nil
}

// PopulateDivisions copies every row of every revision of the store into the divisions table.
func (c *DbContext) PopulateDivisions(store *gb2260.Store) error {
	start := time.Now()

	var divisions []entities.Division
	for _, source := range []gb2260.Source{gb2260.GB, gb2260.Stats} {
		for _, revision := range store.Revisions(source) {
			table, err := store.Table(source, revision)
			if err != nil {
				return err
			}
			for _, entry := range table.Entries() {
				divisions = append(divisions, entities.NewDivision(gb2260.Division{
					Source:   source,
					Revision: revision,
					Code:     entry.Code,
					Name:     entry.Name,
				}))
			}
		}
	}

	if len(divisions) == 0 {
		return nil
	}

	if err := c.DB.CreateInBatches(&divisions, mirrorBatchSize).Error; err != nil {
		return fmt.Errorf("failed to create divisions in the database: %w", err)
	}

	metrics.MirrorDuration.Observe(time.Since(start).Seconds())
	metrics.MirroredDivisions.Set(float64(len(divisions)))
	log.Infof("mirrored %v divisions in %v", len(divisions), time.Since(start))
	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
