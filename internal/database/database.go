package database

import (
	"context"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hadithapp/hadith/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the corpus database (narrations and narrators).
// Missing tables are created so that a fresh file can be filled by the CSV importer.
func NewDatabase(dbPath string) (*Database, error) {
	return open(dbPath, "corpus", &entities.Narration{}, &entities.Narrator{})
}

// NewUserDatabase opens the per-user database holding settings (including the
// saved set blob) and audit events.
func NewUserDatabase(dbPath string) (*Database, error) {
	return open(dbPath, "user", &entities.Setting{}, &entities.AuditEvent{})
}

func open(dbPath, kind string, models ...any) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", kind, err)
	}

	if err := db.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("failed to migrate %s database: %w", kind, err)
	}

	log.Printf("%s database initialized successfully at %s", kind, dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the underlying connection is usable.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (d *Database) GetStats() (totalNarrations int64, totalNarrators int64, err error) {
	err = d.DB.Model(&entities.Narration{}).Count(&totalNarrations).Error
	if err != nil {
		return
	}
	err = d.DB.Model(&entities.Narrator{}).Count(&totalNarrators).Error
	return
}

// DefaultBatchSize is the number of rows inserted per statement by ReplaceCorpus.
const DefaultBatchSize = 500

// ReplaceCorpus swaps the corpus tables' contents in one transaction.
// Either slice may be nil to leave that table untouched.
func (d *Database) ReplaceCorpus(ctx context.Context, narrations []entities.Narration, narrators []entities.Narrator, batchSize int) error {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if narrations != nil {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entities.Narration{}).Error; err != nil {
				return fmt.Errorf("failed to clear narrations: %w", err)
			}
			if len(narrations) > 0 {
				if err := tx.CreateInBatches(narrations, batchSize).Error; err != nil {
					return fmt.Errorf("failed to insert narrations: %w", err)
				}
			}
		}

		if narrators != nil {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entities.Narrator{}).Error; err != nil {
				return fmt.Errorf("failed to clear narrators: %w", err)
			}
			if len(narrators) > 0 {
				if err := tx.CreateInBatches(narrators, batchSize).Error; err != nil {
					return fmt.Errorf("failed to insert narrators: %w", err)
				}
			}
		}
		return nil
	})
}
