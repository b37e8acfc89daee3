package database

import (
	"fmt"
	"log/slog"

	"github.com/elbenfreund/armyimp/internal/database/models"
	"github.com/elbenfreund/armyimp/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Connect(cfg *config.DatabaseConfig, log *slog.Logger) (*gorm.DB, error) {
	gormLogger := logger.Default.LogMode(logger.Warn)
	if cfg.SSLMode == "disable" {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying db: %w", err)
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info("connected to database", "host", cfg.Host, "database", cfg.Name)

	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Organization{},
		&models.Item{},
		&models.OrganizationItem{},
		&models.WeaponProfile{},
		&models.ModelProfile{},
		&models.UnitAbility{},
		&models.UnitKeyword{},
		&models.FactionKeyword{},
		&models.WargearList{},
		&models.Unit{},
		&models.UnitModel{},
		&models.ItemSlot{},
		&models.Army{},
		&models.ArmyUnit{},
		&models.ArmyModel{},
		&models.ArmyModelItem{},
	)
}
