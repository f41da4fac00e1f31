package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/The-Zed-Team/kriyado-backend/internal/config"
	"github.com/The-Zed-Team/kriyado-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected")
	return nil
}

// Migrate runs AutoMigrate for all domain models. Reference tables come
// first so branch foreign keys have something to point at.
func Migrate() error {
	return DB.AutoMigrate(
		&models.Country{},
		&models.State{},
		&models.District{},
		&models.ShopType{},
		&models.Account{},
		&models.AccountProvider{},
		&models.Admin{},
		&models.AdminRole{},
		&models.AdminMember{},
		&models.Vendor{},
		&models.VendorBranch{},
		&models.VendorBranchProfile{},
		&models.VendorRole{},
		&models.VendorMember{},
		&models.VendorBranchRole{},
		&models.VendorBranchMember{},
		&models.Invitation{},
		&models.Discount{},
		&models.SystemLog{},
	)
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
