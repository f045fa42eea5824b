package database

import (
	"log"

	"github.com/ahmad435-vlaygo/adminValygobackend/models"
	"github.com/ahmad435-vlaygo/adminValygobackend/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate models
	err = db.AutoMigrate(
		&models.User{},
		&models.Transaction{},
		&models.Subscription{},
		&models.KYC{},
		&models.KYB{},
		&models.AdminUser{},
		&models.SalesTeamUser{},
		&models.SalesReferralCode{},
		&models.SalesReferralSignup{},
		&models.Meeting{},
		&models.AdminAuditLog{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// EnsureAdmin seeds a super_admin principal when none exists for the given
// email. Used at startup so a fresh deployment has a usable login. Reports
// whether a new account was created.
func EnsureAdmin(db *gorm.DB, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}
	email = utils.NormalizeEmail(email)

	var existing models.AdminUser
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return false, nil
	} else if err != gorm.ErrRecordNotFound {
		return false, err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return false, err
	}

	admin := models.AdminUser{
		Name:        "Administrator",
		Email:       email,
		Password:    hashed,
		Role:        models.RoleSuperAdmin,
		Status:      "active",
		Permissions: models.StringList{"all"},
	}
	if err := db.Create(&admin).Error; err != nil {
		return false, err
	}

	log.Printf("Seeded super_admin account: %s", email)
	return true, nil
}
