package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ahmad435-vlaygo/adminValygobackend/models"
	"github.com/ahmad435-vlaygo/adminValygobackend/utils"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Initialize(":memory:")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

func TestInitializeMigratesSchema(t *testing.T) {
	db := openTestDB(t)

	for _, model := range []interface{}{
		&models.User{}, &models.Transaction{}, &models.Subscription{},
		&models.KYC{}, &models.KYB{}, &models.AdminUser{},
		&models.SalesTeamUser{}, &models.SalesReferralCode{},
		&models.SalesReferralSignup{}, &models.Meeting{}, &models.AdminAuditLog{},
	} {
		assert.True(t, db.Migrator().HasTable(model), "missing table for %T", model)
	}
}

func TestEnsureAdmin(t *testing.T) {
	db := openTestDB(t)

	created, err := EnsureAdmin(db, "Boot@Valygo.IO", "bootstrap-secret")
	require.NoError(t, err)
	assert.True(t, created)

	var admin models.AdminUser
	require.NoError(t, db.Where("email = ?", "boot@valygo.io").First(&admin).Error)
	assert.Equal(t, models.RoleSuperAdmin, admin.Role)
	assert.True(t, utils.CheckPasswordHash("bootstrap-secret", admin.Password))

	// Running again against the same email is a no-op, not a duplicate.
	created, err = EnsureAdmin(db, "boot@valygo.io", "different-secret")
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, db.Model(&models.AdminUser{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var unchanged models.AdminUser
	require.NoError(t, db.Where("email = ?", "boot@valygo.io").First(&unchanged).Error)
	assert.True(t, utils.CheckPasswordHash("bootstrap-secret", unchanged.Password))
}

func TestEnsureAdminSkipsEmptyCredentials(t *testing.T) {
	db := openTestDB(t)

	created, err := EnsureAdmin(db, "", "")
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, db.Model(&models.AdminUser{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
