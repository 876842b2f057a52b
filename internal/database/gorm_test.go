package database

import (
	"testing"

	"media-feed/internal/config"
	"media-feed/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDuplicateEmailIsTranslated(t *testing.T) {
	db, err := OpenMemory()
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.User{ID: "u1", Email: "a@x.io", PasswordHash: "h", IsActive: true}).Error)
	err = db.Create(&models.User{ID: "u2", Email: "a@x.io", PasswordHash: "h", IsActive: true}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestInactiveUserIsStoredInactive(t *testing.T) {
	db, err := OpenMemory()
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.User{ID: "u1", Email: "gone@x.io", PasswordHash: "h", IsActive: false}).Error)

	var got models.User
	require.NoError(t, db.Take(&got, "id = ?", "u1").Error)
	assert.False(t, got.IsActive)
}

func TestOpenFileDatabaseTranslatesErrors(t *testing.T) {
	cfg := &config.Config{DBDriver: "sqlite", DBPath: t.TempDir() + "/feed.db", Env: "prod"}
	db, err := Open(cfg)
	require.NoError(t, err)

	post := &models.Post{ID: models.NewPostID(), UserID: "u1", URL: "https://cdn/a.jpg", FileType: models.KindImage}
	require.NoError(t, db.Create(post).Error)
	assert.ErrorIs(t, db.Create(post).Error, gorm.ErrDuplicatedKey)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "mysql"})
	assert.Error(t, err)
}
