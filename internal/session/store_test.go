package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupStore creates a store over a fresh in-memory database.
func setupStore(t *testing.T) *SQLStore {
	// Use a new, non-shared in-memory database for each test to ensure isolation.
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(&Credential{})
	assert.NoError(t, err)

	return NewSQLStore(db)
}

func TestStore_ReadEmpty(t *testing.T) {
	store := setupStore(t)

	token, err := store.Read()
	assert.NoError(t, err)
	assert.Equal(t, "", token)
}

func TestStore_SaveRead(t *testing.T) {
	store := setupStore(t)

	err := store.Save("abc")
	assert.NoError(t, err)

	token, err := store.Read()
	assert.NoError(t, err)
	assert.Equal(t, "abc", token)
}

func TestStore_SaveOverwrites(t *testing.T) {
	store := setupStore(t)

	assert.NoError(t, store.Save("first"))
	assert.NoError(t, store.Save("second"))

	token, err := store.Read()
	assert.NoError(t, err)
	assert.Equal(t, "second", token)
}

func TestStore_Clear(t *testing.T) {
	store := setupStore(t)

	assert.NoError(t, store.Save("abc"))
	assert.NoError(t, store.Clear())

	token, err := store.Read()
	assert.NoError(t, err)
	assert.Equal(t, "", token)
}

func TestStore_ClearEmpty(t *testing.T) {
	store := setupStore(t)

	// Clearing an empty store must not fail.
	assert.NoError(t, store.Clear())
}

func TestStore_SaveAfterClear(t *testing.T) {
	store := setupStore(t)

	assert.NoError(t, store.Save("old"))
	assert.NoError(t, store.Clear())
	assert.NoError(t, store.Save("new"))

	token, err := store.Read()
	assert.NoError(t, err)
	assert.Equal(t, "new", token)
}
