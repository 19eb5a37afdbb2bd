package database

import (
	"elena-license-engine/internal/model"
	"log"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB opens (or creates) the sqlite database under dataDir and
// migrates the schema. The durable key-value records and the
// activation audit trail live in the same file.
func InitDB(dataDir string) {
	var err error
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatal("failed to create data directory:", err)
	}

	dbPath := filepath.Join(dataDir, "elena.db")
	DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to open database:", err)
	}

	err = DB.AutoMigrate(&model.KVRecord{}, &model.ActivationLog{})
	if err != nil {
		log.Fatal("failed to migrate database:", err)
	}
}
