package repositories

import (
	"log"

	"pomotrack-backend/internal/config"
	"pomotrack-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// legacyUsername owns tasks created before tasks were scoped to a user.
const legacyUsername = "legacy"

// Open connects through the given dialector, runs migrations, and adopts
// any pre-ownership task rows. TranslateError turns driver-specific unique
// violations into gorm.ErrDuplicatedKey so duplicate registration is caught
// on the insert itself rather than by a racy pre-SELECT.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&models.User{}, &models.Task{}); err != nil {
		return nil, err
	}
	if err := adoptOrphanTasks(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ConnectDatabase() {
	var dialector gorm.Dialector
	if dsn := config.Envs.DB_URL; dsn != "" {
		dialector = postgres.Open(dsn)
	} else {
		log.Println("DB_URL not set, falling back to SQLite at", config.Envs.SqlitePath)
		dialector = sqlite.Open(config.Envs.SqlitePath)
	}

	db, err := Open(dialector)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	DB = db
	log.Println("Successfully connected to database")
}

// adoptOrphanTasks reassigns tasks left over from a deployment that predates
// per-user ownership (owner_id 0) to a reserved sentinel user, so the
// ownership invariant holds for every row after migration.
func adoptOrphanTasks(db *gorm.DB) error {
	var orphans int64
	if err := db.Model(&models.Task{}).Where("owner_id = 0").Count(&orphans).Error; err != nil {
		return err
	}
	if orphans == 0 {
		return nil
	}

	var owner models.User
	err := db.Where("username = ?", legacyUsername).First(&owner).Error
	if err == gorm.ErrRecordNotFound {
		// Empty hash means no password ever verifies against this account.
		owner = models.User{
			Username:     legacyUsername,
			Email:        legacyUsername + "@localhost",
			PasswordHash: "",
		}
		err = db.Create(&owner).Error
	}
	if err != nil {
		return err
	}

	log.Printf("Adopting %d ownerless task(s) into reserved user %q", orphans, legacyUsername)
	return db.Model(&models.Task{}).Where("owner_id = 0").Update("owner_id", owner.ID).Error
}
