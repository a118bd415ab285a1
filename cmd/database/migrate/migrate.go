package migration

import (
	"foodgram-backend/entities"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

// Models lists every table in dependency order.
func Models() []any {
	return []any{
		&entities.User{},
		&entities.Tag{},
		&entities.Ingredient{},
		&entities.Recipe{},
		&entities.RecipeTag{},
		&entities.RecipeIngredient{},
		&entities.RecipeUser{},
		&entities.Subscription{},
	}
}

func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
			log.Warnf("uuid-ossp extension: %v", err)
		}
	}

	for _, model := range Models() {
		if err := db.AutoMigrate(model); err != nil {
			log.Errorf("Error migrating %T: %v", model, err)
			return err
		}
	}

	log.Info("Database migration complete")
	return nil
}
