package initializers

import (
	"context"
	"time"

	"github.com/Kariqs/decorshop/logger"
	"github.com/Kariqs/decorshop/models"
	"github.com/Kariqs/decorshop/repository"
)

// SyncDatabase migrates the relational schema or creates the Mongo indexes,
// depending on which connection is open.
func SyncDatabase() error {
	if DB != nil {
		if err := DB.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}); err != nil {
			return err
		}
		logger.Log.Info("Database synced successfully.")
		return nil
	}
	if Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := repository.EnsureMongoIndexes(ctx, Mongo); err != nil {
			return err
		}
		logger.Log.Info("Mongo indexes ensured.")
	}
	return nil
}
