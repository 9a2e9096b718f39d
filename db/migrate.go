package db

import (
	"github.com/meinhoongagan/servicehub/logger"
	"github.com/meinhoongagan/servicehub/models"
	"gorm.io/gorm"
)

func Migrate(gdb *gorm.DB) error {
	err := gdb.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Service{},
		&models.Employee{},
		&models.Appointment{},
		&models.Review{},
		&models.Ticket{},
		&models.Message{},
		&models.FileRemoval{},
	)
	if err != nil {
		return err
	}

	logger.Log.Info("migrations applied")
	return nil
}
