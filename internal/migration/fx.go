package migration

import (
	"github.com/riverasoft/reservas/internal/booking/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB) error {
		// The versioned SQL targets postgres; the sqlite dev path derives the
		// schema from the model instead.
		if conn.Dialector.Name() != "postgres" {
			return conn.AutoMigrate(&domain.Booking{})
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
