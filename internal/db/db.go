package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mshservicos/hidro-scheduler/internal/config"
	"github.com/mshservicos/hidro-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Service{},
		&models.BusinessHours{},
		&models.TimeOff{},
		&models.Appointment{},
		&models.WorkOrder{},
		&models.WorkOrderPhoto{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Guarda de não-sobreposição no próprio banco: de duas reservas
	// concorrentes para o mesmo horário, a segunda leva 23P01 no INSERT.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        DO $$ BEGIN
            ALTER TABLE appointments
                ADD CONSTRAINT appointments_no_overlap
                EXCLUDE USING gist (
                    tsrange(start_at, end_at) WITH &&
                ) WHERE (status <> 'CANCELED');
        EXCEPTION
            WHEN duplicate_table THEN NULL;
            WHEN duplicate_object THEN NULL;
        END $$;
    `)

	return db
}
