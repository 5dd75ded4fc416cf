package db

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mshservicos/hidro-scheduler/internal/models"
)

// Seed garante o admin inicial, o catálogo básico e o expediente padrão
// (segunda a sexta, 08:00–18:00). Idempotente: roda em todo boot.
func Seed(db *gorm.DB) {
	seedAdmin(db)
	seedServices(db)
	seedBusinessHours(db)
}

func seedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("seed: failed to hash admin password: %v", err)
		return
	}

	admin := models.User{
		Name:         "MSH Admin",
		Email:        "admin@msh.com",
		PasswordHash: string(hashed),
		Role:         "ADMIN",
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("seed: failed to create admin: %v", err)
	}
}

func seedServices(db *gorm.DB) {
	services := []models.Service{
		{
			Name:           "Visita técnica",
			Description:    "Diagnóstico e avaliação no local",
			DurationMin:    60,
			BasePriceCents: 15000,
			Active:         true,
		},
		{
			Name:           "Instalação hidráulica",
			Description:    "Instalação e adequações",
			DurationMin:    120,
			BasePriceCents: 35000,
			Active:         true,
		},
		{
			Name:           "Manutenção/Conserto",
			Description:    "Reparo em vazamentos e troca de peças",
			DurationMin:    90,
			BasePriceCents: 25000,
			Active:         true,
		},
	}

	for _, s := range services {
		db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&s)
	}
}

func seedBusinessHours(db *gorm.DB) {
	for weekday := 1; weekday <= 5; weekday++ {
		row := models.BusinessHours{
			Weekday:  weekday,
			Active:   true,
			StartMin: 8 * 60,
			EndMin:   18 * 60,
		}
		db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "weekday"}},
			DoNothing: true,
		}).Create(&row)
	}
}
