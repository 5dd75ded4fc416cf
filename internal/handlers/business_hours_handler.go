package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mshservicos/hidro-scheduler/internal/models"
)

type BusinessHoursHandler struct {
	db *gorm.DB
}

func NewBusinessHoursHandler(db *gorm.DB) *BusinessHoursHandler {
	return &BusinessHoursHandler{db: db}
}

type BusinessDayConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	Active    bool   `json:"active"`
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
}

type BusinessHoursUpdateRequest struct {
	Days []BusinessDayConfig `json:"days" binding:"required"`
}

type businessDayView struct {
	Weekday   int    `json:"weekday"`
	Active    bool   `json:"active"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (h *BusinessHoursHandler) Get(c *gin.Context) {
	var rows []models.BusinessHours
	if err := h.db.Order("weekday ASC").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_business_hours"})
		return
	}

	days := make([]businessDayView, 0, len(rows))
	for _, row := range rows {
		days = append(days, businessDayView{
			Weekday:   row.Weekday,
			Active:    row.Active,
			StartTime: minutesToHHMM(row.StartMin),
			EndTime:   minutesToHHMM(row.EndMin),
		})
	}

	c.JSON(http.StatusOK, days)
}

func (h *BusinessHoursHandler) Update(c *gin.Context) {
	var req BusinessHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var toCreate []models.BusinessHours
	for _, d := range req.Days {
		row := models.BusinessHours{
			Weekday: d.Weekday,
			Active:  d.Active,
		}

		if d.Active {
			startMin, err := hhmmToMinutes(d.StartTime)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_start_time"})
				return
			}
			endMin, err := hhmmToMinutes(d.EndTime)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_end_time"})
				return
			}
			// Janela invertida é corrigida, não rejeitada.
			if endMin <= startMin {
				endMin = startMin + 60
				if endMin > 1440 {
					endMin = 1440
				}
			}

			row.StartMin = startMin
			row.EndMin = endMin
		}

		toCreate = append(toCreate, row)
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.BusinessHours{}).Error; err != nil {
			return err
		}
		if len(toCreate) > 0 {
			return tx.Create(&toCreate).Error
		}
		return nil
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_business_hours"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
