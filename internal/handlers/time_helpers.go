package handlers

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const defaultTimezone = "America/Sao_Paulo"

// resolve o timezone oficial do salão
func locationFromSalon(salon *models.Salon) *time.Location {
	if salon != nil && salon.Timezone != "" {
		if loc, err := time.LoadLocation(salon.Timezone); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

func parseDateInSalon(salon *models.Salon, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromSalon(salon),
	)
}
