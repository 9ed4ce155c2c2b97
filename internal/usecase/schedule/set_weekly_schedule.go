package schedule

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type WeekdayConfig struct {
	Weekday    int
	WorkingDay bool
	StartTime  string
	EndTime    string
}

type SetWeeklyScheduleInput struct {
	SalonID uint
	StaffID uint
	Days    []WeekdayConfig
}

// ======================================================
// USE CASE
// ======================================================

// SetWeeklySchedule substitui a grade inteira de uma vez — a única
// escrita suportada. Dia ausente do payload vira "não trabalha";
// patch parcial deixaria dia velho esquecido na grade.
type SetWeeklySchedule struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSetWeeklySchedule(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SetWeeklySchedule {
	return &SetWeeklySchedule{
		repo:  repo,
		audit: audit,
	}
}

func (uc *SetWeeklySchedule) Execute(
	ctx context.Context,
	in SetWeeklyScheduleInput,
) error {

	seen := make(map[int]bool, 7)

	var days []models.WeeklySchedule
	for _, d := range in.Days {
		if d.Weekday < 0 || d.Weekday > 6 || seen[d.Weekday] {
			return httperr.ErrBusiness("invalid_schedule")
		}
		seen[d.Weekday] = true

		if d.WorkingDay {
			// dia de trabalho precisa de janela válida (início < fim)
			start, err1 := time.Parse("15:04", d.StartTime)
			end, err2 := time.Parse("15:04", d.EndTime)
			if err1 != nil || err2 != nil || !start.Before(end) {
				return httperr.ErrBusiness("invalid_schedule")
			}

			days = append(days, models.WeeklySchedule{
				SalonID:    in.SalonID,
				StaffID:    in.StaffID,
				Weekday:    d.Weekday,
				StartTime:  d.StartTime,
				EndTime:    d.EndTime,
				WorkingDay: true,
			})
		} else {
			days = append(days, models.WeeklySchedule{
				SalonID: in.SalonID,
				StaffID: in.StaffID,
				Weekday: d.Weekday,
			})
		}
	}

	if err := uc.repo.ReplaceWeeklySchedule(ctx, in.StaffID, days); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID: in.SalonID,
		UserID:  &in.StaffID,
		Action:  "weekly_schedule_replaced",
		Entity:  "weekly_schedule",
	})

	return nil
}
