package appointment

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// fakeRepo implementa domain.Repository em memória para os testes de
// use case. A checagem de conflito do CreateAppointment imita o
// backstop do banco: sob mutex, sobreposição vira erro 23P01.
type fakeRepo struct {
	mu sync.Mutex

	salon    *models.Salon
	staff    *models.User
	variants map[uint]*models.ServiceVariant

	weekly     map[int]*models.WeeklySchedule
	exceptions []models.ScheduleException

	appointments []*models.Appointment
	nextID       uint

	// snapshot opcional para simular corrida entre leitura e update
	endedSnapshot []models.Appointment
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	loc := "America/Sao_Paulo"

	return &fakeRepo{
		salon: &models.Salon{
			ID:                      1,
			Name:                    "Studio Lumière",
			Slug:                    "studio-lumiere",
			Timezone:                loc,
			CancellationWindowHours: 24,
		},
		staff: &models.User{ID: 10, SalonID: 1, Role: "owner"},
		variants: map[uint]*models.ServiceVariant{
			100: {ID: 100, SalonID: 1, Name: "Corte", DurationMin: 60, Price: 100.0, Active: true},
			101: {ID: 101, SalonID: 1, Name: "Escova", DurationMin: 45, Price: 80.0, Active: true},
		},
		weekly: map[int]*models.WeeklySchedule{},
		nextID: 1,
	}
}

// expediente de segunda a sábado, 09:00–17:00
func (f *fakeRepo) workAllWeek() *fakeRepo {
	for wd := 1; wd <= 6; wd++ {
		f.weekly[wd] = &models.WeeklySchedule{
			SalonID:    1,
			StaffID:    10,
			Weekday:    wd,
			StartTime:  "09:00",
			EndTime:    "17:00",
			WorkingDay: true,
		}
	}
	return f
}

func (f *fakeRepo) seedAppointment(ap models.Appointment) *models.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()

	ap.ID = f.nextID
	f.nextID++

	stored := ap
	f.appointments = append(f.appointments, &stored)
	return &stored
}

// -------- Salon / Staff / Variant / Client --------

func (f *fakeRepo) GetSalonByID(_ context.Context, id uint) (*models.Salon, error) {
	if f.salon == nil || f.salon.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.salon, nil
}

func (f *fakeRepo) GetStaff(_ context.Context, salonID, staffID uint) (*models.User, error) {
	if f.staff == nil || f.staff.ID != staffID || f.staff.SalonID != salonID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.staff, nil
}

func (f *fakeRepo) GetVariant(_ context.Context, salonID, variantID uint) (*models.ServiceVariant, error) {
	v, ok := f.variants[variantID]
	if !ok || v.SalonID != salonID {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (f *fakeRepo) GetOrCreateClient(_ context.Context, salonID uint, name, phone, email string) (*models.Client, error) {
	return &models.Client{ID: 55, SalonID: salonID, Name: name, Phone: phone, Email: email}, nil
}

// -------- Appointment --------

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	candidate := domain.NewTimeSlot(ap.StartTime, ap.EndTime)
	for _, existing := range f.appointments {
		if existing.StaffID != ap.StaffID {
			continue
		}
		if !blockingStatus(existing.Status) {
			continue
		}
		if candidate.Overlaps(domain.NewTimeSlot(existing.StartTime, existing.EndTime)) {
			return &pgconn.PgError{Code: "23P01"}
		}
	}

	ap.ID = f.nextID
	f.nextID++
	f.appointments = append(f.appointments, ap)
	return nil
}

func (f *fakeRepo) ListOverlapping(_ context.Context, staffID uint, start, end time.Time, statuses []string, excludeID uint) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	allowed := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		allowed[s] = true
	}

	window := domain.NewTimeSlot(start, end)

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.StaffID != staffID || ap.ID == excludeID || !allowed[ap.Status] {
			continue
		}
		if window.Overlaps(domain.NewTimeSlot(ap.StartTime, ap.EndTime)) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, salonID, appointmentID uint) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ap := range f.appointments {
		if ap.ID == appointmentID && ap.SalonID == salonID {
			copied := *ap
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetAppointmentByPublicRef(_ context.Context, salonID uint, publicRef string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ap := range f.appointments {
		if ap.SalonID == salonID && ap.PublicRef == publicRef {
			copied := *ap
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, existing := range f.appointments {
		if existing.ID == ap.ID {
			copied := *ap
			f.appointments[i] = &copied
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) RescheduleAppointment(ctx context.Context, ap *models.Appointment) error {
	f.mu.Lock()

	candidate := domain.NewTimeSlot(ap.StartTime, ap.EndTime)
	for _, existing := range f.appointments {
		if existing.StaffID != ap.StaffID || existing.ID == ap.ID {
			continue
		}
		if !blockingStatus(existing.Status) {
			continue
		}
		if candidate.Overlaps(domain.NewTimeSlot(existing.StartTime, existing.EndTime)) {
			f.mu.Unlock()
			return &pgconn.PgError{Code: "23P01"}
		}
	}
	f.mu.Unlock()

	return f.UpdateAppointment(ctx, ap)
}

// -------- Auto-completion --------

func (f *fakeRepo) ListEndedBefore(_ context.Context, statuses []string, asOf time.Time) ([]models.Appointment, error) {
	if f.endedSnapshot != nil {
		return f.endedSnapshot, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	allowed := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		allowed[s] = true
	}

	var out []models.Appointment
	for _, ap := range f.appointments {
		if allowed[ap.Status] && !ap.EndTime.After(asOf) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) CompleteIfStatus(_ context.Context, appointmentID uint, fromStatus string, completedAt time.Time, commission *float64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ap := range f.appointments {
		if ap.ID != appointmentID {
			continue
		}
		if ap.Status != fromStatus {
			return false, nil
		}

		ap.Status = "completed"
		ap.CompletedAt = &completedAt
		if commission != nil {
			ap.Commission = commission
		}
		return true, nil
	}
	return false, gorm.ErrRecordNotFound
}

// -------- Availability / Schedule --------

func (f *fakeRepo) GetWeeklySchedule(_ context.Context, staffID uint, weekday int) (*models.WeeklySchedule, error) {
	ws, ok := f.weekly[weekday]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return ws, nil
}

func (f *fakeRepo) ListWeeklySchedule(_ context.Context, staffID uint) ([]models.WeeklySchedule, error) {
	var out []models.WeeklySchedule
	for _, ws := range f.weekly {
		out = append(out, *ws)
	}
	return out, nil
}

func (f *fakeRepo) ReplaceWeeklySchedule(_ context.Context, staffID uint, days []models.WeeklySchedule) error {
	f.weekly = map[int]*models.WeeklySchedule{}
	for i := range days {
		d := days[i]
		f.weekly[d.Weekday] = &d
	}
	return nil
}

func (f *fakeRepo) ListExceptionsOverlapping(_ context.Context, staffID uint, start, end time.Time) ([]models.ScheduleException, error) {
	window := domain.NewTimeSlot(start, end)

	var out []models.ScheduleException
	for _, ex := range f.exceptions {
		if ex.StaffID == staffID && window.Overlaps(domain.NewTimeSlot(ex.StartTime, ex.EndTime)) {
			out = append(out, ex)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListExceptions(_ context.Context, staffID uint) ([]models.ScheduleException, error) {
	return f.exceptions, nil
}

func (f *fakeRepo) CreateException(_ context.Context, ex *models.ScheduleException) error {
	ex.ID = uint(len(f.exceptions) + 1)
	f.exceptions = append(f.exceptions, *ex)
	return nil
}

func (f *fakeRepo) DeleteException(_ context.Context, salonID, staffID, exceptionID uint) error {
	for i, ex := range f.exceptions {
		if ex.ID == exceptionID && ex.SalonID == salonID && ex.StaffID == staffID {
			f.exceptions = append(f.exceptions[:i], f.exceptions[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// -------- Listing --------

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, staffID uint, start, end time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.StaffID == staffID && !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func exceptionFor(staffID, salonID uint, start, end time.Time) models.ScheduleException {
	return models.ScheduleException{
		SalonID:   salonID,
		StaffID:   staffID,
		StartTime: start,
		EndTime:   end,
		Type:      models.ExceptionTypeBlocked,
	}
}

func blockingStatus(s string) bool {
	switch s {
	case "scheduled", "confirmed", "in_progress":
		return true
	}
	return false
}
