package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSalonByID(
	ctx context.Context,
	id uint,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, id).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

// --------------------------------------------------
// Staff
// --------------------------------------------------

func (r *AppointmentGormRepository) GetStaff(
	ctx context.Context,
	salonID uint,
	staffID uint,
) (*models.User, error) {

	var staff models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", staffID, salonID).
		First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

// --------------------------------------------------
// Service Variant
// --------------------------------------------------

func (r *AppointmentGormRepository) GetVariant(
	ctx context.Context,
	salonID uint,
	variantID uint,
) (*models.ServiceVariant, error) {

	var variant models.ServiceVariant
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", variantID, salonID).
		First(&variant).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	salonID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND phone = ?", salonID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		SalonID: salonID,
		Name:    name,
		Phone:   phone,
		Email:   email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// CreateAppointment roda a checagem de conflito e o insert na mesma
// transação, com lock pessimista nas linhas conflitantes. A constraint
// de exclusão do Postgres fica de backstop caso duas transações passem
// pela checagem ao mesmo tempo.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"staff_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
				ap.StaffID,
				domain.BlockingStatusStrings(),
				ap.EndTime,
				ap.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness("slot_conflict")
		}

		return tx.Create(ap).Error
	})
}

func (r *AppointmentGormRepository) ListOverlapping(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
	statuses []string,
	excludeID uint,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Where(
			"staff_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			staffID, statuses, end, start,
		)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	salonID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", appointmentID, salonID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentByPublicRef(
	ctx context.Context,
	salonID uint,
	publicRef string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("ServiceVariant").
		Where("salon_id = ? AND public_ref = ?", salonID, publicRef).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// RescheduleAppointment regrava início/fim com a mesma proteção do
// create, excluindo o próprio agendamento da checagem.
func (r *AppointmentGormRepository) RescheduleAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"staff_id = ? AND id <> ? AND status IN ? AND start_time < ? AND end_time > ?",
				ap.StaffID,
				ap.ID,
				domain.BlockingStatusStrings(),
				ap.EndTime,
				ap.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness("slot_conflict")
		}

		return tx.Save(ap).Error
	})
}

// --------------------------------------------------
// Auto-completion sweep
// --------------------------------------------------

func (r *AppointmentGormRepository) ListEndedBefore(
	ctx context.Context,
	statuses []string,
	asOf time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("status IN ? AND end_time < ?", statuses, asOf).
		Order("end_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// CompleteIfStatus é o update condicional da varredura: só grava se o
// status ainda for o que foi lido. RowsAffected == 0 significa que
// alguém chegou antes (cancelou, concluiu) e a varredura desiste.
func (r *AppointmentGormRepository) CompleteIfStatus(
	ctx context.Context,
	appointmentID uint,
	fromStatus string,
	completedAt time.Time,
	commission *float64,
) (bool, error) {

	updates := map[string]any{
		"status":       string(domain.StatusCompleted),
		"completed_at": completedAt,
	}
	if commission != nil {
		updates["commission"] = *commission
	}

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", appointmentID, fromStatus).
		Updates(updates)

	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}

// --------------------------------------------------
// Weekly Schedule
// --------------------------------------------------

func (r *AppointmentGormRepository) GetWeeklySchedule(
	ctx context.Context,
	staffID uint,
	weekday int,
) (*models.WeeklySchedule, error) {

	var ws models.WeeklySchedule
	if err := r.db.WithContext(ctx).
		Where("staff_id = ? AND weekday = ?", staffID, weekday).
		First(&ws).Error; err != nil {
		return nil, err
	}

	return &ws, nil
}

func (r *AppointmentGormRepository) ListWeeklySchedule(
	ctx context.Context,
	staffID uint,
) ([]models.WeeklySchedule, error) {

	var days []models.WeeklySchedule
	if err := r.db.WithContext(ctx).
		Where("staff_id = ?", staffID).
		Order("weekday ASC").
		Find(&days).Error; err != nil {
		return nil, err
	}

	return days, nil
}

func (r *AppointmentGormRepository) ReplaceWeeklySchedule(
	ctx context.Context,
	staffID uint,
	days []models.WeeklySchedule,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.
			Where("staff_id = ?", staffID).
			Delete(&models.WeeklySchedule{}).Error; err != nil {
			return err
		}

		if len(days) > 0 {
			if err := tx.Create(&days).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// --------------------------------------------------
// Schedule Exceptions
// --------------------------------------------------

func (r *AppointmentGormRepository) ListExceptionsOverlapping(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
) ([]models.ScheduleException, error) {

	var exceptions []models.ScheduleException
	if err := r.db.WithContext(ctx).
		Where(
			"staff_id = ? AND start_time < ? AND end_time > ?",
			staffID, end, start,
		).
		Order("start_time ASC").
		Find(&exceptions).Error; err != nil {
		return nil, err
	}

	return exceptions, nil
}

func (r *AppointmentGormRepository) ListExceptions(
	ctx context.Context,
	staffID uint,
) ([]models.ScheduleException, error) {

	var exceptions []models.ScheduleException
	if err := r.db.WithContext(ctx).
		Where("staff_id = ?", staffID).
		Order("start_time ASC").
		Find(&exceptions).Error; err != nil {
		return nil, err
	}

	return exceptions, nil
}

func (r *AppointmentGormRepository) CreateException(
	ctx context.Context,
	ex *models.ScheduleException,
) error {
	return r.db.WithContext(ctx).Create(ex).Error
}

func (r *AppointmentGormRepository) DeleteException(
	ctx context.Context,
	salonID uint,
	staffID uint,
	exceptionID uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ? AND staff_id = ?", exceptionID, salonID, staffID).
		Delete(&models.ScheduleException{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("ServiceVariant").
		Where(
			"staff_id = ? AND start_time >= ? AND start_time < ?",
			staffID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
