package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Salon --------
	GetSalonByID(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	// -------- Staff --------
	GetStaff(
		ctx context.Context,
		salonID uint,
		staffID uint,
	) (*models.User, error)

	// -------- Service Variant --------
	GetVariant(
		ctx context.Context,
		salonID uint,
		variantID uint,
	) (*models.ServiceVariant, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		salonID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Appointment (create / conflict) --------
	// CreateAppointment roda checagem de conflito + insert na mesma
	// transação; a constraint de exclusão do banco é o backstop contra
	// corridas check-then-act e volta como slot_conflict.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListOverlapping(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
		statuses []string,
		excludeID uint,
	) ([]models.Appointment, error)

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		salonID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	GetAppointmentByPublicRef(
		ctx context.Context,
		salonID uint,
		publicRef string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// RescheduleAppointment regrava início/fim dentro de uma transação
	// com a mesma checagem de conflito do create (excluindo o próprio id).
	RescheduleAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Auto-completion sweep --------
	ListEndedBefore(
		ctx context.Context,
		statuses []string,
		asOf time.Time,
	) ([]models.Appointment, error)

	// CompleteIfStatus só grava se o status ainda for o lido, para a
	// varredura nunca sobrescrever um status já terminal.
	CompleteIfStatus(
		ctx context.Context,
		appointmentID uint,
		fromStatus string,
		completedAt time.Time,
		commission *float64,
	) (bool, error)

	// -------- Availability --------
	GetWeeklySchedule(
		ctx context.Context,
		staffID uint,
		weekday int,
	) (*models.WeeklySchedule, error)

	ListWeeklySchedule(
		ctx context.Context,
		staffID uint,
	) ([]models.WeeklySchedule, error)

	ReplaceWeeklySchedule(
		ctx context.Context,
		staffID uint,
		days []models.WeeklySchedule,
	) error

	// -------- Schedule Exceptions --------
	ListExceptionsOverlapping(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.ScheduleException, error)

	ListExceptions(
		ctx context.Context,
		staffID uint,
	) ([]models.ScheduleException, error)

	CreateException(
		ctx context.Context,
		ex *models.ScheduleException,
	) error

	DeleteException(
		ctx context.Context,
		salonID uint,
		staffID uint,
		exceptionID uint,
	) error

	// -------- Listing --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
