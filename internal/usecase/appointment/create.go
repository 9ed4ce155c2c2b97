package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	SalonID uint
	StaffID uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	VariantID uint

	Date   string
	Time   string
	Source domain.Source
	Notes  string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Salão
	// --------------------------------------------------
	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Data / hora no timezone do salão
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(salon.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// 3️⃣ Serviço (duração + preço congelados aqui)
	// --------------------------------------------------
	variant, err := uc.repo.GetVariant(ctx, in.SalonID, in.VariantID)
	if err != nil {
		return nil, httperr.ErrBusiness("variant_not_found")
	}

	end := start.Add(time.Duration(variant.DurationMin) * time.Minute)
	candidate := domain.NewTimeSlot(start, end)

	// --------------------------------------------------
	// 4️⃣ Profissional pertence ao salão?
	// --------------------------------------------------
	if _, err := uc.repo.GetStaff(ctx, in.SalonID, in.StaffID); err != nil {
		return nil, httperr.ErrBusiness("staff_unavailable")
	}

	// --------------------------------------------------
	// 5️⃣ Grade semanal + exceções
	// --------------------------------------------------
	if err := checkStaffAvailable(ctx, uc.repo, in.StaffID, candidate); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Conflito com agendamentos bloqueantes
	// --------------------------------------------------
	if err := checkNoConflict(ctx, uc.repo, in.StaffID, candidate, 0); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7️⃣ Cliente (get or create)
	// --------------------------------------------------
	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.SalonID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 8️⃣ Comissão (só marketplace)
	// --------------------------------------------------
	source := in.Source
	if source == "" {
		source = domain.SourceDirect
	}

	var commission *float64
	if source == domain.SourceMarketplace {
		v := domain.MarketplaceCommission(variant.Price)
		commission = &v
	}

	// --------------------------------------------------
	// 9️⃣ Criação do agendamento (status centralizado)
	// --------------------------------------------------
	ap := &models.Appointment{
		SalonID:          in.SalonID,
		StaffID:          in.StaffID,
		ClientID:         client.ID,
		ServiceVariantID: variant.ID,
		StartTime:        start,
		EndTime:          end,
		Status:           string(domain.InitialStatus()),
		Source:           string(source),
		FinalPrice:       variant.Price,
		Commission:       commission,
		PublicRef:        uuid.NewString(),
		Notes:            in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, httperr.ErrBusiness("slot_conflict")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 🔟 Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.StaffID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
