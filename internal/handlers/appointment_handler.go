package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db             *gorm.DB
	createUC       *ucAppointment.CreateAppointment
	updateStatusUC *ucAppointment.UpdateStatus
	rescheduleUC   *ucAppointment.Reschedule
	availabilityUC *ucAppointment.GetAvailability
	listByDateUC   *ucAppointment.ListAppointmentsByDate
	listByMonthUC  *ucAppointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	db *gorm.DB,
	createUC *ucAppointment.CreateAppointment,
	updateStatusUC *ucAppointment.UpdateStatus,
	rescheduleUC *ucAppointment.Reschedule,
	availabilityUC *ucAppointment.GetAvailability,
	listByDateUC *ucAppointment.ListAppointmentsByDate,
	listByMonthUC *ucAppointment.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:             db,
		createUC:       createUC,
		updateStatusUC: updateStatusUC,
		rescheduleUC:   rescheduleUC,
		availabilityUC: availabilityUC,
		listByDateUC:   listByDateUC,
		listByMonthUC:  listByMonthUC,
	}
}

func (h *AppointmentHandler) loadSalon(c *gin.Context, salonID uint) (*models.Salon, bool) {
	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.Internal(c, "salon_not_found", "Salão não encontrado.")
		return nil, false
	}
	return &salon, true
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	VariantID   uint   `json:"variant_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

type RescheduleRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createUC.Execute(
		c.Request.Context(),
		ucAppointment.CreateAppointmentInput{
			SalonID:     salonID,
			StaffID:     staffID,
			ClientName:  req.ClientName,
			ClientPhone: req.ClientPhone,
			ClientEmail: req.ClientEmail,
			VariantID:   req.VariantID,
			Date:        req.Date,
			Time:        req.Time,
			Source:      domain.SourceDirect,
			Notes:       req.Notes,
		},
	)
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(201, ap)
}

// ======================================================
// UPDATE STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	apID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.updateStatusUC.Execute(
		c.Request.Context(),
		ucAppointment.UpdateStatusInput{
			SalonID:       salonID,
			ActorID:       staffID,
			AppointmentID: uint(apID),
			NewStatus:     domain.Status(req.Status),
			Reason:        req.Reason,
		},
	)
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(200, ap)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	apID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.rescheduleUC.Execute(
		c.Request.Context(),
		ucAppointment.RescheduleInput{
			SalonID:       salonID,
			ActorID:       staffID,
			AppointmentID: uint(apID),
			Date:          req.Date,
			Time:          req.Time,
		},
	)
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(200, ap)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	dateStr := c.Query("date")
	variantIDStr := c.Query("variant_id")

	if dateStr == "" || variantIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data e serviço obrigatórios.")
		return
	}

	variantID, err := strconv.ParseUint(variantIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_variant_id", "Serviço inválido.")
		return
	}

	salon, ok := h.loadSalon(c, salonID)
	if !ok {
		return
	}

	date, err := parseDateInSalon(salon, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.availabilityUC.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			SalonID:   salonID,
			StaffID:   staffID,
			VariantID: uint(variantID),
			Date:      date,
		},
	)
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	salon, ok := h.loadSalon(c, salonID)
	if !ok {
		return
	}

	date, err := parseDateInSalon(salon, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	aps, err := h.listByDateUC.Execute(c.Request.Context(), staffID, salonID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(200, aps)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	aps, err := h.listByMonthUC.Execute(c.Request.Context(), staffID, salonID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(200, gin.H{
		"year":         year,
		"month":        month,
		"appointments": aps,
	})
}
