package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER (MARKETPLACE / PÚBLICO)
////////////////////////////////////////////////////////

type PublicHandler struct {
	db             *gorm.DB
	createUC       *ucAppointment.CreateAppointment
	updateStatusUC *ucAppointment.UpdateStatus
	availabilityUC *ucAppointment.GetAvailability
}

func NewPublicHandler(
	db *gorm.DB,
	createUC *ucAppointment.CreateAppointment,
	updateStatusUC *ucAppointment.UpdateStatus,
	availabilityUC *ucAppointment.GetAvailability,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		createUC:       createUC,
		updateStatusUC: updateStatusUC,
		availabilityUC: availabilityUC,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	VariantID   uint   `json:"variant_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
}

type PublicCancelRequest struct {
	Reason string `json:"reason"`
}

func (h *PublicHandler) salonBySlug(c *gin.Context) (*models.Salon, bool) {
	slug := c.Param("slug")

	var salon models.Salon
	if err := h.db.Where("slug = ?", slug).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return nil, false
	}
	return &salon, true
}

func (h *PublicHandler) ownerOf(c *gin.Context, salon *models.Salon) (*models.User, bool) {
	var staff models.User
	if err := h.db.
		Where("salon_id = ? AND role = ?", salon.ID, "owner").
		First(&staff).Error; err != nil {

		httperr.BadRequest(c, "staff_not_found", "Profissional não encontrado.")
		return nil, false
	}
	return &staff, true
}

////////////////////////////////////////////////////////
// VARIANTS (CATÁLOGO PÚBLICO)
////////////////////////////////////////////////////////

func (h *PublicHandler) ListVariants(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("salon_id = ? AND active = true", salon.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var variants []models.ServiceVariant
	if err := q.Order("id ASC").Find(&variants).Error; err != nil {
		httperr.Internal(c, "failed_to_list_variants", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"salon":    salon,
		"variants": variants,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY (REUSO TOTAL DO USE CASE)
////////////////////////////////////////////////////////

func (h *PublicHandler) AvailabilityForClient(c *gin.Context) {
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

	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	staff, ok := h.ownerOf(c, salon)
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
			SalonID:   salon.ID,
			StaffID:   staff.ID,
			VariantID: uint(variantID),
			Date:      date,
		},
	)
	if err != nil {
		if httperr.IsBusiness(err, "variant_not_found") {
			httperr.BadRequest(c, "variant_not_found", "Serviço inválido.")
			return
		}

		httperr.Internal(c, "availability_failed", "Erro ao calcular horários.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT (MARKETPLACE → REUSA PRIVATE)
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	staff, ok := h.ownerOf(c, salon)
	if !ok {
		return
	}

	ap, err := h.createUC.Execute(
		c.Request.Context(),
		ucAppointment.CreateAppointmentInput{
			SalonID:     salon.ID,
			StaffID:     staff.ID,
			ClientName:  req.ClientName,
			ClientPhone: req.ClientPhone,
			ClientEmail: req.ClientEmail,
			VariantID:   req.VariantID,
			Date:        req.Date,
			Time:        req.Time,
			Source:      domain.SourceMarketplace,
			Notes:       req.Notes,
		},
	)
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"public_ref":  ap.PublicRef,
		"status":      ap.Status,
		"start_time":  ap.StartTime,
		"end_time":    ap.EndTime,
		"final_price": ap.FinalPrice,
	})
}

////////////////////////////////////////////////////////
// LOOKUP / CANCEL POR PUBLIC REF
////////////////////////////////////////////////////////

func (h *PublicHandler) GetAppointment(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	ref := c.Param("ref")

	var ap models.Appointment
	if err := h.db.
		Where("salon_id = ? AND public_ref = ?", salon.ID, ref).
		First(&ap).Error; err != nil {

		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"public_ref":  ap.PublicRef,
		"status":      ap.Status,
		"start_time":  ap.StartTime,
		"end_time":    ap.EndTime,
		"final_price": ap.FinalPrice,
	})
}

func (h *PublicHandler) CancelAppointment(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	ref := c.Param("ref")

	var req PublicCancelRequest
	_ = c.ShouldBindJSON(&req)

	var ap models.Appointment
	if err := h.db.
		Where("salon_id = ? AND public_ref = ?", salon.ID, ref).
		First(&ap).Error; err != nil {

		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	updated, err := h.updateStatusUC.Execute(
		c.Request.Context(),
		ucAppointment.UpdateStatusInput{
			SalonID:       salon.ID,
			AppointmentID: ap.ID,
			NewStatus:     domain.StatusCancelled,
			Reason:        req.Reason,
		},
	)
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"public_ref": updated.PublicRef,
		"status":     updated.Status,
	})
}
