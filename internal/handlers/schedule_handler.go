package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	ucSchedule "github.com/BruksfildServices01/salon-scheduler/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type ScheduleHandler struct {
	db                *gorm.DB
	setWeeklyUC       *ucSchedule.SetWeeklySchedule
	createExceptionUC *ucSchedule.CreateException
	deleteExceptionUC *ucSchedule.DeleteException
}

func NewScheduleHandler(
	db *gorm.DB,
	setWeeklyUC *ucSchedule.SetWeeklySchedule,
	createExceptionUC *ucSchedule.CreateException,
	deleteExceptionUC *ucSchedule.DeleteException,
) *ScheduleHandler {
	return &ScheduleHandler{
		db:                db,
		setWeeklyUC:       setWeeklyUC,
		createExceptionUC: createExceptionUC,
		deleteExceptionUC: deleteExceptionUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type WeekdayConfigRequest struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	WorkingDay bool   `json:"working_day"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

type WeeklyScheduleUpdateRequest struct {
	Days []WeekdayConfigRequest `json:"days" binding:"required"`
}

type CreateExceptionRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Type      string    `json:"type"`
	Reason    string    `json:"reason"`
}

// ======================================================
// WEEKLY SCHEDULE
// ======================================================

func (h *ScheduleHandler) GetWeekly(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)

	var days []models.WeeklySchedule
	if err := h.db.
		Where("staff_id = ?", staffID).
		Order("weekday ASC").
		Find(&days).Error; err != nil {

		httperr.Internal(c, "failed_to_get_schedule", "Erro ao buscar a grade.")
		return
	}

	c.JSON(200, days)
}

func (h *ScheduleHandler) UpdateWeekly(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req WeeklyScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	days := make([]ucSchedule.WeekdayConfig, 0, len(req.Days))
	for _, d := range req.Days {
		days = append(days, ucSchedule.WeekdayConfig{
			Weekday:    d.Weekday,
			WorkingDay: d.WorkingDay,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
		})
	}

	err := h.setWeeklyUC.Execute(
		c.Request.Context(),
		ucSchedule.SetWeeklyScheduleInput{
			SalonID: salonID,
			StaffID: staffID,
			Days:    days,
		},
	)
	if err != nil {
		mapScheduleError(c, err)
		return
	}

	c.JSON(200, gin.H{"status": "ok"})
}

// ======================================================
// EXCEPTIONS (FÉRIAS / BLOQUEIOS)
// ======================================================

func (h *ScheduleHandler) ListExceptions(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)

	var exceptions []models.ScheduleException
	if err := h.db.
		Where("staff_id = ?", staffID).
		Order("start_time ASC").
		Find(&exceptions).Error; err != nil {

		httperr.Internal(c, "failed_to_list_exceptions", "Erro ao listar bloqueios.")
		return
	}

	httpresp.List(c, exceptions)
}

func (h *ScheduleHandler) CreateException(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ex, err := h.createExceptionUC.Execute(
		c.Request.Context(),
		ucSchedule.CreateExceptionInput{
			SalonID:   salonID,
			StaffID:   staffID,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Type:      req.Type,
			Reason:    req.Reason,
		},
	)
	if err != nil {
		mapScheduleError(c, err)
		return
	}

	c.JSON(201, ex)
}

func (h *ScheduleHandler) DeleteException(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	exID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	if err := h.deleteExceptionUC.Execute(
		c.Request.Context(),
		salonID,
		staffID,
		uint(exID),
	); err != nil {
		mapScheduleError(c, err)
		return
	}

	c.JSON(200, gin.H{"status": "ok"})
}
