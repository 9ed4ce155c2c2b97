package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// ======================================================
// MAPEAMENTO DE ERROS DE NEGÓCIO → HTTP
// ======================================================

// Todos os erros do motor de agendamento são recuperáveis pelo caller;
// aqui só traduzimos código de negócio em status HTTP.
func mapAppointmentError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")

	case httperr.IsBusiness(err, "variant_not_found"):
		httperr.BadRequest(c, "variant_not_found", "Serviço não encontrado.")

	case httperr.IsBusiness(err, "staff_not_found"):
		httperr.BadRequest(c, "staff_not_found", "Profissional não encontrado.")

	case httperr.IsBusiness(err, "staff_unavailable"):
		httperr.BadRequest(c, "staff_unavailable", "Profissional indisponível neste horário.")

	case httperr.IsBusiness(err, "slot_conflict") || httperr.IsExclusionConflict(err):
		httperr.BadRequest(c, "slot_conflict", "Conflito de horário.")

	case httperr.IsBusiness(err, "invalid_transition"):
		httperr.BadRequest(c, "invalid_transition", "Mudança de status não permitida.")

	case httperr.IsBusiness(err, "cancellation_window_expired"):
		httperr.BadRequest(c, "cancellation_window_expired", "Fora da janela de cancelamento.")

	case httperr.IsBusiness(err, "illegal_state"):
		httperr.BadRequest(c, "illegal_state", "Agendamento não pode ser remarcado neste status.")

	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")

	default:
		httperr.Internal(c, "appointment_operation_failed", "Erro ao processar agendamento.")
	}
}

func mapScheduleError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "invalid_schedule"):
		httperr.BadRequest(c, "invalid_schedule", "Grade semanal inválida.")

	case httperr.IsBusiness(err, "invalid_exception_interval"):
		httperr.BadRequest(c, "invalid_exception_interval", "Intervalo inválido.")

	case httperr.IsBusiness(err, "exception_overlap"):
		httperr.BadRequest(c, "exception_overlap", "Já existe um bloqueio neste período.")

	case httperr.IsBusiness(err, "exception_not_found"):
		httperr.NotFound(c, "exception_not_found", "Bloqueio não encontrado.")

	default:
		httperr.Internal(c, "schedule_operation_failed", "Erro ao processar agenda.")
	}
}
