package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/working-schedule/internal/domain/schedule"
	"github.com/BruksfildServices01/working-schedule/internal/dto"
	"github.com/BruksfildServices01/working-schedule/internal/httperr"
	"github.com/BruksfildServices01/working-schedule/internal/httpresp"
	ucSchedule "github.com/BruksfildServices01/working-schedule/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type ScheduleHandler struct {
	openUC  *ucSchedule.OpenSession
	getUC   *ucSchedule.GetSession
	applyUC *ucSchedule.ApplyOperation
	closeUC *ucSchedule.CloseSession
	checkUC *ucSchedule.CheckOpen
}

func NewScheduleHandler(
	openUC *ucSchedule.OpenSession,
	getUC *ucSchedule.GetSession,
	applyUC *ucSchedule.ApplyOperation,
	closeUC *ucSchedule.CloseSession,
	checkUC *ucSchedule.CheckOpen,
) *ScheduleHandler {
	return &ScheduleHandler{
		openUC:  openUC,
		getUC:   getUC,
		applyUC: applyUC,
		closeUC: closeUC,
		checkUC: checkUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type OpenSessionRequest struct {
	RecordID  uint   `json:"record_id" binding:"required"`
	FieldPath string `json:"field_path" binding:"required"`
	FieldID   string `json:"field_id"`
}

type UpdateEntryFieldRequest struct {
	Weekdays  []domain.Weekday      `json:"weekdays"`
	TimeSlots []domain.TimeSlotPair `json:"timeSlots"`
}

type UpdateTimeSlotRequest struct {
	Open  *string `json:"open"`
	Close *string `json:"close"`
}

// ======================================================
// HELPERS
// ======================================================

func sessionResponse(v *ucSchedule.SessionView) dto.SessionDTO {
	issues := v.Issues
	if issues == nil {
		issues = []domain.Issue{}
	}
	return dto.SessionDTO{
		ID:        v.Session.ID,
		RecordID:  v.Session.RecordID,
		FieldPath: v.Session.FieldPath,
		FieldID:   v.Session.FieldID,
		Schedule:  v.Session.Schedule.Clone(),
		Source:    string(v.Source),
		Fallback:  v.Fallback,
		Changed:   v.Changed,
		Issues:    issues,
		OpenedAt:  v.Session.OpenedAt,
		UpdatedAt: v.Session.UpdatedAt,
	}
}

func (h *ScheduleHandler) apply(c *gin.Context, op ucSchedule.Operation) {
	userID, projectID := identity(c)

	view, err := h.applyUC.Execute(c.Request.Context(), ucSchedule.ApplyOperationInput{
		ProjectID: projectID,
		UserID:    userID,
		SessionID: c.Param("id"),
		Op:        op,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_apply_operation", "Erro ao atualizar horários.")
		return
	}

	httpresp.OK(c, sessionResponse(view))
}

// ======================================================
// SESSIONS
// ======================================================

func (h *ScheduleHandler) Open(c *gin.Context) {
	userID, projectID := identity(c)

	var req OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	view, err := h.openUC.Execute(c.Request.Context(), ucSchedule.OpenSessionInput{
		ProjectID: projectID,
		UserID:    userID,
		RecordID:  req.RecordID,
		FieldPath: req.FieldPath,
		FieldID:   req.FieldID,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_open_session", "Erro ao abrir editor.")
		return
	}

	httpresp.Created(c, sessionResponse(view))
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	_, projectID := identity(c)

	view, err := h.getUC.Execute(c.Request.Context(), projectID, c.Param("id"))
	if err != nil {
		httperr.FromError(c, err, "failed_to_load_session", "Erro ao carregar editor.")
		return
	}

	httpresp.OK(c, sessionResponse(view))
}

func (h *ScheduleHandler) Close(c *gin.Context) {
	userID, projectID := identity(c)

	if err := h.closeUC.Execute(c.Request.Context(), projectID, userID, c.Param("id")); err != nil {
		httperr.FromError(c, err, "failed_to_close_session", "Erro ao fechar editor.")
		return
	}

	c.Status(204)
}

// ======================================================
// ENTRIES
// ======================================================

func (h *ScheduleHandler) AddEntry(c *gin.Context) {
	h.apply(c, ucSchedule.AddEntry{})
}

func (h *ScheduleHandler) RemoveEntry(c *gin.Context) {
	h.apply(c, ucSchedule.RemoveEntry{EntryID: c.Param("entryId")})
}

func (h *ScheduleHandler) UpdateEntryField(c *gin.Context) {
	field, ok := domain.ParseField(c.Param("field"))
	if !ok {
		httperr.BadRequest(c, "invalid_field", "Campo inválido.")
		return
	}

	var req UpdateEntryFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	h.apply(c, ucSchedule.UpdateEntryField{
		EntryID:   c.Param("entryId"),
		Field:     field,
		Weekdays:  req.Weekdays,
		TimeSlots: req.TimeSlots,
	})
}

func (h *ScheduleHandler) ToggleWeekday(c *gin.Context) {
	position, err := strconv.Atoi(c.Param("position"))
	if err != nil {
		httperr.BadRequest(c, "invalid_weekday", "Dia da semana inválido.")
		return
	}

	h.apply(c, ucSchedule.ToggleWeekday{
		EntryID:  c.Param("entryId"),
		Position: position,
	})
}

// ======================================================
// TIME SLOTS
// ======================================================

func (h *ScheduleHandler) AddTimeSlot(c *gin.Context) {
	h.apply(c, ucSchedule.AddTimeSlot{EntryID: c.Param("entryId")})
}

func (h *ScheduleHandler) UpdateTimeSlot(c *gin.Context) {
	var req UpdateTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	h.apply(c, ucSchedule.UpdateTimeSlot{
		EntryID: c.Param("entryId"),
		SlotID:  c.Param("slotId"),
		Open:    req.Open,
		Close:   req.Close,
	})
}

func (h *ScheduleHandler) RemoveTimeSlot(c *gin.Context) {
	h.apply(c, ucSchedule.RemoveTimeSlot{
		EntryID: c.Param("entryId"),
		SlotID:  c.Param("slotId"),
	})
}

// ======================================================
// OPEN CHECK
// ======================================================

// IsOpen answers GET /records/:id/open?field=...&weekday=0..6&time=HH:MM.
// Missing weekday or time default to the server clock.
func (h *ScheduleHandler) IsOpen(c *gin.Context) {
	_, projectID := identity(c)

	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	now := time.Now()

	weekday := domain.FromTime(now.Weekday()).Position
	if v := c.Query("weekday"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			httperr.BadRequest(c, "invalid_weekday", "Dia da semana inválido.")
			return
		}
		weekday = n
	}

	at := c.DefaultQuery("time", now.Format("15:04"))
	field := c.Query("field")

	open, err := h.checkUC.Execute(c.Request.Context(), ucSchedule.CheckOpenInput{
		ProjectID: projectID,
		RecordID:  id,
		FieldPath: field,
		Weekday:   weekday,
		Time:      at,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_check_schedule", "Erro ao consultar horários.")
		return
	}

	httpresp.OK(c, gin.H{
		"record_id": id,
		"field":     field,
		"weekday":   weekday,
		"time":      at,
		"open":      open,
	})
}
