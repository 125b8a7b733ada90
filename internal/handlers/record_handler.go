package handlers

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/working-schedule/internal/domain/record"
	"github.com/BruksfildServices01/working-schedule/internal/dto"
	"github.com/BruksfildServices01/working-schedule/internal/host"
	"github.com/BruksfildServices01/working-schedule/internal/httperr"
	"github.com/BruksfildServices01/working-schedule/internal/httpresp"
	"github.com/BruksfildServices01/working-schedule/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

// RecordHandler is the host side of the form: it creates records and lets
// the CMS read or replace all of their form values at once.
type RecordHandler struct {
	records record.Repository
	forms   *host.Forms
	log     *zap.Logger
}

func NewRecordHandler(records record.Repository, forms *host.Forms, log *zap.Logger) *RecordHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &RecordHandler{records: records, forms: forms, log: log}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateRecordRequest struct {
	ItemType   string          `json:"item_type" binding:"required"`
	FormValues json.RawMessage `json:"form_values"`
}

type UpdateRecordRequest struct {
	FormValues json.RawMessage `json:"form_values" binding:"required"`
}

// formValuesText accepts a JSON object, or nothing for an empty form.
func formValuesText(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || strings.TrimSpace(string(raw)) == "null" {
		return "{}", true
	}
	values, err := record.DecodeValues(string(raw))
	if err != nil {
		return "", false
	}
	text, err := record.EncodeValues(values)
	if err != nil {
		return "", false
	}
	return text, true
}

// ======================================================
// CREATE
// ======================================================

func (h *RecordHandler) Create(c *gin.Context) {
	_, projectID := identity(c)

	var req CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	text, ok := formValuesText(req.FormValues)
	if !ok {
		httperr.BadRequest(c, "invalid_form_values", "Valores do formulário inválidos.")
		return
	}

	rec := models.Record{
		ProjectID:  projectID,
		ItemType:   strings.TrimSpace(req.ItemType),
		FormValues: text,
	}
	if err := h.records.CreateRecord(c.Request.Context(), &rec); err != nil {
		h.log.Error("create record failed", zap.Error(err))
		httperr.Internal(c, "failed_to_create_record", "Erro ao criar registro.")
		return
	}

	httpresp.Created(c, dto.NewRecordDTO(&rec))
}

// ======================================================
// GET
// ======================================================

func (h *RecordHandler) Get(c *gin.Context) {
	_, projectID := identity(c)

	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	rec, err := h.records.GetRecord(c.Request.Context(), projectID, id)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			httperr.NotFound(c, "record_not_found", "Registro não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_load_record", "Erro ao carregar registro.")
		return
	}

	httpresp.OK(c, dto.NewRecordDTO(rec))
}

// ======================================================
// UPDATE
// ======================================================

func (h *RecordHandler) Update(c *gin.Context) {
	_, projectID := identity(c)

	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	text, ok := formValuesText(req.FormValues)
	if !ok {
		httperr.BadRequest(c, "invalid_form_values", "Valores do formulário inválidos.")
		return
	}

	rec, err := h.forms.ReplaceValues(c.Request.Context(), projectID, id, text)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			httperr.NotFound(c, "record_not_found", "Registro não encontrado.")
			return
		}
		h.log.Error("save record failed", zap.Uint("record_id", id), zap.Error(err))
		httperr.Internal(c, "failed_to_save_record", "Erro ao salvar registro.")
		return
	}

	httpresp.OK(c, dto.NewRecordDTO(rec))
}
