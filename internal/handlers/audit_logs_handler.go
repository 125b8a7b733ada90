package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/working-schedule/internal/dto"
	"github.com/BruksfildServices01/working-schedule/internal/httperr"
	"github.com/BruksfildServices01/working-schedule/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// ======================================================
// FILTER
// ======================================================

// auditFilter narrows the audit trail of a project. Schedule events carry
// the record as entity and the editor session in their metadata.
type auditFilter struct {
	Actions   []string
	RecordID  uint
	SessionID string
	From      *time.Time
	To        *time.Time
	Page      int
	Limit     int
}

func parseAuditFilter(c *gin.Context) (auditFilter, bool) {
	f := auditFilter{Page: 1, Limit: 50}

	for _, a := range strings.Split(c.Query("action"), ",") {
		if a = strings.TrimSpace(a); a != "" {
			f.Actions = append(f.Actions, a)
		}
	}

	if v := c.Query("record_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return f, false
		}
		f.RecordID = uint(id)
	}

	f.SessionID = strings.TrimSpace(c.Query("session_id"))

	if v := c.Query("from"); v != "" {
		from, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, false
		}
		f.From = &from
	}
	if v := c.Query("to"); v != "" {
		to, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, false
		}
		end := to.Add(24 * time.Hour)
		f.To = &end
	}

	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		f.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 && limit <= 200 {
		f.Limit = limit
	}
	return f, true
}

func (f auditFilter) apply(q *gorm.DB) *gorm.DB {
	if len(f.Actions) > 0 {
		q = q.Where("action IN ?", f.Actions)
	}
	if f.RecordID != 0 {
		q = q.Where("entity = ? AND entity_id = ?", "record", f.RecordID)
	}
	if f.SessionID != "" {
		q = q.Where("metadata::jsonb ->> 'session_id' = ?", f.SessionID)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}
	return q
}

// ======================================================
// LIST
// ======================================================

func (h *AuditLogsHandler) List(c *gin.Context) {
	_, projectID := identity(c)

	f, ok := parseAuditFilter(c)
	if !ok {
		httperr.BadRequest(c, "invalid_filter", "Filtro inválido.")
		return
	}

	// sempre protegido por projeto
	q := f.apply(h.db.Model(&models.AuditLog{}).Where("project_id = ?", projectID))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Erro ao contar logs.")
		return
	}

	var rows []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&rows).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	logs := make([]dto.AuditLogDTO, 0, len(rows))
	for i := range rows {
		logs = append(logs, dto.NewAuditLogDTO(&rows[i]))
	}

	c.JSON(200, gin.H{
		"page":  f.Page,
		"limit": f.Limit,
		"total": total,
		"logs":  logs,
	})
}
