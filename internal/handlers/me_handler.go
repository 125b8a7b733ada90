package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/working-schedule/internal/httperr"
	"github.com/BruksfildServices01/working-schedule/internal/httpresp"
	"github.com/BruksfildServices01/working-schedule/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

// GetMe returns the caller, their project and the field editors the
// project can mount.
func (h *MeHandler) GetMe(c *gin.Context) {
	userID, projectID := identity(c)

	var user models.User
	err := h.db.WithContext(c.Request.Context()).
		Preload("Project").
		Where("project_id = ?", projectID).
		First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}
	if err != nil {
		httperr.Internal(c, "failed_to_load_user", "Erro ao carregar usuário.")
		return
	}

	httpresp.OK(c, gin.H{
		"user":    userPayload(&user),
		"project": projectPayload(&user.Project),
		"plugins": []PluginManifest{WorkingScheduleManifest},
	})
}
