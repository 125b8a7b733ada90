package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/working-schedule/internal/httpresp"
)

// PluginManifest describes the field editor to the CMS.
type PluginManifest struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	FieldTypes   []string `json:"fieldTypes"`
	Configurable bool     `json:"configurable"`
}

var WorkingScheduleManifest = PluginManifest{
	ID:           "workingScheduleDays",
	Name:         "Working Schedule Days",
	Type:         "editor",
	FieldTypes:   []string{"json"},
	Configurable: false,
}

func PluginManifestHandler(c *gin.Context) {
	httpresp.OK(c, WorkingScheduleManifest)
}
