package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/working-schedule/internal/audit"
	"github.com/BruksfildServices01/working-schedule/internal/domain/record"
	domain "github.com/BruksfildServices01/working-schedule/internal/domain/schedule"
	"github.com/BruksfildServices01/working-schedule/internal/dto"
	"github.com/BruksfildServices01/working-schedule/internal/host"
	"github.com/BruksfildServices01/working-schedule/internal/infra/repository"
	"github.com/BruksfildServices01/working-schedule/internal/middleware"
	"github.com/BruksfildServices01/working-schedule/internal/session"
	ucSchedule "github.com/BruksfildServices01/working-schedule/internal/usecase/schedule"
)

type discardAudit struct{}

func (discardAudit) Write(context.Context, audit.Event) error { return nil }

func fakeAuth(c *gin.Context) {
	c.Set(middleware.ContextUserID, uint(1))
	c.Set(middleware.ContextProjectID, uint(1))
	c.Next()
}

func newTestRouter(t *testing.T) (*gin.Engine, record.Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewRecordMemoryRepository()
	sessions := session.NewMemoryStore(0)
	dispatcher := audit.NewDispatcher(discardAudit{}, nil)
	t.Cleanup(dispatcher.Close)

	forms := host.NewForms(repo, nil, false, nil)
	sh := NewScheduleHandler(
		ucSchedule.NewOpenSession(forms, sessions, dispatcher, nil, nil),
		ucSchedule.NewGetSession(sessions),
		ucSchedule.NewApplyOperation(forms, sessions, dispatcher, nil, nil),
		ucSchedule.NewCloseSession(sessions, dispatcher, nil),
		ucSchedule.NewCheckOpen(forms),
	)
	rh := NewRecordHandler(repo, forms, nil)

	r := gin.New()
	r.GET("/api/plugin/manifest", PluginManifestHandler)

	api := r.Group("/api", fakeAuth)
	api.POST("/records", rh.Create)
	api.GET("/records/:id", rh.Get)
	api.PUT("/records/:id", rh.Update)
	api.GET("/records/:id/open", sh.IsOpen)

	api.POST("/sessions", sh.Open)
	api.GET("/sessions/:id", sh.Get)
	api.DELETE("/sessions/:id", sh.Close)
	api.POST("/sessions/:id/entries", sh.AddEntry)
	api.DELETE("/sessions/:id/entries/:entryId", sh.RemoveEntry)
	api.PUT("/sessions/:id/entries/:entryId/:field", sh.UpdateEntryField)
	api.POST("/sessions/:id/entries/:entryId/weekdays/:position/toggle", sh.ToggleWeekday)
	api.POST("/sessions/:id/entries/:entryId/slots", sh.AddTimeSlot)
	api.PATCH("/sessions/:id/entries/:entryId/slots/:slotId", sh.UpdateTimeSlot)
	api.DELETE("/sessions/:id/entries/:entryId/slots/:slotId", sh.RemoveTimeSlot)

	return r, repo
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeSession(t *testing.T, w *httptest.ResponseRecorder) dto.SessionDTO {
	t.Helper()
	var out dto.SessionDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestPluginManifest(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/plugin/manifest", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"id":"workingScheduleDays","name":"Working Schedule Days","type":"editor","fieldTypes":["json"],"configurable":false}`,
		w.Body.String(),
	)
}

func TestRecordLifecycle(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/records", gin.H{
		"item_type":   "store",
		"form_values": gin.H{"title": "Centro"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created dto.RecordDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.JSONEq(t, `{"title":"Centro"}`, string(created.FormValues))

	w = do(t, r, http.MethodPut, "/api/records/1", gin.H{"form_values": gin.H{"title": "Norte"}})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/records/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Norte"`)

	w = do(t, r, http.MethodPut, "/api/records/1", gin.H{"form_values": []int{1}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/api/records/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/api/records/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleSessionFlow(t *testing.T) {
	r, repo := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/records", gin.H{
		"item_type":   "store",
		"form_values": gin.H{"hours": ""},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodPost, "/api/sessions", gin.H{"record_id": 1, "field_path": "hours"})
	require.Equal(t, http.StatusCreated, w.Code)
	sess := decodeSession(t, w)
	assert.True(t, sess.Fallback)
	require.Len(t, sess.Schedule, 1)

	// opening never writes
	rec, err := repo.GetRecord(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.JSONEq(t, `{"hours":""}`, rec.FormValues)

	base := "/api/sessions/" + sess.ID
	entry := sess.Schedule[0]

	w = do(t, r, http.MethodPost, base+"/entries/"+entry.ID+"/weekdays/4/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeSession(t, w).Changed)

	w = do(t, r, http.MethodPatch, base+"/entries/"+entry.ID+"/slots/"+entry.TimeSlots[0].ID,
		gin.H{"open": "08:00", "close": "12:00"})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPost, base+"/entries/"+entry.ID+"/slots", nil)
	require.Equal(t, http.StatusOK, w.Code)
	sess = decodeSession(t, w)
	require.Len(t, sess.Schedule[0].TimeSlots, 2)

	w = do(t, r, http.MethodPut, base+"/entries/"+entry.ID+"/weekdays",
		gin.H{"weekdays": []domain.Weekday{domain.Weekdays[4], domain.Weekdays[5]}})
	require.Equal(t, http.StatusOK, w.Code)
	sess = decodeSession(t, w)
	assert.Len(t, sess.Schedule[0].Weekdays, 2)

	rec, err = repo.GetRecord(context.Background(), 1, 1)
	require.NoError(t, err)
	values, err := record.DecodeValues(rec.FormValues)
	require.NoError(t, err)
	stored, _, err := domain.Decode(values["hours"], true)
	require.NoError(t, err)
	assert.Equal(t, sess.Schedule, stored)

	w = do(t, r, http.MethodGet, "/api/records/1/open?field=hours&weekday=4&time=09:15", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"open":true`)

	w = do(t, r, http.MethodGet, "/api/records/1/open?field=hours&weekday=6&time=09:15", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"open":false`)

	w = do(t, r, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "session_not_found")
}

func TestScheduleHandlerRejectsBadInput(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/records", gin.H{"item_type": "store"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodPost, "/api/sessions", gin.H{"record_id": 1, "field_path": "a..b"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_field_path")

	w = do(t, r, http.MethodPost, "/api/sessions", gin.H{"record_id": 7, "field_path": "hours"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPost, "/api/sessions", gin.H{"record_id": 1, "field_path": "hours"})
	require.Equal(t, http.StatusCreated, w.Code)
	base := "/api/sessions/" + decodeSession(t, w).ID

	w = do(t, r, http.MethodPut, base+"/entries/x/name", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_field")

	w = do(t, r, http.MethodPut, base+"/entries/x/timeSlots", gin.H{"timeSlots": []gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_time_slots")

	w = do(t, r, http.MethodPost, base+"/entries/x/weekdays/mon/toggle", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPatch, base+"/entries/x/slots/y", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "nothing_to_update")

	w = do(t, r, http.MethodDelete, base+"/entries/unknown", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decodeSession(t, w).Changed)

	w = do(t, r, http.MethodPost, "/api/sessions/missing/entries", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
