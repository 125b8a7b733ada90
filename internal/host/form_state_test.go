package host

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/working-schedule/internal/domain/record"
	"github.com/BruksfildServices01/working-schedule/internal/infra/repository"
	"github.com/BruksfildServices01/working-schedule/internal/models"
)

type recordingArchive struct {
	mu   sync.Mutex
	puts []string
	err  error
}

func (a *recordingArchive) Put(_ context.Context, rec *models.Record) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.puts = append(a.puts, rec.FormValues)
	return a.err
}

func newRecord(t *testing.T, repo record.Repository, values string) *models.Record {
	t.Helper()
	rec := &models.Record{ProjectID: 1, ItemType: "store", FormValues: values}
	require.NoError(t, repo.CreateRecord(context.Background(), rec))
	return rec
}

func TestOpenReadsNestedField(t *testing.T) {
	repo := repository.NewRecordMemoryRepository()
	rec := newRecord(t, repo, `{"storeService":{"schedule":"[]"}}`)
	forms := NewForms(repo, nil, true, nil)

	fs, err := forms.Open(context.Background(), 1, rec.ID)
	require.NoError(t, err)

	v, ok := fs.FieldValue("storeService.schedule")
	assert.True(t, ok)
	assert.Equal(t, "[]", v)

	_, ok = fs.FieldValue("storeService.hours")
	assert.False(t, ok)
}

func TestOpenMalformedValuesReadsNothing(t *testing.T) {
	repo := repository.NewRecordMemoryRepository()
	rec := newRecord(t, repo, `not json`)
	forms := NewForms(repo, nil, false, nil)

	fs, err := forms.Open(context.Background(), 1, rec.ID)
	require.NoError(t, err)

	_, ok := fs.FieldValue("schedule")
	assert.False(t, ok)
}

func TestOpenUnknownRecord(t *testing.T) {
	forms := NewForms(repository.NewRecordMemoryRepository(), nil, false, nil)

	_, err := forms.Open(context.Background(), 1, 42)
	assert.ErrorIs(t, err, record.ErrNotFound)
}

func TestSetFieldValueKeepsOtherFields(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRecordMemoryRepository()
	rec := newRecord(t, repo, `{"title":"Bakery","storeService":{"phone":"123"}}`)
	archive := &recordingArchive{}
	forms := NewForms(repo, archive, false, nil)

	fs := forms.Bind(1, rec.ID)
	require.NoError(t, fs.SetFieldValue(ctx, "storeService.schedule", `[]`))

	got, err := repo.GetRecord(ctx, 1, rec.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Bakery","storeService":{"phone":"123","schedule":"[]"}}`, got.FormValues)
	require.Len(t, archive.puts, 1)
	assert.Equal(t, got.FormValues, archive.puts[0])
}

func TestSetFieldValueArchiveFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRecordMemoryRepository()
	rec := newRecord(t, repo, `{}`)
	forms := NewForms(repo, &recordingArchive{err: errors.New("s3 down")}, false, nil)

	assert.NoError(t, forms.Bind(1, rec.ID).SetFieldValue(ctx, "schedule", "[]"))
}

func TestSetFieldValueLeavesMalformedValuesAlone(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRecordMemoryRepository()
	stored := `{"title":"Store A","schedule":"[]",}`
	rec := newRecord(t, repo, stored)
	archive := &recordingArchive{}
	forms := NewForms(repo, archive, false, nil)

	err := forms.Bind(1, rec.ID).SetFieldValue(ctx, "schedule", "[]")
	assert.ErrorIs(t, err, ErrMalformedValues)

	got, err := repo.GetRecord(ctx, 1, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, stored, got.FormValues)
	assert.Empty(t, archive.puts)
}

func TestSetFieldValueKeepsLargeNumbers(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRecordMemoryRepository()
	rec := newRecord(t, repo, `{"sku":12345678901234567891,"schedule":"[]"}`)
	forms := NewForms(repo, nil, false, nil)

	require.NoError(t, forms.Bind(1, rec.ID).SetFieldValue(ctx, "schedule", `[{"id":"e"}]`))

	got, err := repo.GetRecord(ctx, 1, rec.ID)
	require.NoError(t, err)
	assert.Contains(t, got.FormValues, `"sku":12345678901234567891`)
}

func TestSetFieldValueBadPath(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRecordMemoryRepository()
	rec := newRecord(t, repo, `{"title":"x"}`)
	forms := NewForms(repo, nil, false, nil)

	err := forms.Bind(1, rec.ID).SetFieldValue(ctx, "title.schedule", "[]")
	assert.Error(t, err)
}

func TestReplaceValuesWaitsForFieldWrites(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRecordMemoryRepository()
	rec := newRecord(t, repo, `{"title":"old"}`)
	archive := &recordingArchive{}
	forms := NewForms(repo, archive, false, nil)

	unlock := forms.lockRecord(rec.ID)

	done := make(chan error, 1)
	go func() {
		_, err := forms.ReplaceValues(ctx, 1, rec.ID, `{"title":"new"}`)
		done <- err
	}()

	select {
	case <-done:
		t.Fatal("ReplaceValues ran while the record was locked")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()
	require.NoError(t, <-done)

	got, err := repo.GetRecord(ctx, 1, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, `{"title":"new"}`, got.FormValues)
	assert.Equal(t, []string{`{"title":"new"}`}, archive.puts)
}

func TestReplaceValuesThenFieldWriteKeepsBoth(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRecordMemoryRepository()
	rec := newRecord(t, repo, `{"title":"old"}`)
	forms := NewForms(repo, nil, false, nil)

	// a field view opened before the replace must not bring back old values
	fs := forms.Bind(1, rec.ID)

	_, err := forms.ReplaceValues(ctx, 1, rec.ID, `{"title":"new"}`)
	require.NoError(t, err)
	require.NoError(t, fs.SetFieldValue(ctx, "hours", "[]"))

	got, err := repo.GetRecord(ctx, 1, rec.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"new","hours":"[]"}`, got.FormValues)
}

func TestReplaceValuesUnknownRecord(t *testing.T) {
	forms := NewForms(repository.NewRecordMemoryRepository(), nil, false, nil)

	_, err := forms.ReplaceValues(context.Background(), 1, 99, `{}`)
	assert.ErrorIs(t, err, record.ErrNotFound)
}
