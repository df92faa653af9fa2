package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"class-companion/internal/adapter"
	"class-companion/internal/course"
	"class-companion/internal/service"
	"class-companion/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckBackend(t *testing.T) {
	tests := []struct {
		backend string
		wantErr bool
	}{
		{"", true},
		{storage.BackendMemory, true},
		{storage.BackendRedis, false},
		{storage.BackendSQL, false},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			err := checkBackend(tt.backend)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestExportToWritesImportableDocument(t *testing.T) {
	ctx := context.Background()
	courseStore, err := course.Load("")
	require.NoError(t, err)
	progress := service.NewProgressService(courseStore, service.NewProgressPersistence(adapter.NewMemoryStoreAdapter(), "companion"))

	_, err = progress.UpdateSubLessonStatus(ctx, service.WriteScope{LearnerID: service.DefaultLearnerID}, 1, "1.1", true)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, exportTo(ctx, progress, service.DefaultLearnerID, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	res, err := progress.ImportData(ctx, service.WriteScope{LearnerID: "other"}, raw)
	require.NoError(t, err)
	assert.True(t, res.Updated)

	overall, err := progress.GetOverallProgress(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, 1, overall.Completed)
}
