package services_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vadimgribanov.com/memory-mcp/internal/apperrors"
	"vadimgribanov.com/memory-mcp/internal/database"
	"vadimgribanov.com/memory-mcp/internal/repositories"
	"vadimgribanov.com/memory-mcp/internal/services"
)

func newTestService(t *testing.T) *services.MemoryService {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "memories.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())
	return services.NewMemoryService(repositories.NewMemoryRepo(db))
}

func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }

func TestRemember_EmptyTitle(t *testing.T) {
	service := newTestService(t)

	_, err := service.Remember("", "content")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = service.Remember("   \t ", "content")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestRemember_TrimsTitle(t *testing.T) {
	service := newTestService(t)

	memory, err := service.Remember("  Meeting Notes  ", "content")
	require.NoError(t, err)
	assert.Equal(t, "Meeting Notes", memory.Title)
}

func TestResolve_RequiresExactlyOneSelector(t *testing.T) {
	service := newTestService(t)

	_, err := service.Resolve(nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArguments))

	_, err = service.Resolve(int64Ptr(1), strPtr("X"))
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArguments))
}

func TestResolve_ByIDAndByTitle(t *testing.T) {
	service := newTestService(t)

	created, err := service.Remember("Meeting Notes", "Discussed timeline")
	require.NoError(t, err)

	byID, err := service.Resolve(int64Ptr(created.ID), nil)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)

	byTitle, err := service.Resolve(nil, strPtr("Meeting Notes"))
	require.NoError(t, err)
	assert.Equal(t, created.ID, byTitle.ID)

	_, err = service.Resolve(nil, strPtr("No Such Title"))
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestUpdateMemory_Validation(t *testing.T) {
	service := newTestService(t)

	created, err := service.Remember("Notes", "content")
	require.NoError(t, err)

	_, err = service.UpdateMemory(created.ID, nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = service.UpdateMemory(created.ID, strPtr("  "), nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestUpdateMemory_TrimsNewTitle(t *testing.T) {
	service := newTestService(t)

	created, err := service.Remember("Notes", "content")
	require.NoError(t, err)

	updated, err := service.UpdateMemory(created.ID, strPtr("  Renamed  "), nil)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
}

// Full lifecycle: create, look up by title, rename, delete, confirm gone.
func TestMemoryLifecycle(t *testing.T) {
	service := newTestService(t)

	created, err := service.Remember("Meeting Notes", "Discussed timeline")
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	found, err := service.Resolve(nil, strPtr("Meeting Notes"))
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	time.Sleep(10 * time.Millisecond)

	updated, err := service.UpdateMemory(created.ID, strPtr("Updated Title"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Updated Title", updated.Title)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	require.NoError(t, service.DeleteMemory(created.ID))

	_, err = service.Resolve(int64Ptr(created.ID), nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestListMemories(t *testing.T) {
	service := newTestService(t)

	for _, title := range []string{"A", "B", "C"} {
		_, err := service.Remember(title, "")
		require.NoError(t, err)
	}

	memories, err := service.ListMemories(0, 0)
	require.NoError(t, err)
	require.Len(t, memories, 3)
	assert.Equal(t, "A", memories[0].Title)

	memories, err = service.ListMemories(2, 0)
	require.NoError(t, err)
	assert.Len(t, memories, 2)
}
