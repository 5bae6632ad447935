package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/dmitrijs2005/vocabday/internal/common"
	"github.com/dmitrijs2005/vocabday/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSavedWordService(t *testing.T) (*SavedWordService, *fakeRepoManager) {
	t.Helper()
	rm := newFakeRepoManager()
	db, _ := newSQLMockDB(t)
	return NewSavedWordService(db, rm), rm
}

func strPtr(s string) *string { return &s }

func TestSavedWords_RoundTrip(t *testing.T) {
	s, _ := newSavedWordService(t)
	ctx := context.Background()

	created, err := s.Create(ctx, 1, "lucid", "clear", nil)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	list, err := s.List(ctx, 1, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "lucid", list[0].Word)
	assert.Equal(t, "clear", list[0].Meaning)
	assert.Nil(t, list[0].Notes)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestSavedWords_CreateValidation(t *testing.T) {
	s, _ := newSavedWordService(t)

	_, err := s.Create(context.Background(), 1, " ", "clear", nil)
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.Create(context.Background(), 1, "lucid", "", nil)
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestSavedWords_EmptyNotesStoredAsNull(t *testing.T) {
	s, _ := newSavedWordService(t)

	w, err := s.Create(context.Background(), 1, "lucid", "clear", strPtr(""))
	require.NoError(t, err)
	assert.Nil(t, w.Notes)
}

func TestSavedWords_DuplicatePerUser(t *testing.T) {
	s, _ := newSavedWordService(t)
	ctx := context.Background()

	_, err := s.Create(ctx, 1, "lucid", "clear", nil)
	require.NoError(t, err)

	_, err = s.Create(ctx, 1, "lucid", "bright", nil)
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	_, err = s.Create(ctx, 2, "lucid", "clear", nil)
	assert.NoError(t, err)
}

func TestSavedWords_Search(t *testing.T) {
	s, _ := newSavedWordService(t)
	ctx := context.Background()

	_, _ = s.Create(ctx, 1, "lucid", "clear", nil)
	_, _ = s.Create(ctx, 1, "ebb", "to recede", nil)
	_, _ = s.Create(ctx, 2, "clarity", "clearness", nil)

	got, err := s.List(ctx, 1, "CLEAR")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "lucid", got[0].Word)
}

func TestSavedWords_OwnershipIsolation(t *testing.T) {
	s, _ := newSavedWordService(t)
	ctx := context.Background()

	w, err := s.Create(ctx, 1, "lucid", "clear", nil)
	require.NoError(t, err)

	_, err = s.Update(ctx, w.ID, 2, models.SavedWordPatch{Meaning: "hijacked"})
	assert.ErrorIs(t, err, common.ErrorNotFound)

	assert.ErrorIs(t, s.Delete(ctx, w.ID, 2), common.ErrorNotFound)

	list, err := s.List(ctx, 2, "")
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = s.List(ctx, 1, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "clear", list[0].Meaning)
}

func TestSavedWords_UpdatePatchSemantics(t *testing.T) {
	s, _ := newSavedWordService(t)
	ctx := context.Background()

	w, err := s.Create(ctx, 1, "lucid", "clear", strPtr("from a book"))
	require.NoError(t, err)

	var keep models.SavedWordPatch
	require.NoError(t, json.Unmarshal([]byte(`{"word":"","meaning":"bright"}`), &keep))
	got, err := s.Update(ctx, w.ID, 1, keep)
	require.NoError(t, err)
	assert.Equal(t, "lucid", got.Word)
	assert.Equal(t, "bright", got.Meaning)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "from a book", *got.Notes)

	var clear models.SavedWordPatch
	require.NoError(t, json.Unmarshal([]byte(`{"notes":null}`), &clear))
	got, err = s.Update(ctx, w.ID, 1, clear)
	require.NoError(t, err)
	assert.Nil(t, got.Notes)
	assert.Equal(t, "bright", got.Meaning)
}

func TestSavedWords_UpdateEmptyNotesStoredAsNull(t *testing.T) {
	s, _ := newSavedWordService(t)
	ctx := context.Background()

	w, err := s.Create(ctx, 1, "lucid", "clear", strPtr("from a book"))
	require.NoError(t, err)

	var patch models.SavedWordPatch
	require.NoError(t, json.Unmarshal([]byte(`{"notes":""}`), &patch))
	got, err := s.Update(ctx, w.ID, 1, patch)
	require.NoError(t, err)
	assert.Nil(t, got.Notes)

	list, err := s.List(ctx, 1, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Notes)
}

func TestSavedWords_RenameConflict(t *testing.T) {
	s, _ := newSavedWordService(t)
	ctx := context.Background()

	a, _ := s.Create(ctx, 1, "lucid", "clear", nil)
	_, _ = s.Create(ctx, 1, "ebb", "to recede", nil)

	_, err := s.Update(ctx, a.ID, 1, models.SavedWordPatch{Word: "ebb"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	got, err := s.Update(ctx, a.ID, 1, models.SavedWordPatch{Word: "pellucid"})
	require.NoError(t, err)
	assert.Equal(t, "pellucid", got.Word)
}

func TestSavedWords_Delete(t *testing.T) {
	s, _ := newSavedWordService(t)
	ctx := context.Background()

	w, _ := s.Create(ctx, 1, "lucid", "clear", nil)

	require.NoError(t, s.Delete(ctx, w.ID, 1))
	assert.ErrorIs(t, s.Delete(ctx, w.ID, 1), common.ErrorNotFound)
}
