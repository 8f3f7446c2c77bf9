package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noteshare/internal/domain/entities"
)

func TestNewNote(t *testing.T) {
	note := entities.NewNote("owner", "title", "content")

	assert.Equal(t, "owner", note.UserID)
	assert.Equal(t, "title", note.Title)
	assert.Equal(t, "content", note.Content)
	require.NotNil(t, note.SharedWith)
	assert.Empty(t, note.SharedWith)
	assert.Equal(t, note.CreatedAt, note.UpdatedAt)
}

func TestNote_Visibility(t *testing.T) {
	note := &entities.Note{
		UserID:     "owner",
		SharedWith: []string{"reader"},
	}

	t.Run("Владелец", func(t *testing.T) {
		assert.True(t, note.IsOwnedBy("owner"))
		assert.False(t, note.IsOwnedBy("reader"))
	})

	t.Run("Разделенный доступ", func(t *testing.T) {
		assert.True(t, note.IsSharedWith("reader"))
		assert.False(t, note.IsSharedWith("owner"))
		assert.False(t, note.IsSharedWith("stranger"))
	})

	t.Run("Право чтения", func(t *testing.T) {
		assert.True(t, note.IsVisibleTo("owner"))
		assert.True(t, note.IsVisibleTo("reader"))
		assert.False(t, note.IsVisibleTo("stranger"))
	})
}
