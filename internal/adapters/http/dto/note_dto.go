package dto

import (
	"time"

	"noteshare/internal/domain/entities"
)

// NoteRequest содержит данные для создания или обновления заметки.
type NoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ShareNoteRequest содержит данные для предоставления доступа к заметке.
type ShareNoteRequest struct {
	SharedUserID string `json:"sharedUserId"`
}

// MessageResponse содержит подтверждение выполнения операции.
type MessageResponse struct {
	Message string `json:"message"`
}

// NoteResponse представляет заметку в ответе API.
type NoteResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	UserID     string    `json:"userId"`
	SharedWith []string  `json:"sharedWith"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NoteFromEntity преобразует доменную заметку в ответ API.
func NoteFromEntity(note *entities.Note) *NoteResponse {
	sharedWith := note.SharedWith
	if sharedWith == nil {
		sharedWith = make([]string, 0)
	}
	return &NoteResponse{
		ID:         note.ID,
		Title:      note.Title,
		Content:    note.Content,
		UserID:     note.UserID,
		SharedWith: sharedWith,
		CreatedAt:  note.CreatedAt,
		UpdatedAt:  note.UpdatedAt,
	}
}

// NotesFromEntities преобразует список доменных заметок в ответ API.
func NotesFromEntities(notes []*entities.Note) []*NoteResponse {
	result := make([]*NoteResponse, 0, len(notes))
	for _, note := range notes {
		result = append(result, NoteFromEntity(note))
	}
	return result
}
