package entities

import (
	"errors"
	"time"
)

// Ошибки домена заметок.
var (
	ErrNoteNotFound  = errors.New("note not found")
	ErrAlreadyShared = errors.New("note is already shared with this user")
	ErrShareWithSelf = errors.New("cannot share a note with its owner")
	ErrEmptyTitle    = errors.New("title cannot be empty")
	ErrEmptyContent  = errors.New("content cannot be empty")
)

// Note представляет собой заметку пользователя.
// UserID - единственный владелец; SharedWith - пользователи с правом чтения.
type Note struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	SharedWith []string  `json:"sharedWith"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewNote создает новую заметку с указанным владельцем, заголовком и содержимым.
func NewNote(userID, title, content string) *Note {
	now := time.Now()
	return &Note{
		UserID:     userID,
		Title:      title,
		Content:    content,
		SharedWith: make([]string, 0),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsOwnedBy сообщает, является ли пользователь владельцем заметки.
func (n *Note) IsOwnedBy(userID string) bool {
	return n.UserID == userID
}

// IsSharedWith сообщает, предоставлен ли пользователю доступ на чтение.
func (n *Note) IsSharedWith(userID string) bool {
	for _, id := range n.SharedWith {
		if id == userID {
			return true
		}
	}
	return false
}

// IsVisibleTo сообщает, может ли пользователь читать заметку.
func (n *Note) IsVisibleTo(userID string) bool {
	return n.IsOwnedBy(userID) || n.IsSharedWith(userID)
}
