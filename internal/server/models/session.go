package models

import (
	"slices"
	"time"
)

// Session is a scheduled class. Users is its roster of participant ids.
type Session struct {
	ID          int64
	Name        string
	Date        time.Time
	TeacherID   int64
	Description string
	Users       []int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasParticipant reports whether userID is on the roster.
func (s *Session) HasParticipant(userID int64) bool {
	return slices.Contains(s.Users, userID)
}
