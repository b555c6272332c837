package httpapi

import (
	"time"

	"github.com/dmitrijs2005/yogastudio/internal/common"
	"github.com/dmitrijs2005/yogastudio/internal/server/models"
	"github.com/dmitrijs2005/yogastudio/internal/server/services"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

// JwtResponse is the body of a successful login. Username carries the email.
type JwtResponse struct {
	Token     string `json:"token"`
	Type      string `json:"type"`
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Admin     bool   `json:"admin"`
}

func newJwtResponse(r *services.LoginResult) JwtResponse {
	return JwtResponse{
		Token:     r.Token,
		Type:      common.TokenType,
		ID:        r.ID,
		Username:  r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Admin:     r.Admin,
	}
}

type SessionDto struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Date        *time.Time `json:"date"`
	TeacherID   int64      `json:"teacher_id"`
	Description string     `json:"description"`
	Users       []int64    `json:"users"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

func newSessionDto(s *models.Session) SessionDto {
	users := s.Users
	if users == nil {
		users = []int64{}
	}
	date := s.Date
	return SessionDto{
		ID:          s.ID,
		Name:        s.Name,
		Date:        &date,
		TeacherID:   s.TeacherID,
		Description: s.Description,
		Users:       users,
		CreatedAt:   timePtr(s.CreatedAt),
		UpdatedAt:   timePtr(s.UpdatedAt),
	}
}

// model drops id, roster and timestamps, which clients cannot set.
func (d SessionDto) model() *models.Session {
	s := &models.Session{
		Name:        d.Name,
		TeacherID:   d.TeacherID,
		Description: d.Description,
	}
	if d.Date != nil {
		s.Date = *d.Date
	}
	return s
}

type TeacherDto struct {
	ID        int64      `json:"id"`
	LastName  string     `json:"lastName"`
	FirstName string     `json:"firstName"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func newTeacherDto(t *models.Teacher) TeacherDto {
	return TeacherDto{
		ID:        t.ID,
		LastName:  t.LastName,
		FirstName: t.FirstName,
		CreatedAt: timePtr(t.CreatedAt),
		UpdatedAt: timePtr(t.UpdatedAt),
	}
}

type UserDto struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	LastName  string     `json:"lastName"`
	FirstName string     `json:"firstName"`
	Admin     bool       `json:"admin"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func newUserDto(u *models.User) UserDto {
	return UserDto{
		ID:        u.ID,
		Email:     u.Email,
		LastName:  u.LastName,
		FirstName: u.FirstName,
		Admin:     u.Admin,
		CreatedAt: timePtr(u.CreatedAt),
		UpdatedAt: timePtr(u.UpdatedAt),
	}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
