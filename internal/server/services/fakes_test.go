package services

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/yogastudio/internal/common"
	"github.com/dmitrijs2005/yogastudio/internal/dbx"
	"github.com/dmitrijs2005/yogastudio/internal/server/models"
	"github.com/dmitrijs2005/yogastudio/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/yogastudio/internal/server/repositories/teachers"
	"github.com/dmitrijs2005/yogastudio/internal/server/repositories/users"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

var errBoom = errors.New("boom")

var fixedNow = time.Unix(1_760_000_000, 0)

// memStore is an in-memory stand-in for the PostgreSQL repositories.
type memStore struct {
	mu       sync.Mutex
	users    map[int64]*models.User
	sessions map[int64]*models.Session
	teachers map[int64]*models.Teacher
	nextID   int64

	userSaves   int
	userDeletes int

	usersErr    error
	sessionsErr error
	saveErr     error
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[int64]*models.User{},
		sessions: map[int64]*models.Session{},
		teachers: map[int64]*models.Teacher{},
		nextID:   100,
	}
}

func (s *memStore) addUser(u models.User) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := u
	s.users[u.ID] = &cp
	return &cp
}

func (s *memStore) addSession(sess models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := sess
	cp.Users = slices.Clone(sess.Users)
	s.sessions[sess.ID] = &cp
}

func (s *memStore) roster(id int64) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil
	}
	out := slices.Clone(sess.Users)
	slices.Sort(out)
	return out
}

type memUsers struct{ s *memStore }

func (r *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.usersErr != nil {
		return nil, r.s.usersErr
	}
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, common.ErrorNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (r *memUsers) FindByID(_ context.Context, id int64) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.usersErr != nil {
		return nil, r.s.usersErr
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUsers) Save(_ context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.saveErr != nil {
		return nil, r.s.saveErr
	}
	r.s.userSaves++
	if u.ID == 0 {
		r.s.nextID++
		u.ID = r.s.nextID
		u.CreatedAt = fixedNow
	}
	u.UpdatedAt = fixedNow
	cp := *u
	r.s.users[u.ID] = &cp
	return u, nil
}

func (r *memUsers) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return common.ErrorNotFound
	}
	r.s.userDeletes++
	delete(r.s.users, id)
	return nil
}

type memSessions struct{ s *memStore }

func (r *memSessions) FindAll(context.Context) ([]*models.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.sessionsErr != nil {
		return nil, r.s.sessionsErr
	}
	out := make([]*models.Session, 0, len(r.s.sessions))
	for _, sess := range r.s.sessions {
		cp := *sess
		cp.Users = slices.Clone(sess.Users)
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *models.Session) int { return int(a.ID - b.ID) })
	return out, nil
}

func (r *memSessions) FindByID(_ context.Context, id int64) (*models.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.sessionsErr != nil {
		return nil, r.s.sessionsErr
	}
	sess, ok := r.s.sessions[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *sess
	cp.Users = slices.Clone(sess.Users)
	return &cp, nil
}

func (r *memSessions) Create(_ context.Context, sess *models.Session) (*models.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.teachers[sess.TeacherID]; !ok {
		return nil, common.ErrInvalidReference
	}
	r.s.nextID++
	sess.ID = r.s.nextID
	sess.Users = []int64{}
	sess.CreatedAt, sess.UpdatedAt = fixedNow, fixedNow
	cp := *sess
	r.s.sessions[sess.ID] = &cp
	return sess, nil
}

func (r *memSessions) Update(_ context.Context, sess *models.Session) (*models.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.sessions[sess.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if _, ok := r.s.teachers[sess.TeacherID]; !ok {
		return nil, common.ErrInvalidReference
	}
	sess.Users = slices.Clone(cur.Users)
	sess.CreatedAt = cur.CreatedAt
	sess.UpdatedAt = fixedNow.Add(time.Minute)
	cp := *sess
	r.s.sessions[sess.ID] = &cp
	return sess, nil
}

func (r *memSessions) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sessions[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.sessions, id)
	return nil
}

func (r *memSessions) AddParticipant(_ context.Context, sessionID, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sess, ok := r.s.sessions[sessionID]
	if !ok {
		return common.ErrorNotFound
	}
	if slices.Contains(sess.Users, userID) {
		return common.ErrAlreadyParticipating
	}
	sess.Users = append(sess.Users, userID)
	return nil
}

func (r *memSessions) RemoveParticipant(_ context.Context, sessionID, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sess, ok := r.s.sessions[sessionID]
	if !ok {
		return common.ErrorNotFound
	}
	i := slices.Index(sess.Users, userID)
	if i < 0 {
		return common.ErrNotParticipating
	}
	sess.Users = slices.Delete(sess.Users, i, i+1)
	return nil
}

type memTeachers struct{ s *memStore }

func (r *memTeachers) FindAll(context.Context) ([]*models.Teacher, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Teacher, 0, len(r.s.teachers))
	for _, t := range r.s.teachers {
		cp := *t
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *models.Teacher) int { return int(a.ID - b.ID) })
	return out, nil
}

func (r *memTeachers) FindByID(_ context.Context, id int64) (*models.Teacher, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.teachers[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *t
	return &cp, nil
}

type fakeRepoManager struct{ store *memStore }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository           { return &memUsers{m.store} }
func (m *fakeRepoManager) Sessions(dbx.DBTX) sessions.Repository     { return &memSessions{m.store} }
func (m *fakeRepoManager) Teachers(dbx.DBTX) teachers.Repository     { return &memTeachers{m.store} }

// fakeHasher stores "hashed:<password>" and counts comparisons.
type fakeHasher struct {
	mu       sync.Mutex
	compares int
	hashErr  error
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + password, nil
}

func (h *fakeHasher) Compare(hash, password string) error {
	h.mu.Lock()
	h.compares++
	h.mu.Unlock()
	if !strings.HasPrefix(hash, "hashed:") {
		return errBoom
	}
	if hash != "hashed:"+password {
		return common.ErrInvalidCredentials
	}
	return nil
}
