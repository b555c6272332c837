package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/yogastudio/internal/common"
	"github.com/dmitrijs2005/yogastudio/internal/logging"
	"github.com/dmitrijs2005/yogastudio/internal/server/models"
	"github.com/dmitrijs2005/yogastudio/internal/server/services"
)

var stamp = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

// tokenAuthorizer admits "Bearer <email>" for the emails it knows.
type tokenAuthorizer struct {
	principals map[string]*services.Principal
}

func (a *tokenAuthorizer) Authorize(_ context.Context, header string) (*services.Principal, error) {
	tok, ok := strings.CutPrefix(header, common.BearerPrefix)
	if !ok || tok == "" {
		return nil, common.ErrorUnauthorized
	}
	p, ok := a.principals[tok]
	if !ok {
		return nil, common.ErrorUnauthorized
	}
	return p, nil
}

type fakeAuth struct {
	registered []string
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*services.LoginResult, error) {
	if email == "yoga@studio.com" && password == "test!1234" {
		return &services.LoginResult{
			Token: "signed-token", ID: 1, Email: email,
			FirstName: "Admin", LastName: "Admin", Admin: true,
		}, nil
	}
	return nil, common.ErrInvalidCredentials
}

func (f *fakeAuth) Register(_ context.Context, email, firstName, lastName, _ string) (*models.User, error) {
	if email == "existing@studio.com" {
		return nil, common.ErrEmailTaken
	}
	f.registered = append(f.registered, email)
	return &models.User{ID: 10, Email: email, FirstName: firstName, LastName: lastName}, nil
}

type fakeSessions struct {
	items   map[int64]*models.Session
	created *models.Session
	updated *models.Session
	err     error
}

func (f *fakeSessions) FindAll(context.Context) ([]*models.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []*models.Session{}
	for id := int64(1); id <= int64(len(f.items)); id++ {
		if s, ok := f.items[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessions) FindByID(_ context.Context, id int64) (*models.Session, error) {
	if s, ok := f.items[id]; ok {
		return s, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeSessions) Create(_ context.Context, s *models.Session) (*models.Session, error) {
	if s.TeacherID != 1 {
		return nil, common.ErrInvalidReference
	}
	f.created = s
	cp := *s
	cp.ID, cp.Users, cp.CreatedAt, cp.UpdatedAt = 50, []int64{}, stamp, stamp
	return &cp, nil
}

func (f *fakeSessions) Update(_ context.Context, id int64, s *models.Session) (*models.Session, error) {
	cur, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	f.updated = s
	cp := *s
	cp.ID, cp.Users = id, cur.Users
	return &cp, nil
}

func (f *fakeSessions) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeLedger struct {
	rosters map[int64]map[int64]bool
	users   map[int64]bool
}

func (f *fakeLedger) Participate(_ context.Context, sid, uid int64) error {
	roster, ok := f.rosters[sid]
	if !ok || !f.users[uid] {
		return common.ErrorNotFound
	}
	if roster[uid] {
		return common.ErrAlreadyParticipating
	}
	roster[uid] = true
	return nil
}

func (f *fakeLedger) NoLongerParticipate(_ context.Context, sid, uid int64) error {
	roster, ok := f.rosters[sid]
	if !ok {
		return common.ErrorNotFound
	}
	if !roster[uid] {
		return common.ErrNotParticipating
	}
	delete(roster, uid)
	return nil
}

type fakeTeachers struct{}

func (fakeTeachers) FindAll(context.Context) ([]*models.Teacher, error) {
	return []*models.Teacher{
		{ID: 1, FirstName: "Margot", LastName: "DELAHAYE", CreatedAt: stamp, UpdatedAt: stamp},
		{ID: 2, FirstName: "Hélène", LastName: "THIERCELIN", CreatedAt: stamp, UpdatedAt: stamp},
	}, nil
}

func (fakeTeachers) FindByID(_ context.Context, id int64) (*models.Teacher, error) {
	if id == 1 {
		return &models.Teacher{ID: 1, FirstName: "Margot", LastName: "DELAHAYE"}, nil
	}
	return nil, common.ErrorNotFound
}

type fakeUsers struct {
	items   map[int64]*models.User
	deleted []int64
}

func (f *fakeUsers) FindByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := f.items[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsers) Delete(_ context.Context, p *services.Principal, id int64) error {
	u, ok := f.items[id]
	if !ok {
		return common.ErrorNotFound
	}
	if err := services.AuthorizeOwnerOrAdmin(p, u.Email); err != nil {
		return err
	}
	f.deleted = append(f.deleted, id)
	delete(f.items, id)
	return nil
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

type fixture struct {
	router   http.Handler
	auth     *fakeAuth
	sessions *fakeSessions
	ledger   *fakeLedger
	users    *fakeUsers
	pinger   *fakePinger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		auth: &fakeAuth{},
		sessions: &fakeSessions{items: map[int64]*models.Session{
			1: {ID: 1, Name: "Morning flow", Date: stamp, TeacherID: 1, Description: "Vinyasa", Users: []int64{2}, CreatedAt: stamp, UpdatedAt: stamp},
		}},
		ledger: &fakeLedger{
			rosters: map[int64]map[int64]bool{1: {}},
			users:   map[int64]bool{1: true, 2: true, 3: true},
		},
		users: &fakeUsers{items: map[int64]*models.User{
			1: {ID: 1, Email: "yoga@studio.com", Admin: true, Password: "$2a$10$secret"},
			2: {ID: 2, Email: "jane@studio.com", FirstName: "Jane", LastName: "Doe", Password: "$2a$10$secret"},
			3: {ID: 3, Email: "bob@studio.com"},
		}},
		pinger: &fakePinger{},
	}
	authz := &tokenAuthorizer{principals: map[string]*services.Principal{
		"admin-token": {ID: 1, Email: "yoga@studio.com", Admin: true},
		"jane-token":  {ID: 2, Email: "jane@studio.com"},
		"bob-token":   {ID: 3, Email: "bob@studio.com"},
	}}
	h := &Handler{
		Auth:     f.auth,
		Sessions: f.sessions,
		Ledger:   f.ledger,
		Teachers: fakeTeachers{},
		Users:    f.users,
		Health:   f.pinger,
	}
	f.router = NewRouter(h, authz, Options{
		APIPrefix:          "/api",
		CORSAllowedOrigins: []string{"http://localhost:4200"},
	}, logging.Nop())
	return f
}

func (f *fixture) do(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}
