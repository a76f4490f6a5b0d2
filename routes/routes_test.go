package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JeffersonNayron/Turma-B/config"
	"github.com/JeffersonNayron/Turma-B/controllers"
	"github.com/JeffersonNayron/Turma-B/middleware"
	"github.com/JeffersonNayron/Turma-B/models"
	"github.com/JeffersonNayron/Turma-B/services"
	"github.com/JeffersonNayron/Turma-B/store"
	"github.com/JeffersonNayron/Turma-B/utils"

	"github.com/gin-gonic/gin"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time           { return c.now }
func (c *fixedClock) Location() *time.Location { return c.now.Location() }

type testServer struct {
	router *gin.Engine
	clock  *fixedClock
}

const (
	adminPassword = "admin-secret"
	teamPassword  = "team-secret"
)

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	db, err := config.OpenDB(":memory:", false)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	clock := &fixedClock{now: time.Date(2026, time.March, 2, 9, 0, 0, 0, loc)}
	attendance := services.NewAttendanceService(store.NewPersonStore(db), clock, services.DefaultActivityDuration)
	auth := services.NewAuthService(store.NewUserStore(db), services.NewMemorySessionStore(), utils.NewTokenManager("test-secret"), time.Hour)

	ctx := context.Background()
	if _, err := auth.CreateUser(ctx, models.RoleAdmin, adminPassword); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	if _, err := auth.CreateUser(ctx, models.RoleTeam, teamPassword); err != nil {
		t.Fatalf("create team: %v", err)
	}

	r := gin.New()
	middleware.SetupMiddleware(r)
	RegisterRoutes(r, Controllers{
		People: controllers.NewPersonController(attendance),
		Auth:   controllers.NewAuthController(auth, false),
	}, auth, Options{})

	return &testServer{router: r, clock: clock}
}

func (s *testServer) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func (s *testServer) login(t *testing.T, password string, cookies ...*http.Cookie) *http.Cookie {
	t.Helper()

	rr := s.do(t, http.MethodPost, "/login", gin.H{"password": password}, cookies...)
	if rr.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200 (body %s)", rr.Code, rr.Body.String())
	}
	if c := lastSessionCookie(rr); c != nil && c.Value != "" {
		return c
	}
	t.Fatal("login did not set the session cookie")
	return nil
}

// lastSessionCookie returns the final Set-Cookie for the session, which is
// the one a browser keeps.
func lastSessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	var last *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			last = c
		}
	}
	return last
}

func (s *testServer) people(t *testing.T) []models.PersonResponse {
	t.Helper()

	rr := s.do(t, http.MethodGet, "/pessoas", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("GET /pessoas status = %d", rr.Code)
	}
	var raw []struct {
		ID        uint    `json:"id"`
		Name      string  `json:"name"`
		Location  string  `json:"location"`
		StartTime *string `json:"startTime"`
		EndTime   *string `json:"endTime"`
		Status    string  `json:"status"`
		Message   string  `json:"message"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode /pessoas: %v", err)
	}

	statuses := map[string]models.Status{
		"not_started": models.StatusNotStarted,
		"in_progress": models.StatusInProgress,
		"finished":    models.StatusFinished,
	}
	out := make([]models.PersonResponse, len(raw))
	for i, p := range raw {
		status, ok := statuses[p.Status]
		if !ok {
			t.Fatalf("unexpected status %q", p.Status)
		}
		out[i] = models.PersonResponse{
			ID: p.ID, Name: p.Name, Location: p.Location,
			StartTime: p.StartTime, EndTime: p.EndTime,
			Status: status, Message: p.Message,
		}
	}
	return out
}

func TestAttendanceFlow(t *testing.T) {
	s := newTestServer(t)
	loc := s.clock.now.Location()

	if rr := s.do(t, http.MethodPost, "/adicionar", gin.H{"name": "Ana", "location": "Sala 1"}); rr.Code != http.StatusCreated {
		t.Fatalf("add status = %d, want 201 (body %s)", rr.Code, rr.Body.String())
	}

	people := s.people(t)
	if len(people) != 1 || people[0].Status != models.StatusNotStarted {
		t.Fatalf("people = %+v, want one not started", people)
	}

	if rr := s.do(t, http.MethodPost, "/iniciar", gin.H{"id": 1}); rr.Code != http.StatusOK {
		t.Fatalf("start status = %d, want 200", rr.Code)
	}
	people = s.people(t)
	if people[0].Status != models.StatusInProgress || *people[0].EndTime != "10:15:00" {
		t.Fatalf("after start = %+v, want in progress until 10:15:00", people[0])
	}

	s.clock.now = time.Date(2026, time.March, 2, 10, 15, 0, 0, loc)
	if got := s.people(t)[0].Status; got != models.StatusFinished {
		t.Fatalf("status at 10:15:00 = %v, want finished", got)
	}

	if rr := s.do(t, http.MethodPost, "/editarHorario", gin.H{"id": 1, "startTime": "10:00:00", "endTime": "11:00:00"}); rr.Code != http.StatusOK {
		t.Fatalf("edit time status = %d, want 200 (body %s)", rr.Code, rr.Body.String())
	}
	if got := s.people(t)[0].Status; got != models.StatusInProgress {
		t.Fatalf("status after edit = %v, want in progress", got)
	}

	if rr := s.do(t, http.MethodPost, "/editarLocal", gin.H{"id": 1, "location": "Sala 9"}); rr.Code != http.StatusOK {
		t.Fatalf("edit location status = %d, want 200", rr.Code)
	}

	if rr := s.do(t, http.MethodPost, "/limpar", nil); rr.Code != http.StatusOK {
		t.Fatalf("reset status = %d, want 200", rr.Code)
	}
	people = s.people(t)
	if len(people) != 1 || people[0].StartTime != nil || people[0].Location != "Sala 9" {
		t.Fatalf("after reset = %+v, want kept person without timing", people)
	}

	if rr := s.do(t, http.MethodPost, "/excluir", gin.H{"id": 1}); rr.Code != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", rr.Code)
	}
	if people = s.people(t); len(people) != 0 {
		t.Fatalf("after delete = %+v, want empty", people)
	}
}

func TestAttendanceErrors(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/adicionar", gin.H{"name": "Ana", "location": "Sala 1"})

	tests := []struct {
		name string
		path string
		body any
		want int
	}{
		{"add without location", "/adicionar", gin.H{"name": "Ana"}, http.StatusBadRequest},
		{"add blank name", "/adicionar", gin.H{"name": "  ", "location": "Sala"}, http.StatusBadRequest},
		{"start unknown", "/iniciar", gin.H{"id": 99}, http.StatusNotFound},
		{"start without id", "/iniciar", gin.H{}, http.StatusBadRequest},
		{"malformed time", "/editarHorario", gin.H{"id": 1, "startTime": "9h"}, http.StatusBadRequest},
		{"edit time unknown", "/editarHorario", gin.H{"id": 99, "startTime": "09:00:00"}, http.StatusNotFound},
		{"edit location unknown", "/editarLocal", gin.H{"id": 99, "location": "x"}, http.StatusNotFound},
		{"delete unknown", "/excluir", gin.H{"id": 99}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := s.do(t, http.MethodPost, tt.path, tt.body)
			if rr.Code != tt.want {
				t.Fatalf("status = %d, want %d (body %s)", rr.Code, tt.want, rr.Body.String())
			}
			var body map[string]any
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil || body["error"] == nil {
				t.Fatalf("body = %s, want an error field", rr.Body.String())
			}
		})
	}

	if rr := s.do(t, http.MethodGet, "/pessoas/abc", nil); rr.Code != http.StatusBadRequest {
		t.Fatalf("GET /pessoas/abc status = %d, want 400", rr.Code)
	}
	if rr := s.do(t, http.MethodGet, "/pessoas/99", nil); rr.Code != http.StatusNotFound {
		t.Fatalf("GET /pessoas/99 status = %d, want 404", rr.Code)
	}
}

func TestSendMessageRequiresAdmin(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/adicionar", gin.H{"name": "Ana", "location": "Sala 1"})
	body := gin.H{"id": 1, "message": "Chegar cedo"}

	if rr := s.do(t, http.MethodPost, "/enviarMensagem", body); rr.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d, want 401", rr.Code)
	}

	team := s.login(t, teamPassword)
	if rr := s.do(t, http.MethodPost, "/enviarMensagem", body, team); rr.Code != http.StatusForbidden {
		t.Fatalf("team status = %d, want 403", rr.Code)
	}

	admin := s.login(t, adminPassword)
	if rr := s.do(t, http.MethodPost, "/enviarMensagem", body, admin); rr.Code != http.StatusOK {
		t.Fatalf("admin status = %d, want 200 (body %s)", rr.Code, rr.Body.String())
	}
	if got := s.people(t)[0].Message; got != "Chegar cedo" {
		t.Fatalf("message = %q, want %q", got, "Chegar cedo")
	}
}

func TestPurgeRequiresAdmin(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/adicionar", gin.H{"name": "Ana", "location": "Sala 1"})
	s.do(t, http.MethodPost, "/adicionar", gin.H{"name": "Bruno", "location": "Sala 2"})

	team := s.login(t, teamPassword)
	if rr := s.do(t, http.MethodPost, "/limparTudo", nil, team); rr.Code != http.StatusForbidden {
		t.Fatalf("team purge status = %d, want 403", rr.Code)
	}

	admin := s.login(t, adminPassword)
	if rr := s.do(t, http.MethodPost, "/limparTudo", nil, admin); rr.Code != http.StatusOK {
		t.Fatalf("admin purge status = %d, want 200", rr.Code)
	}
	if people := s.people(t); len(people) != 0 {
		t.Fatalf("people after purge = %+v, want none", people)
	}
}

func TestLoginLogout(t *testing.T) {
	s := newTestServer(t)

	if rr := s.do(t, http.MethodPost, "/login", gin.H{"password": "wrong-one"}); rr.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d, want 401", rr.Code)
	}
	if rr := s.do(t, http.MethodPost, "/login", gin.H{}); rr.Code != http.StatusBadRequest {
		t.Fatalf("missing password status = %d, want 400", rr.Code)
	}

	cookie := s.login(t, adminPassword)
	rr := s.do(t, http.MethodGet, "/session", nil, cookie)
	if rr.Code != http.StatusOK {
		t.Fatalf("session status = %d, want 200", rr.Code)
	}
	var session models.SessionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if session.Role != models.RoleAdmin {
		t.Fatalf("role = %q, want adm", session.Role)
	}

	if rr := s.do(t, http.MethodPost, "/logout", nil, cookie); rr.Code != http.StatusOK {
		t.Fatalf("logout status = %d, want 200", rr.Code)
	}
	if rr := s.do(t, http.MethodGet, "/session", nil, cookie); rr.Code != http.StatusUnauthorized {
		t.Fatalf("session after logout status = %d, want 401", rr.Code)
	}
}

func TestPortugueseRequestKeys(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, adminPassword)

	steps := []struct {
		path string
		body gin.H
		want int
	}{
		{"/adicionar", gin.H{"nome": "Ana", "local": "Sala 1"}, http.StatusCreated},
		{"/editarHorario", gin.H{"id": 1, "hora_inicio": "08:30:00", "hora_fim": "09:30:00"}, http.StatusOK},
		{"/editarLocal", gin.H{"id": 1, "local": "Sala 4"}, http.StatusOK},
		{"/enviarMensagem", gin.H{"id": 1, "mensagem": "Trazer crachá"}, http.StatusOK},
		{"/adicionar", gin.H{"nome": "Bruno"}, http.StatusBadRequest},
		{"/editarHorario", gin.H{"id": 1, "hora_fim": "09:30:00"}, http.StatusBadRequest},
	}
	for _, step := range steps {
		if rr := s.do(t, http.MethodPost, step.path, step.body, admin); rr.Code != step.want {
			t.Fatalf("%s %v status = %d, want %d (body %s)", step.path, step.body, rr.Code, step.want, rr.Body.String())
		}
	}

	people := s.people(t)
	if len(people) != 1 {
		t.Fatalf("people = %+v, want one", people)
	}
	ana := people[0]
	if ana.Name != "Ana" || ana.Location != "Sala 4" || ana.Message != "Trazer crachá" {
		t.Fatalf("person = %+v, want Ana in Sala 4 with message", ana)
	}
	if ana.StartTime == nil || *ana.StartTime != "08:30:00" || *ana.EndTime != "09:30:00" {
		t.Fatalf("window = %v-%v, want 08:30:00-09:30:00", ana.StartTime, ana.EndTime)
	}
	if ana.Status != models.StatusInProgress {
		t.Fatalf("status at 09:00 = %v, want in progress", ana.Status)
	}
}

func TestStaleCookieKeepsPublicRoutesOpen(t *testing.T) {
	s := newTestServer(t)
	stale := s.login(t, adminPassword)
	if rr := s.do(t, http.MethodPost, "/logout", nil, stale); rr.Code != http.StatusOK {
		t.Fatalf("logout status = %d, want 200", rr.Code)
	}

	// A restarted server shares the signing key but not the session store.
	restarted := newTestServer(t)

	for name, srv := range map[string]*testServer{"same server": s, "after restart": restarted} {
		t.Run(name, func(t *testing.T) {
			rr := srv.do(t, http.MethodGet, "/pessoas", nil, stale)
			if rr.Code != http.StatusOK {
				t.Fatalf("GET /pessoas status = %d, want 200 (body %s)", rr.Code, rr.Body.String())
			}
			if c := lastSessionCookie(rr); c == nil || c.MaxAge >= 0 {
				t.Fatalf("GET /pessoas did not clear the stale cookie: %+v", c)
			}

			if rr := srv.do(t, http.MethodPost, "/adicionar", gin.H{"name": "Ana", "location": "Sala 1"}, stale); rr.Code != http.StatusCreated {
				t.Fatalf("add status = %d, want 201 (body %s)", rr.Code, rr.Body.String())
			}

			if rr := srv.do(t, http.MethodGet, "/session", nil, stale); rr.Code != http.StatusUnauthorized {
				t.Fatalf("session status = %d, want 401", rr.Code)
			}
			if rr := srv.do(t, http.MethodPost, "/limparTudo", nil, stale); rr.Code != http.StatusUnauthorized {
				t.Fatalf("purge status = %d, want 401", rr.Code)
			}

			rr = srv.do(t, http.MethodPost, "/logout", nil, stale)
			if rr.Code != http.StatusOK {
				t.Fatalf("logout status = %d, want 200 (body %s)", rr.Code, rr.Body.String())
			}
			if c := lastSessionCookie(rr); c == nil || c.MaxAge >= 0 {
				t.Fatalf("logout did not clear the cookie: %+v", c)
			}

			fresh := srv.login(t, adminPassword, stale)
			if rr := srv.do(t, http.MethodGet, "/session", nil, fresh); rr.Code != http.StatusOK {
				t.Fatalf("session with new cookie status = %d, want 200", rr.Code)
			}
		})
	}
}

func TestVersionAndPing(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(t, http.MethodGet, "/api/version", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("version status = %d", rr.Code)
	}
	var version models.VersionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &version); err != nil {
		t.Fatalf("decode version: %v", err)
	}
	if version.Version != Version {
		t.Fatalf("version = %q, want %q", version.Version, Version)
	}

	if rr := s.do(t, http.MethodGet, "/ping", nil); rr.Code != http.StatusOK {
		t.Fatalf("ping status = %d", rr.Code)
	}
}
