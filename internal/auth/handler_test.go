package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/harborlight/harborlight/internal/auth"
	"github.com/harborlight/harborlight/internal/authz"
	"github.com/harborlight/harborlight/internal/shared"
	_ "github.com/harborlight/harborlight/testing"
)

type stubRepo struct {
	account *auth.Account
}

func (s *stubRepo) FindByEmail(ctx context.Context, email string) (*auth.Account, error) {
	if s.account == nil || s.account.Email != email {
		return nil, shared.ErrNotFound
	}
	return s.account, nil
}

func (s *stubRepo) FindByID(ctx context.Context, id int64) (*auth.Account, error) {
	if s.account == nil || s.account.ID != id {
		return nil, shared.ErrNotFound
	}
	return s.account, nil
}

func (s *stubRepo) CreateAccount(ctx context.Context, email, name, hash string) (*auth.Account, error) {
	return &auth.Account{ID: 2, Email: email, Name: name, Role: authz.RoleVolunteer, Status: authz.StatusPending}, nil
}

func (s *stubRepo) CreateSession(ctx context.Context, id string, userID int64, expiresAt time.Time, ip, ua string) error {
	return nil
}

func (s *stubRepo) DeleteSession(ctx context.Context, id string) error {
	return nil
}

func newHandler(t *testing.T, repo auth.Repository) (*auth.Handler, *shared.SessionManager) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessions := shared.NewSessionManager(client, "test_session", "secret", time.Hour, false)
	csrf := shared.NewCSRFManager("csrfsecret")
	provider := auth.NewActorProvider(client, repo, 5*time.Minute)
	handler := auth.NewHandler(nil, auth.NewService(repo), provider, sessions, csrf)
	return handler, sessions
}

func postLogin(t *testing.T, handler *auth.Handler, sessions *shared.SessionManager, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	sess, err := sessions.Load(context.Background(), req)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	ctx := shared.ContextWithSession(req.Context(), sess)
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	router := chi.NewRouter()
	router.Route("/auth", handler.MountRoutes)
	router.ServeHTTP(rr, req)
	if err := sessions.Commit(ctx, rr, req, sess); err != nil {
		t.Fatalf("commit session: %v", err)
	}
	return rr
}

func TestLoginSuccess(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("correct-horse-battery"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	handler, sessions := newHandler(t, &stubRepo{account: &auth.Account{
		ID: 1, Email: "user@org.test", PasswordHash: string(hashed),
		Role: authz.RoleVolunteer, Status: authz.StatusActive,
	}})

	rr := postLogin(t, handler, sessions, `{"email":"user@org.test","password":"correct-horse-battery"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"csrf_token"`) {
		t.Fatalf("expected csrf token in response, got %s", rr.Body.String())
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct-horse-battery"), bcrypt.MinCost)
	handler, sessions := newHandler(t, &stubRepo{account: &auth.Account{
		ID: 1, Email: "user@org.test", PasswordHash: string(hashed),
		Role: authz.RoleVolunteer, Status: authz.StatusActive,
	}})

	rr := postLogin(t, handler, sessions, `{"email":"user@org.test","password":"wrong-password"}`)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestLoginPendingAccountRejected(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct-horse-battery"), bcrypt.MinCost)
	handler, sessions := newHandler(t, &stubRepo{account: &auth.Account{
		ID: 1, Email: "pending@org.test", PasswordHash: string(hashed),
		Role: authz.RoleAdmin, Status: authz.StatusPending,
	}})

	rr := postLogin(t, handler, sessions, `{"email":"pending@org.test","password":"correct-horse-battery"}`)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for pending account, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Pending Approval") {
		t.Fatalf("expected pending problem title, got %s", rr.Body.String())
	}
}

func TestLoginSuspendedAccountRejected(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct-horse-battery"), bcrypt.MinCost)
	handler, sessions := newHandler(t, &stubRepo{account: &auth.Account{
		ID: 1, Email: "gone@org.test", PasswordHash: string(hashed),
		Role: authz.RoleStaff, Status: authz.StatusSuspended,
	}})

	rr := postLogin(t, handler, sessions, `{"email":"gone@org.test","password":"correct-horse-battery"}`)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for suspended account, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Account Blocked") {
		t.Fatalf("expected blocked problem title, got %s", rr.Body.String())
	}
}
