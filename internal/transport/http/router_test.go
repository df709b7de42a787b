package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"churchapp/internal/domain"
	"churchapp/internal/service"
	"churchapp/internal/service/impl"
	"churchapp/internal/store"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeMail remembers the last OTP and reset link so tests can walk the
// full verify and reset flows end to end.
type fakeMail struct {
	mu       sync.Mutex
	lastCode string
	lastLink string
}

func (f *fakeMail) SendOTP(ctx context.Context, to, firstName, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastCode = code
	return nil
}

func (f *fakeMail) SendWelcome(ctx context.Context, to, firstName string) error { return nil }

func (f *fakeMail) SendPasswordReset(ctx context.Context, to, firstName, link, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastCode = code
	f.lastLink = link
	return nil
}

type testEnv struct {
	srv   *httptest.Server
	store *store.Store
	mails *fakeMail
}

type nullGateway struct{}

func (nullGateway) Name() string { return "null" }
func (nullGateway) Charge(ctx context.Context, amountCents int64, currency string) (string, string, error) {
	return "null_ref", "00", nil
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	err = db.AutoMigrate(
		&domain.UserProfile{}, &domain.AuthToken{}, &domain.ChurchBranch{},
		&domain.Event{}, &domain.Sermon{}, &domain.Tag{}, &domain.Post{},
		&domain.MediaAsset{}, &domain.Transaction{}, &domain.Donation{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	st := store.New(db)
	mails := &fakeMail{}
	tokens := impl.NewTokenService(st, 20)
	links := impl.NewResetLinkSigner([]byte("router-test-secret"), time.Hour, "church.example.org")
	auth := impl.NewAuthServiceImpl(st, impl.NewPasswordServiceArgon2id(), tokens, mails, links, 6)

	router := NewRouter(Options{
		Auth:    auth,
		Tokens:  tokens,
		Church:  impl.NewChurchService(st),
		Content: impl.NewContentService(st),
		Giving:  impl.NewGivingService(st, nullGateway{}),
		Links:   links,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv, store: st, mails: mails}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, e.srv.URL+path, &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func (e *testEnv) registerAndVerify(t *testing.T, email, username string) {
	t.Helper()
	resp, body := e.do(t, http.MethodPost, "/register/", "", map[string]any{
		"email":     email,
		"username":  username,
		"password":  "sup3rsecret",
		"password2": "sup3rsecret",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, body %v", resp.StatusCode, body)
	}
	resp, body = e.do(t, http.MethodPost, "/register/verify/", "", map[string]any{
		"email":    email,
		"otp_code": e.mails.lastCode,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("verify status = %d, body %v", resp.StatusCode, body)
	}
}

func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()
	resp, body := e.do(t, http.MethodPost, "/login/", "", map[string]any{
		"email":    email,
		"password": "sup3rsecret",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, body %v", resp.StatusCode, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("no token in %v", body)
	}
	return token
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	resp, err := http.Get(env.srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestRegistrationFlow(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndVerify(t, "flow@example.org", "flow")

	user, err := env.store.Users().GetByEmail(context.Background(), "flow@example.org")
	if err != nil {
		t.Fatal(err)
	}
	if !user.EmailVerified {
		t.Error("user not verified after flow")
	}

	// Duplicate registration answers 400 with the known message.
	resp, body := env.do(t, http.MethodPost, "/register/", "", map[string]any{
		"email":     "flow@example.org",
		"username":  "flow2",
		"password":  "sup3rsecret",
		"password2": "sup3rsecret",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("dup status = %d", resp.StatusCode)
	}
	if body["error"] != "email exists" {
		t.Errorf("dup body = %v", body)
	}
}

func TestLoginAndProfile(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndVerify(t, "me@example.org", "me")
	token := env.login(t, "me@example.org")

	resp, body := env.do(t, http.MethodGet, "/profile/", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("profile status = %d", resp.StatusCode)
	}
	if body["email"] != "me@example.org" {
		t.Errorf("profile = %v", body)
	}
	if _, leaked := body["passwordHash"]; leaked {
		t.Error("password hash serialized in profile")
	}

	resp, _ = env.do(t, http.MethodGet, "/profile/", "bogus", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad token status = %d", resp.StatusCode)
	}
	resp, _ = env.do(t, http.MethodGet, "/profile/", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no token status = %d", resp.StatusCode)
	}

	phone := "+233501234567"
	resp, body = env.do(t, http.MethodPatch, "/profile/update/", token, map[string]any{"phone_number": phone})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d, body %v", resp.StatusCode, body)
	}
	if body["phoneNumber"] != phone {
		t.Errorf("update body = %v", body)
	}
}

func TestLoginFailureShape(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndVerify(t, "shape@example.org", "shape")

	badPass, bodyA := env.do(t, http.MethodPost, "/login/", "", map[string]any{
		"email": "shape@example.org", "password": "wrongwrong1",
	})
	noUser, bodyB := env.do(t, http.MethodPost, "/login/", "", map[string]any{
		"email": "ghost@example.org", "password": "wrongwrong1",
	})
	// Unknown account and wrong password answer identically.
	if badPass.StatusCode != http.StatusUnauthorized || noUser.StatusCode != http.StatusUnauthorized {
		t.Fatalf("statuses = %d, %d", badPass.StatusCode, noUser.StatusCode)
	}
	if fmt.Sprint(bodyA) != fmt.Sprint(bodyB) {
		t.Errorf("login failures leak account existence: %v vs %v", bodyA, bodyB)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndVerify(t, "pw@example.org", "pw")

	// Unknown accounts are reported as missing on this endpoint.
	resp, _ := env.do(t, http.MethodPost, "/password/reset/request/", "", map[string]any{"email": "ghost@example.org"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown account status = %d", resp.StatusCode)
	}

	resp, _ = env.do(t, http.MethodPost, "/password/reset/request/", "", map[string]any{"email": "pw@example.org"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("request status = %d", resp.StatusCode)
	}

	// Confirm through the emailed link: token in query, no email in body.
	link := env.mails.lastLink
	idx := strings.Index(link, "?token=")
	if idx < 0 {
		t.Fatalf("no token in link %q", link)
	}
	resp, body := env.do(t, http.MethodPost, "/password/reset/confirm/"+link[idx:], "", map[string]any{
		"otp_code":      env.mails.lastCode,
		"new_password":  "brandnewpass1",
		"new_password2": "brandnewpass1",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("confirm status = %d, body %v", resp.StatusCode, body)
	}

	// Old password is dead, new one works.
	resp, _ = env.do(t, http.MethodPost, "/login/", "", map[string]any{"email": "pw@example.org", "password": "sup3rsecret"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("old password status = %d", resp.StatusCode)
	}
	resp, _ = env.do(t, http.MethodPost, "/login/", "", map[string]any{"email": "pw@example.org", "password": "brandnewpass1"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("new password status = %d", resp.StatusCode)
	}
}

func TestBranchRoleGate(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndVerify(t, "member@example.org", "member")
	memberToken := env.login(t, "member@example.org")

	// Plain members cannot create branches.
	resp, _ := env.do(t, http.MethodPost, "/branches/", memberToken, map[string]any{"name": "Osu", "address": "Oxford St"})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("member create status = %d", resp.StatusCode)
	}

	// Promote to staff and retry.
	ctx := context.Background()
	user, err := env.store.Users().GetByEmail(ctx, "member@example.org")
	if err != nil {
		t.Fatal(err)
	}
	user.Role = domain.RoleStaff
	if err := env.store.Users().UpdateProfile(ctx, user); err != nil {
		t.Fatal(err)
	}
	resp, body := env.do(t, http.MethodPost, "/branches/", memberToken, map[string]any{"name": "Osu", "address": "Oxford St"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("staff create status = %d, body %v", resp.StatusCode, body)
	}

	// Listing is public.
	resp, body = env.do(t, http.MethodGet, "/branches/", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	if body["count"] != float64(1) {
		t.Errorf("list body = %v", body)
	}
}

func TestProfileRoleLockdown(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndVerify(t, "climber@example.org", "climber")
	token := env.login(t, "climber@example.org")

	// A member cannot hand themselves an administrative role.
	resp, body := env.do(t, http.MethodPatch, "/profile/update/", token, map[string]any{"role": domain.RoleAdmin})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("self-promotion status = %d, body %v", resp.StatusCode, body)
	}

	// And the staff gate still holds afterwards.
	resp, _ = env.do(t, http.MethodPost, "/branches/", token, map[string]any{"name": "Osu", "address": "Oxford St"})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("branch create status = %d", resp.StatusCode)
	}

	user, err := env.store.Users().GetByEmail(context.Background(), "climber@example.org")
	if err != nil {
		t.Fatal(err)
	}
	if user.Role != domain.RoleMember {
		t.Errorf("role changed to %q", user.Role)
	}
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndVerify(t, "out@example.org", "out")
	token := env.login(t, "out@example.org")

	resp, _ := env.do(t, http.MethodPost, "/logout/", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout status = %d", resp.StatusCode)
	}
	// The revoked token no longer authenticates.
	resp, _ = env.do(t, http.MethodGet, "/profile/", token, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("post-logout profile status = %d", resp.StatusCode)
	}
	// A fresh login mints a new key.
	again := env.login(t, "out@example.org")
	if again == token {
		t.Error("login reissued the revoked key")
	}
}

func TestDonationEndpoints(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndVerify(t, "giver@example.org", "giver")
	token := env.login(t, "giver@example.org")

	resp, body := env.do(t, http.MethodPost, "/donations/", token, map[string]any{"amount_cents": 2500})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("donate status = %d, body %v", resp.StatusCode, body)
	}
	if body["status"] != domain.TxnCompleted {
		t.Errorf("donate body = %v", body)
	}

	resp, body = env.do(t, http.MethodGet, "/donations/", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("history status = %d", resp.StatusCode)
	}
	if body["count"] != float64(1) {
		t.Errorf("history body = %v", body)
	}

	resp, _ = env.do(t, http.MethodPost, "/donations/", "", map[string]any{"amount_cents": 2500})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous donate status = %d", resp.StatusCode)
	}
}

func TestContentEndpoints(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndVerify(t, "writer@example.org", "writer")
	token := env.login(t, "writer@example.org")

	// Writes need a session.
	resp, _ := env.do(t, http.MethodPost, "/articles/", "", map[string]any{"title": "x", "body": "y"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous create status = %d", resp.StatusCode)
	}

	resp, body := env.do(t, http.MethodPost, "/articles/", token, map[string]any{
		"title": "Building Fund Update",
		"body":  "The roof is on.",
		"tags":  []string{"news"},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, body %v", resp.StatusCode, body)
	}
	if body["kind"] != domain.PostArticle {
		t.Errorf("create body = %v", body)
	}

	// Reading is public, and blog posts do not leak into articles.
	resp, body = env.do(t, http.MethodGet, "/articles/", "", nil)
	if resp.StatusCode != http.StatusOK || body["count"] != float64(1) {
		t.Fatalf("article list = %d, %v", resp.StatusCode, body)
	}
	resp, body = env.do(t, http.MethodGet, "/blogposts/", "", nil)
	if resp.StatusCode != http.StatusOK || body["count"] != float64(0) {
		t.Fatalf("blogpost list = %d, %v", resp.StatusCode, body)
	}

	// Tag reads are members-only.
	resp, _ = env.do(t, http.MethodGet, "/tags/", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous tags status = %d", resp.StatusCode)
	}
	resp, body = env.do(t, http.MethodGet, "/tags/", token, nil)
	if resp.StatusCode != http.StatusOK || body["count"] != float64(1) {
		t.Fatalf("tags = %d, %v", resp.StatusCode, body)
	}

	// Media metadata enforces per-kind extensions.
	resp, _ = env.do(t, http.MethodPost, "/images/", token, map[string]any{
		"title": "Choir", "url": "https://cdn.example.org/choir.mp4",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad image ext status = %d", resp.StatusCode)
	}
	resp, body = env.do(t, http.MethodPost, "/images/", token, map[string]any{
		"title": "Choir", "url": "https://cdn.example.org/choir.jpg",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("image create status = %d, body %v", resp.StatusCode, body)
	}
}

func TestAccountDelete(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndVerify(t, "gone@example.org", "gone")
	token := env.login(t, "gone@example.org")

	resp, _ := env.do(t, http.MethodPost, "/account/delete/", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}
	// The session died with the account.
	resp, _ = env.do(t, http.MethodGet, "/profile/", token, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("post-delete profile status = %d", resp.StatusCode)
	}
}

var _ service.EmailService = (*fakeMail)(nil)
