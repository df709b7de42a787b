package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"churchapp/internal/domain"
	"churchapp/internal/store"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testStore opens an in-memory database migrated with the full schema.
// Max one connection so transactions and reads see the same memory DB.
func testStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&domain.UserProfile{},
		&domain.AuthToken{},
		&domain.ChurchBranch{},
		&domain.Event{},
		&domain.Sermon{},
		&domain.Tag{},
		&domain.Post{},
		&domain.MediaAsset{},
		&domain.Transaction{},
		&domain.Donation{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store.New(db)
}

// testPasswordService keeps argon2 costs low so the suite stays quick.
func testPasswordService() *PasswordServiceImpl {
	return &PasswordServiceImpl{
		cur: argon2Params{
			time:    1,
			memory:  8 * 1024,
			threads: 1,
			keyLen:  32,
			saltLen: 16,
		},
	}
}

// mailRecorder captures dispatches instead of delivering them.
type mailRecorder struct {
	mu    sync.Mutex
	kinds []string
	codes []string
	links []string
	fail  bool
}

type sendFailure struct{}

func (sendFailure) Error() string { return "smtp unavailable" }

func (m *mailRecorder) record(kind, code, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return sendFailure{}
	}
	m.kinds = append(m.kinds, kind)
	m.codes = append(m.codes, code)
	m.links = append(m.links, link)
	return nil
}

func (m *mailRecorder) SendOTP(ctx context.Context, to, firstName, code string) error {
	return m.record("otp", code, "")
}

func (m *mailRecorder) SendWelcome(ctx context.Context, to, firstName string) error {
	return m.record("welcome", "", "")
}

func (m *mailRecorder) SendPasswordReset(ctx context.Context, to, firstName, link, code string) error {
	return m.record("password_reset", code, link)
}

func (m *mailRecorder) lastCode() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.kinds) - 1; i >= 0; i-- {
		if m.codes[i] != "" {
			return m.codes[i]
		}
	}
	return ""
}

func (m *mailRecorder) sent() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.kinds...)
}

func testSigner() *ResetLinkSigner {
	return NewResetLinkSigner([]byte("test-secret"), time.Hour, "church.example.org")
}

func newTestAuth(t *testing.T) (*AuthServiceImpl, *store.Store, *mailRecorder) {
	t.Helper()
	st := testStore(t)
	pw := testPasswordService()
	mails := &mailRecorder{}
	tokens := NewTokenService(st, 20)
	svc := NewAuthServiceImpl(st, pw, tokens, mails, testSigner(), 6)
	return svc, st, mails
}
