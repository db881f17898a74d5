package service

import (
	"context"
	"errors"
	"testing"

	"github.com/trichyfresh/connect/internal/core/domain"
)

// Mock UserRepository
type mockUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[int64]*domain.User
	updated map[int64]string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[int64]*domain.User),
		updated: make(map[int64]string),
	}
}

func (m *mockUserRepo) add(u *domain.User) {
	m.byEmail[u.Email] = u
	m.byID[u.ID] = u
}

func (m *mockUserRepo) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	if _, ok := m.byEmail[u.Email]; ok {
		return 0, domain.ErrEmailTaken
	}
	u.ID = int64(len(m.byID) + 1)
	m.add(&u)
	return u.ID, nil
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	m.updated[id] = passwordHash
	return nil
}

// fakeHasher marks hashes so tests can tell hash from plaintext without
// paying bcrypt cost.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Compare(passwordHash, password string) error {
	if passwordHash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeTokens struct{}

func (fakeTokens) Issue(u *domain.User) (string, error) {
	return "token-for-" + u.Email, nil
}

func newUserService(repo *mockUserRepo) *UserService {
	return NewUserService(repo, fakeHasher{}, fakeTokens{})
}

func TestRegister_StoresHashNotPlaintext(t *testing.T) {
	repo := newMockUserRepo()
	svc := newUserService(repo)

	id, err := svc.Register(context.Background(), "Anbu", "anbu@example.com", "s3cret", domain.RoleConsumer, 2)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	u := repo.byID[id]
	if u.PasswordHash != "hashed:s3cret" {
		t.Errorf("expected stored hash, got %q", u.PasswordHash)
	}
	if u.TalukID != 2 {
		t.Errorf("expected taluk 2, got %d", u.TalukID)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	repo.add(&domain.User{ID: 1, Email: "anbu@example.com"})
	svc := newUserService(repo)

	_, err := svc.Register(context.Background(), "Anbu", "anbu@example.com", "pw", domain.RoleConsumer, 0)
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got: %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	repo := newMockUserRepo()
	repo.add(&domain.User{ID: 1, Email: "anbu@example.com", PasswordHash: "hashed:pw", Role: domain.RoleConsumer})
	svc := newUserService(repo)

	token, user, err := svc.Login(context.Background(), "anbu@example.com", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token != "token-for-anbu@example.com" {
		t.Errorf("unexpected token %q", token)
	}
	if user.ID != 1 {
		t.Errorf("expected user 1, got %d", user.ID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newMockUserRepo()
	repo.add(&domain.User{ID: 1, Email: "anbu@example.com", PasswordHash: "hashed:pw"})
	svc := newUserService(repo)

	_, _, err := svc.Login(context.Background(), "anbu@example.com", "nope")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newUserService(newMockUserRepo())

	// unknown email and wrong password must look identical
	_, _, err := svc.Login(context.Background(), "ghost@example.com", "pw")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	repo := newMockUserRepo()
	repo.add(&domain.User{ID: 1, Email: "p@example.com", PasswordHash: "hashed:old"})
	svc := newUserService(repo)

	err := svc.ChangePassword(context.Background(), 1, "wrong", "new")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got: %v", err)
	}
	if len(repo.updated) != 0 {
		t.Error("expected no password update")
	}
}

func TestChangePassword_Success(t *testing.T) {
	repo := newMockUserRepo()
	repo.add(&domain.User{ID: 1, Email: "p@example.com", PasswordHash: "hashed:old"})
	svc := newUserService(repo)

	if err := svc.ChangePassword(context.Background(), 1, "old", "new"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if repo.updated[1] != "hashed:new" {
		t.Errorf("expected new hash stored, got %q", repo.updated[1])
	}
}
