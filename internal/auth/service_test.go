package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/ecofinds/internal/model"
)

// --- フェイク定義 ---

// fakeUserRepo はメモリ上で動作するUserRepositoryのフェイク実装。
type fakeUserRepo struct {
	users map[string]*model.User // id -> user
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id, username, email string) error {
	u, ok := f.users[id]
	if !ok {
		return errors.New("user not found")
	}
	u.Username = username
	u.Email = email
	return nil
}

// stubIssuer はトークン発行のスタブ。ユーザーIDをそのままトークンとして返す。
type stubIssuer struct{}

func (stubIssuer) Issue(userID string) (string, error) {
	return "token-for-" + userID, nil
}

func newTestService() (*Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewService(repo, NewBcryptHasher(), stubIssuer{}), repo
}

// --- Signup テスト ---

func TestSignup_Success(t *testing.T) {
	svc, repo := newTestService()

	user, tok, err := svc.Signup(context.Background(), "alice", "Alice@Example.com", "secret123")
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if user.ID == "" {
		t.Error("expected server-generated user ID")
	}
	if user.Email != "alice@example.com" {
		t.Errorf("email = %q, want lowercase normalization", user.Email)
	}
	if tok != "token-for-"+user.ID {
		t.Errorf("token = %q, want issued for %q", tok, user.ID)
	}

	stored, _ := repo.FindByID(context.Background(), user.ID)
	if stored == nil {
		t.Fatal("expected user to be persisted")
	}
	if stored.PasswordHash == "secret123" || stored.PasswordHash == "" {
		t.Error("password must be stored as a hash")
	}
}

func TestSignup_EmptyFields_ReturnsValidationError(t *testing.T) {
	svc, _ := newTestService()

	cases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"empty username", "", "a@example.com", "pw"},
		{"whitespace username", "   ", "a@example.com", "pw"},
		{"empty email", "alice", "", "pw"},
		{"empty password", "alice", "a@example.com", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Signup(context.Background(), tc.username, tc.email, tc.password)
			var apiErr *model.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *model.APIError, got %v", err)
			}
			if apiErr.Code != model.ErrCodeValidation {
				t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeValidation)
			}
		})
	}
}

func TestSignup_DuplicateEmail_ReturnsEmailTaken(t *testing.T) {
	svc, _ := newTestService()

	if _, _, err := svc.Signup(context.Background(), "alice", "alice@example.com", "pw1"); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}

	// 大文字小文字だけが異なるメールアドレスも同一として扱う
	_, _, err := svc.Signup(context.Background(), "bob", "ALICE@EXAMPLE.COM", "pw2")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *model.APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeEmailTaken {
		t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeEmailTaken)
	}
}

// --- Login テスト ---

func TestLogin_AfterSignup_SameUserID(t *testing.T) {
	svc, _ := newTestService()

	created, _, err := svc.Signup(context.Background(), "alice", "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	user, tok, err := svc.Login(context.Background(), "Alice@Example.com", "secret123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.ID != created.ID {
		t.Errorf("login user ID = %q, want %q", user.ID, created.ID)
	}
	if tok == "" {
		t.Error("expected non-empty token")
	}
}

func TestLogin_UnknownEmailAndWrongPassword_SameError(t *testing.T) {
	svc, _ := newTestService()

	if _, _, err := svc.Signup(context.Background(), "alice", "alice@example.com", "secret123"); err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	_, _, errUnknown := svc.Login(context.Background(), "nobody@example.com", "secret123")
	_, _, errWrongPw := svc.Login(context.Background(), "alice@example.com", "wrong")

	for _, err := range []error{errUnknown, errWrongPw} {
		var apiErr *model.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *model.APIError, got %v", err)
		}
		if apiErr.Code != model.ErrCodeInvalidCredentials {
			t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeInvalidCredentials)
		}
	}

	// どちらが誤りかを区別できないよう、メッセージも同一であること
	if errUnknown.Error() != errWrongPw.Error() {
		t.Errorf("error messages differ: %q vs %q", errUnknown.Error(), errWrongPw.Error())
	}
}

// --- PasswordHasher テスト ---

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	h := NewBcryptHasher()

	hash, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "secret123" {
		t.Error("hash must differ from the plaintext")
	}

	if err := h.Compare(hash, "secret123"); err != nil {
		t.Errorf("Compare with correct password failed: %v", err)
	}
	if err := h.Compare(hash, "wrong"); err == nil {
		t.Error("Compare with wrong password should fail")
	}
}

func TestBcryptHasher_SaltedHashesDiffer(t *testing.T) {
	h := NewBcryptHasher()

	h1, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	h2, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if h1 == h2 {
		t.Error("hashes of the same password should differ (salted)")
	}
}
