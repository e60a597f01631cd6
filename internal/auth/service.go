package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/ecofinds/internal/model"
	"github.com/hitoshi/ecofinds/internal/repository"
)

// TokenIssuer はトークン発行のインターフェース。
// token.Serviceの部分集合として定義する。
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// Service はサインアップ・ログインのビジネスロジックを提供する。
type Service struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
}

// NewService はServiceを生成する。
func NewService(userRepo repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// NormalizeEmail はメールアドレスをトリムして小文字に正規化する。
// 大文字小文字だけが異なるメールアドレスは同一のユーザーとして扱う。
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup は新規ユーザーを登録し、トークンと公開プロフィールを返す。
// username・email・passwordのいずれかがトリム後に空ならValidationError、
// 正規化済みメールアドレスが登録済みならEmailTakenを返す。
// パスワードはハッシュ化して保存し、ログにも出力しない。
func (s *Service) Signup(ctx context.Context, username, email, password string) (*model.User, string, error) {
	username = strings.TrimSpace(username)
	email = NormalizeEmail(email)

	if username == "" || email == "" || password == "" {
		return nil, "", model.NewValidationError("username, email and password required")
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if existing != nil {
		return nil, "", model.NewEmailTakenError()
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("user signed up",
		slog.String("user_id", user.ID),
	)

	return user, tok, nil
}

// Login は資格情報を検証し、新しいトークンを発行する。
// メールアドレス不一致とパスワード不一致のどちらでも同じ
// InvalidCredentialsを返し、どちらが誤りかを漏らさない。
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = NormalizeEmail(email)

	if email == "" || password == "" {
		return nil, "", model.NewValidationError("email and password required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, "", model.NewInvalidCredentialsError()
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, "", model.NewInvalidCredentialsError()
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("user logged in",
		slog.String("user_id", user.ID),
	)

	return user, tok, nil
}
