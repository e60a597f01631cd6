// Package user はプロフィール管理のドメインロジックを提供する。
package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/hitoshi/ecofinds/internal/auth"
	"github.com/hitoshi/ecofinds/internal/model"
	"github.com/hitoshi/ecofinds/internal/repository"
)

// Service はプロフィールの取得・更新を提供する。
type Service struct {
	userRepo repository.UserRepository
}

// NewService はServiceを生成する。
func NewService(userRepo repository.UserRepository) *Service {
	return &Service{userRepo: userRepo}
}

// Get は認証済みユーザーのプロフィールを返す。
// トークンは有効だがユーザーが既に存在しない場合はNotFoundを返す
// （通常は起こらないが、クラッシュさせずに処理する）。
func (s *Service) Get(ctx context.Context, userID string) (*model.User, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if u == nil {
		return nil, model.NewNotFoundError()
	}
	return u, nil
}

// Update はユーザー名とメールアドレスを上書きする。
// どちらもトリム後に必須で、欠けていればValidationError。
// 正規化済みメールアドレスを別のユーザーが使用している場合はEmailTakenを返す。
func (s *Service) Update(ctx context.Context, userID, username, email string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = auth.NormalizeEmail(email)

	if username == "" || email == "" {
		return nil, model.NewValidationError("username and email required")
	}

	current, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if current == nil {
		return nil, model.NewNotFoundError()
	}

	holder, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if holder != nil && holder.ID != userID {
		return nil, model.NewEmailTakenError()
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, username, email); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	current.Username = username
	current.Email = email
	return current, nil
}
