package repository

import (
	"testing"
)

// PostgresUserRepoはUserRepositoryインターフェースを満たすことを検証
func TestPostgresUserRepo_ImplementsInterface(t *testing.T) {
	var _ UserRepository = (*PostgresUserRepo)(nil)
}

// PostgresProductRepoはProductRepositoryインターフェースを満たすことを検証
func TestPostgresProductRepo_ImplementsInterface(t *testing.T) {
	var _ ProductRepository = (*PostgresProductRepo)(nil)
}

// PostgresCartRepoはCartRepositoryインターフェースを満たすことを検証
func TestPostgresCartRepo_ImplementsInterface(t *testing.T) {
	var _ CartRepository = (*PostgresCartRepo)(nil)
}

// PostgresOrderRepoはOrderRepositoryインターフェースを満たすことを検証
func TestPostgresOrderRepo_ImplementsInterface(t *testing.T) {
	var _ OrderRepository = (*PostgresOrderRepo)(nil)
}

// 各コンストラクタが正しく初期化されることを検証
func TestNewRepos_Initialize(t *testing.T) {
	if NewPostgresUserRepo(nil) == nil {
		t.Fatal("expected non-nil user repo")
	}
	if NewPostgresProductRepo(nil) == nil {
		t.Fatal("expected non-nil product repo")
	}
	if NewPostgresCartRepo(nil) == nil {
		t.Fatal("expected non-nil cart repo")
	}
	if NewPostgresOrderRepo(nil) == nil {
		t.Fatal("expected non-nil order repo")
	}
}
