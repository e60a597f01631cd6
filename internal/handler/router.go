package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/ecofinds/internal/middleware"
)

// HealthChecker はDB疎通確認のインターフェース。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenVerifier     middleware.TokenVerifier
	CORSAllowedOrigin string
	Logger            *slog.Logger
	MetricsMiddleware func(next http.Handler) http.Handler // nil可
	MetricsHandler    http.Handler                         // nil可

	// サービス
	AuthService    AuthServiceInterface
	ProductService ProductServiceInterface
	CartService    CartServiceInterface
	UserService    UserServiceInterface

	// メトリクス
	SignupRecorder SignupRecorder // nil可

	// ヘルスチェック
	HealthChecker HealthChecker

	// 本番モード以外ではエラーレスポンスにdetailを含める
	ExposeErrorDetail bool
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → Logging → Metrics → CORS →（保護ルートのみ）Auth
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}
	if deps.MetricsMiddleware != nil {
		r.Use(deps.MetricsMiddleware)
	}
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	authHandler := NewAuthHandler(deps.AuthService, deps.SignupRecorder, deps.ExposeErrorDetail)
	productHandler := NewProductHandler(deps.ProductService, deps.ExposeErrorDetail)
	cartHandler := NewCartHandler(deps.CartService, deps.ExposeErrorDetail)
	userHandler := NewUserHandler(deps.UserService, deps.ExposeErrorDetail)

	// --- 認証不要のルート ---

	r.Post("/signup", authHandler.Signup)
	r.Post("/login", authHandler.Login)

	r.Get("/products", productHandler.List)
	r.Get("/products/{id}", productHandler.Get)
	r.Get("/categories", productHandler.ListCategories)

	r.Get("/health", newHealthHandler(deps.HealthChecker))
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// --- 認証が必要なルート ---
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(deps.TokenVerifier))

		r.Post("/products", productHandler.Create)
		r.Put("/products/{id}", productHandler.Update)
		r.Delete("/products/{id}", productHandler.Delete)

		r.Post("/cart", cartHandler.Add)
		r.Get("/cart", cartHandler.View)
		r.Post("/checkout", cartHandler.Checkout)
		r.Get("/purchases", cartHandler.Purchases)

		r.Get("/profile", userHandler.Profile)
		r.Put("/profile", userHandler.UpdateProfile)
	})

	return r
}

// newHealthHandler はDB疎通を確認するヘルスチェックハンドラーを返す。
func newHealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			if err := checker.PingContext(r.Context()); err != nil {
				slog.Error("health check failed", slog.String("error", err.Error()))
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
