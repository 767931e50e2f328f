// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"user_backend/internal/api"
	"user_backend/internal/feature/auth/usecase"
	"user_backend/internal/feature/users/domain"
	"user_backend/internal/platform/validation"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録します。
	Register(ctx context.Context, in usecase.RegisterInput) error
	// Login はユーザーを認証し、成功時にJWTトークンを返します。
	Login(ctx context.Context, email, password string) (string, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - リクエストJSONをRegisterRequestにバインド
// - バリデーションエラー時はフィールド別メッセージ付きで400を返却
// - メールアドレス重複時も400を返却（ユニーク制約はバリデーションの一部）
// - 成功時は201を返却（トークンは発行しない）
func (h *AuthHandler) Register(c *gin.Context) {
	var req api.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		if msgs := validation.Messages(err); msgs != nil {
			c.JSON(http.StatusBadRequest, msgs)
			return
		}
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	in := usecase.RegisterInput{
		Name:             req.Name,
		Email:            req.Email,
		Password:         req.Password,
		Age:              *req.Age,
		MembershipStatus: req.MembershipStatus,
	}
	if err := h.auth.Register(c.Request.Context(), in); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			c.JSON(http.StatusBadRequest, validation.UniqueEmail())
			return
		}
		slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "could not create user"})
		return
	}

	slog.Info("user registered", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.MessageResponse{Message: "User created successfully"})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - 認証失敗時は401を返却
// - トークン生成失敗時は500を返却
// - 認証成功時はJWTトークン付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// 資格情報が揃っていなければ認証は成立しない
		slog.Warn("login request malformed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid Email or Password"})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrTokenCreation) {
			slog.Error("token creation failed", "error", err, "email", req.Email)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Could not create token"})
			return
		}
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid Email or Password"})
		return
	}

	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{Token: token})
}
