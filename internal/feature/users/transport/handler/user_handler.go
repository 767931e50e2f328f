// Package handler はusersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"user_backend/internal/api"
	"user_backend/internal/feature/users/domain"
	"user_backend/internal/feature/users/domain/entity"
	"user_backend/internal/feature/users/usecase"
	"user_backend/internal/platform/validation"
)

// UserUsecase はユーザー管理操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type UserUsecase interface {
	// List は指定されたページのユーザー一覧を返します。
	List(ctx context.Context, page int) (*usecase.UserPage, error)
	// Get はIDでユーザーを取得します。
	Get(ctx context.Context, id uint) (*entity.User, error)
	// Create は新規ユーザーを作成します。
	Create(ctx context.Context, in usecase.CreateUserInput) (*entity.User, error)
	// Update は部分更新を行います。
	Update(ctx context.Context, id uint, in usecase.UpdateUserInput) error
	// Delete はIDでユーザーを削除します。
	Delete(ctx context.Context, id uint) error
}

// UserHandler はユーザーCRUDのHTTPリクエストを処理します。
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// List はページングされたユーザー一覧を返します。
// クエリパラメータ page（デフォルト1）を受け付けます。
func (h *UserHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	result, err := h.users.List(c.Request.Context(), page)
	if err != nil {
		slog.Error("list users failed", "error", err, "page", page)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "could not list users"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get はIDでユーザーを返します。存在しない場合は404を返却します。
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "User not found"})
			return
		}
		slog.Error("get user failed", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "could not get user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// Create は新規ユーザーを作成します。
// - バリデーションエラー時はフィールド別メッセージ付きで400を返却
// - 成功時は作成されたユーザー付きで201を返却（パスワードは含まない）
func (h *UserHandler) Create(c *gin.Context) {
	var req api.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create user validation failed", "error", err, "remote_addr", c.ClientIP())
		if msgs := validation.Messages(err); msgs != nil {
			c.JSON(http.StatusBadRequest, msgs)
			return
		}
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	in := usecase.CreateUserInput{
		Name:             req.Name,
		Email:            req.Email,
		Password:         req.Password,
		Age:              *req.Age,
		MembershipStatus: req.MembershipStatus,
	}
	user, err := h.users.Create(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			c.JSON(http.StatusBadRequest, validation.UniqueEmail())
			return
		}
		slog.Error("create user failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "could not create user"})
		return
	}

	c.JSON(http.StatusCreated, api.CreatedUserResponse{Message: "User created successfully", User: user})
}

// Update はユーザーを部分更新します。
// - 対象が存在しない場合は404を返却
// - バリデーションエラー時は400を返却（ユニーク検査は対象ID自身を除外）
// - 成功時は200を返却し、該当キャッシュは無効化済み
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req api.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update user validation failed", "error", err, "id", id)
		if msgs := validation.Messages(err); msgs != nil {
			c.JSON(http.StatusBadRequest, msgs)
			return
		}
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	in := usecase.UpdateUserInput{
		Name:             req.Name,
		Email:            req.Email,
		Password:         req.Password,
		Age:              req.Age,
		MembershipStatus: req.MembershipStatus,
	}
	if err := h.users.Update(c.Request.Context(), id, in); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "User not found"})
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			c.JSON(http.StatusBadRequest, validation.UniqueEmail())
		default:
			slog.Error("update user failed", "error", err, "id", id)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "could not update user"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "User updated successfully"})
}

// Delete はIDでユーザーを削除します。
// - 対象が存在しない場合は404を返却
// - 成功時は200を返却し、該当キャッシュは無効化済み
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "User not found"})
			return
		}
		slog.Error("delete user failed", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "could not delete user"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "User deleted successfully"})
}

// parseID はパスパラメータのIDを解析します。数値でない場合は400を返却します。
func (h *UserHandler) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid user id"})
		return 0, false
	}
	return uint(id), true
}
