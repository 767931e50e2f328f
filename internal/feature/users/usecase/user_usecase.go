// Package usecase はusersフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"user_backend/internal/feature/users/domain/entity"
)

// DefaultPerPage は一覧取得の1ページあたりの件数です。
const DefaultPerPage = 10

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、domain.ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// パスワードハッシュは選択されません。
	// ユーザーが存在しない場合、domain.ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindByEmail は指定されたメールアドレスに一致するユーザーを
	// パスワードハッシュを含めて取得します。ログイン専用です。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// List は指定されたページのユーザー一覧と総件数を返します。
	// 並び順はID昇順で、パスワードハッシュは選択されません。
	List(ctx context.Context, page, perPage int) ([]entity.User, int64, error)

	// Update は指定されたカラムのみを更新します。
	// メールアドレスが他のユーザーと衝突する場合、domain.ErrEmailAlreadyExistsを返します。
	Update(ctx context.Context, id uint, fields map[string]any) error

	// Delete は指定されたIDのユーザーを削除します。
	// ユーザーが存在しない場合、domain.ErrUserNotFoundを返します。
	Delete(ctx context.Context, id uint) error
}

// UserPage は一覧取得のページングされた結果です。
type UserPage struct {
	Users      []entity.User `json:"users"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PerPage    int           `json:"per_page"`
	TotalPages int           `json:"total_pages"`
}

// CreateUserInput はユーザー作成の入力値です。
type CreateUserInput struct {
	Name             string
	Email            string
	Password         string
	Age              int
	MembershipStatus *string
}

// UpdateUserInput はユーザー更新の入力値です。
// nilのフィールドは「送信されなかった」ことを意味し、既存値が維持されます。
type UpdateUserInput struct {
	Name             *string
	Email            *string
	Password         *string
	Age              *int
	MembershipStatus *string
}

// userUsecase はユーザー管理のビジネスロジックを実装します。
type userUsecase struct {
	users UserRepository
}

// NewUserUsecase はuserUsecaseの新しいインスタンスを生成します。
func NewUserUsecase(users UserRepository) *userUsecase {
	return &userUsecase{users: users}
}

// List は指定されたページのユーザー一覧を返します。
// pageが1未満の場合は1ページ目として扱います。
func (u *userUsecase) List(ctx context.Context, page int) (*UserPage, error) {
	if page < 1 {
		page = 1
	}
	users, total, err := u.users.List(ctx, page, DefaultPerPage)
	if err != nil {
		return nil, err
	}
	totalPages := int((total + DefaultPerPage - 1) / DefaultPerPage)
	return &UserPage{
		Users:      users,
		Total:      total,
		Page:       page,
		PerPage:    DefaultPerPage,
		TotalPages: totalPages,
	}, nil
}

// Get はIDでユーザーを取得します。
func (u *userUsecase) Get(ctx context.Context, id uint) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}

// Create はハッシュ化されたパスワードで新規ユーザーを作成します。
func (u *userUsecase) Create(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{
		Name:             in.Name,
		Email:            in.Email,
		Password:         string(hashed),
		Age:              in.Age,
		MembershipStatus: in.MembershipStatus,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update は部分更新を行います。
// まず既存ユーザーを取得し（存在しない場合はdomain.ErrUserNotFound）、
// 送信されなかったフィールドは既存値で埋めてから単一のUPDATEを発行します。
func (u *userUsecase) Update(ctx context.Context, id uint, in UpdateUserInput) error {
	cur, err := u.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// 既存値をデフォルトとしてマージする
	fields := map[string]any{
		"name":              cur.Name,
		"email":             cur.Email,
		"age":               cur.Age,
		"membership_status": cur.MembershipStatus,
	}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Email != nil {
		fields["email"] = *in.Email
	}
	if in.Age != nil {
		fields["age"] = *in.Age
	}
	if in.MembershipStatus != nil {
		fields["membership_status"] = in.MembershipStatus
	}
	// パスワードは送信された場合のみハッシュ化して更新する
	if in.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		fields["password"] = string(hashed)
	}

	return u.users.Update(ctx, id, fields)
}

// Delete はIDでユーザーを削除します。
// 存在しない場合はdomain.ErrUserNotFoundを返します。
func (u *userUsecase) Delete(ctx context.Context, id uint) error {
	if _, err := u.users.FindByID(ctx, id); err != nil {
		return err
	}
	return u.users.Delete(ctx, id)
}
