// Package adapters はusersフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"user_backend/internal/feature/users/domain"
	"user_backend/internal/feature/users/domain/entity"
	"user_backend/internal/feature/users/usecase"
)

// listColumns は一覧・取得で選択するカラムです。
// パスワードハッシュは決して選択しません。
var listColumns = []string{"id", "name", "email", "age", "membership_status"}

// userMySQL はUserRepositoryインターフェースのMySQL実装です。
// GORMを使用してデータベース操作を行います。
type userMySQL struct {
	db *gorm.DB
}

// userMySQLがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userMySQL)(nil)

// NewUserMySQL は指定されたgorm.DB接続でuserMySQLの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewUserMySQL(db *gorm.DB) *userMySQL {
	return &userMySQL{db: db}
}

// Create はユーザーをデータベースに追加します。
// 同じメールアドレスのユーザーが既に存在する場合、domain.ErrEmailAlreadyExistsを返します。
func (r *userMySQL) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return translateDuplicate(err)
	}
	return nil
}

// FindByID はIDでユーザーを取得します。パスワードハッシュは選択されません。
// ユーザーが存在しない場合、domain.ErrUserNotFoundを返します。
func (r *userMySQL) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	err := r.db.WithContext(ctx).Select(listColumns).Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByEmail はメールアドレスでユーザーを取得します。
// ログインのパスワード検証に使うため、ハッシュを含む全カラムを選択します。
func (r *userMySQL) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// List は指定されたページのユーザー一覧と総件数を返します。
// 同一データセット内でページ間の順序が安定するよう、ID昇順で並べます。
func (r *userMySQL) List(ctx context.Context, page, perPage int) ([]entity.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []entity.User
	err := r.db.WithContext(ctx).
		Select(listColumns).
		Order("id ASC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Update は指定されたカラムのみを更新します。
// メールアドレスが他のユーザーと衝突する場合、domain.ErrEmailAlreadyExistsを返します。
func (r *userMySQL) Update(ctx context.Context, id uint, fields map[string]any) error {
	err := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(fields).Error
	if err != nil {
		return translateDuplicate(err)
	}
	return nil
}

// Delete はIDでユーザーを削除します。
// 対象の行が存在しない場合、domain.ErrUserNotFoundを返します。
func (r *userMySQL) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// translateDuplicate はユニークキー重複エラーをdomain.ErrEmailAlreadyExistsに変換します。
func translateDuplicate(err error) error {
	// MySQLエラー1062: ユニークキーの重複エントリ
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return domain.ErrEmailAlreadyExists
	}
	// テストで使用するSQLiteはgorm.ErrDuplicatedKeyに正規化する
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrEmailAlreadyExists
	}
	return err
}
