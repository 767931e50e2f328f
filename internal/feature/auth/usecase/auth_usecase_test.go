package usecase

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"user_backend/internal/feature/users/domain"
	"user_backend/internal/feature/users/domain/entity"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
// It simulates database operations during testing.
type mockUserRepository struct {
	// CreateFunc is called when the Create method is invoked.
	CreateFunc func(ctx context.Context, user *entity.User) error
	// FindByEmailFunc is called when the FindByEmail method is invoked.
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
}

// mockJWTGenerator is a mock implementation of JWTGenerator interface.
type mockJWTGenerator struct {
	// GenerateTokenFunc is called when the GenerateToken method is invoked.
	GenerateTokenFunc func(userID uint, email string) (string, error)
}

// GenerateToken is the mock implementation of the GenerateToken method.
func (m *mockJWTGenerator) GenerateToken(userID uint, email string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, email)
	}
	// Default: return a dummy token
	return "mock-jwt-token", nil
}

// Create is the mock implementation of the Create method.
func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil // Default: success
}

// FindByEmail is the mock implementation of the FindByEmail method.
func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default: return user not found error
	return nil, domain.ErrUserNotFound
}

func TestAuthUsecase_Register(t *testing.T) {
	t.Run("successful registration hashes the password", func(t *testing.T) {
		var created *entity.User
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				created = user
				return nil
			},
		}
		uc := NewAuthUsecase(mockRepo, &mockJWTGenerator{})

		status := "premium"
		err := uc.Register(context.Background(), RegisterInput{
			Name:             "Alice",
			Email:            "alice@example.com",
			Password:         "secret1",
			Age:              30,
			MembershipStatus: &status,
		})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created == nil {
			t.Fatal("expected Create to be called")
		}
		if created.Password == "secret1" {
			t.Error("password must not be stored in plaintext")
		}
		// Verify that it's a valid bcrypt hash of the original plaintext
		if err := bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret1")); err != nil {
			t.Errorf("invalid bcrypt hash: %v", err)
		}
		if created.Age != 30 || created.Name != "Alice" {
			t.Errorf("unexpected entity fields: %+v", created)
		}
	})

	t.Run("duplicate email error is passed through", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return domain.ErrEmailAlreadyExists
			},
		}
		uc := NewAuthUsecase(mockRepo, &mockJWTGenerator{})

		err := uc.Register(context.Background(), RegisterInput{
			Name: "Alice", Email: "alice@example.com", Password: "secret1", Age: 30,
		})

		if !errors.Is(err, domain.ErrEmailAlreadyExists) {
			t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
		}
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	stored := &entity.User{ID: 1, Email: "alice@example.com", Password: string(hashed)}

	t.Run("successful login returns a token for the same user", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return stored, nil
			},
		}
		mockJWT := &mockJWTGenerator{
			GenerateTokenFunc: func(userID uint, email string) (string, error) {
				if userID != 1 || email != "alice@example.com" {
					t.Errorf("token issued for wrong subject: %d %s", userID, email)
				}
				return "signed-token", nil
			},
		}
		uc := NewAuthUsecase(mockRepo, mockJWT)

		token, err := uc.Login(context.Background(), "alice@example.com", "secret1")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "signed-token" {
			t.Errorf("expected token %q, got %q", "signed-token", token)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return stored, nil
			},
		}
		uc := NewAuthUsecase(mockRepo, &mockJWTGenerator{})

		_, err := uc.Login(context.Background(), "alice@example.com", "wrong")

		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, &mockJWTGenerator{})

		_, err := uc.Login(context.Background(), "missing@example.com", "secret1")

		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("token creation failure", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return stored, nil
			},
		}
		mockJWT := &mockJWTGenerator{
			GenerateTokenFunc: func(userID uint, email string) (string, error) {
				return "", errors.New("signing failed")
			},
		}
		uc := NewAuthUsecase(mockRepo, mockJWT)

		_, err := uc.Login(context.Background(), "alice@example.com", "secret1")

		if !errors.Is(err, domain.ErrTokenCreation) {
			t.Errorf("expected ErrTokenCreation, got %v", err)
		}
	})
}
