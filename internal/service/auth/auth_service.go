package auth

import (
	"context"
	"errors"

	"github.com/skyline-air/booking/internal/domain"
	"github.com/skyline-air/booking/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase interface {
	Register(ctx context.Context, input RegisterInput) (int64, error)
	Authenticate(ctx context.Context, username, password string, role domain.Role) (*domain.User, error)
	GetProfile(ctx context.Context, userID int64) (*domain.User, error)
	ChangePassword(ctx context.Context, userID int64, current, newPassword, confirm string) error
}

type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type AuthService struct {
	users      repository.UserRepository
	bcryptCost int
}

func NewAuthService(users repository.UserRepository, bcryptCost int) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{users: users, bcryptCost: bcryptCost}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (int64, error) {
	if input.Username == "" {
		return 0, domain.NewValidationError("username", "must not be empty")
	}
	if input.Password == "" {
		return 0, domain.NewValidationError("password", "must not be empty")
	}
	role := domain.Role(input.Role)
	if !role.Valid() {
		return 0, domain.NewValidationError("role", "must be admin or passenger")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return 0, err
	}

	user := &domain.User{
		Username:     input.Username,
		PasswordHash: string(hash),
		Email:        input.Email,
		Role:         role,
	}
	return s.users.Create(ctx, user)
}

// Authenticate matches username, password and role. An unknown username and a
// wrong password both come back as ErrInvalidCredentials so a caller cannot
// probe which part was wrong. bcrypt comparison does not leak timing.
func (s *AuthService) Authenticate(ctx context.Context, username, password string, role domain.Role) (*domain.User, error) {
	user, err := s.users.GetByUsernameAndRole(ctx, username, role)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Burn a hash comparison anyway so the absent-user path takes
			// as long as the wrong-password path.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID int64, current, newPassword, confirm string) error {
	if newPassword == "" {
		return domain.NewValidationError("new_password", "must not be empty")
	}
	if newPassword != confirm {
		return domain.NewValidationError("confirm_password", "does not match new password")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePasswordHash(ctx, userID, string(hash))
}

// dummyHash is a bcrypt hash of an arbitrary string, used to equalize work
// when the user does not exist.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("skyline-dummy"), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return h
}()

var _ AuthUseCase = (*AuthService)(nil)
