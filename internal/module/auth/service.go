package auth

import (
	"context"
	"time"

	"github.com/simp-lee/adminboard/internal/domain"
	"github.com/simp-lee/adminboard/internal/pkg"
)

// Service defines the authentication operations.
type Service interface {
	Register(ctx context.Context, in domain.UserInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	Me(ctx context.Context, userID uint) (*domain.User, error)
	UpdateProfilePicture(ctx context.Context, userID uint, url string) (*domain.User, error)
}

// authService implements Service.
type authService struct {
	users       domain.UserService
	userRepo    domain.UserRepository
	secret      []byte
	tokenExpiry time.Duration
}

// NewService creates a new auth Service. The user service performs the field
// validation and password hashing shared with the admin user CRUD.
func NewService(users domain.UserService, userRepo domain.UserRepository, secret []byte, tokenExpiry time.Duration) Service {
	return &authService{
		users:       users,
		userRepo:    userRepo,
		secret:      secret,
		tokenExpiry: tokenExpiry,
	}
}

// Register creates a new user account. The very first registered user becomes
// the admin; everyone after that gets the regular user role. A role supplied
// by the client is ignored.
func (s *authService) Register(ctx context.Context, in domain.UserInput) (*domain.User, error) {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	in.Role = domain.RoleUser
	if count == 0 {
		in.Role = domain.RoleAdmin
	}

	return s.users.CreateUser(ctx, in)
}

// Login authenticates a user by email and password and returns the user along
// with a signed session token.
func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Don't reveal whether the user exists — always return unauthorized.
		if domain.IsNotFound(err) {
			return nil, "", domain.ErrUnauthorized
		}
		return nil, "", err
	}

	if !pkg.CheckPassword(user.PasswordHash, password) {
		return nil, "", domain.ErrUnauthorized
	}

	token, err := pkg.IssueToken(s.secret, user.ID, user.Role, s.tokenExpiry)
	if err != nil {
		return nil, "", domain.NewAppError(domain.CodeInternal, "failed to generate token", err)
	}

	return user, token, nil
}

// Me returns the user behind the authenticated session.
func (s *authService) Me(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfilePicture stores the picture URL on the session user's record.
// An empty url removes the picture.
func (s *authService) UpdateProfilePicture(ctx context.Context, userID uint, url string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.ProfilePicture = url
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
