package user

import (
	"context"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/simp-lee/adminboard/internal/domain"
	"github.com/simp-lee/adminboard/internal/pkg"
)

// phonePattern accepts digits with optional leading +, spaces, dashes, and parens.
var phonePattern = regexp.MustCompile(`^\+?[0-9\s\-()]{7,20}$`)

// userService implements domain.UserService.
type userService struct {
	repo domain.UserRepository
}

// NewUserService creates a new UserService with the given repository.
func NewUserService(repo domain.UserRepository) domain.UserService {
	return &userService{repo: repo}
}

// CreateUser validates input, hashes the password, derives the age, and
// persists the new user via the repository.
func (s *userService) CreateUser(ctx context.Context, in domain.UserInput) (*domain.User, error) {
	normalizeInput(&in)

	if err := validateInput(in, true); err != nil {
		return nil, err
	}

	hash, err := pkg.HashPassword(in.Password)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to hash password", err)
	}

	user := &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        in.Phone,
		BirthDate:    in.BirthDate,
		Gender:       in.Gender,
		Role:         in.Role,
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	applyAge(user)

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *userService) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// ListUsers returns a paginated list of users.
func (s *userService) ListUsers(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.User], error) {
	return s.repo.List(ctx, req)
}

// UpdateUser loads the existing user, applies the changes, re-derives the age,
// and persists them. The record identity and creation timestamp are preserved.
// An empty password keeps the stored hash.
func (s *userService) UpdateUser(ctx context.Context, id uint, in domain.UserInput) (*domain.User, error) {
	normalizeInput(&in)

	if err := validateInput(in, false); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.Email = in.Email
	user.Phone = in.Phone
	user.BirthDate = in.BirthDate
	user.Gender = in.Gender
	if in.Role != "" {
		user.Role = in.Role
	}
	if in.Password != "" {
		hash, err := pkg.HashPassword(in.Password)
		if err != nil {
			return nil, domain.NewAppError(domain.CodeInternal, "failed to hash password", err)
		}
		user.PasswordHash = hash
	}
	applyAge(user)

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user by ID.
func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// DeleteUsers removes the users with the given ids and reports the number of
// rows deleted.
func (s *userService) DeleteUsers(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, domain.NewAppError(domain.CodeValidation, "no ids provided", nil)
	}
	return s.repo.DeleteMany(ctx, ids)
}

func normalizeInput(in *domain.UserInput) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.BirthDate = strings.TrimSpace(in.BirthDate)
	in.Gender = strings.TrimSpace(strings.ToLower(in.Gender))
	in.Role = strings.TrimSpace(strings.ToLower(in.Role))
}

// applyAge recomputes the derived age from the birth date. A missing or
// unparsable birth date yields zero.
func applyAge(u *domain.User) {
	age, ok := domain.AgeFromBirthDate(u.BirthDate, time.Now())
	if !ok {
		u.Age = 0
		return
	}
	u.Age = age
}

// validateInput checks the writable user fields. requirePassword is true on
// create; on update an empty password means "keep the current one".
func validateInput(in domain.UserInput, requirePassword bool) error {
	if in.FirstName == "" {
		return domain.NewAppError(domain.CodeValidation, "first name is required", nil)
	}
	if utf8.RuneCountInString(in.FirstName) > 50 {
		return domain.NewAppError(domain.CodeValidation, "first name must be at most 50 characters", nil)
	}
	if in.LastName == "" {
		return domain.NewAppError(domain.CodeValidation, "last name is required", nil)
	}
	if utf8.RuneCountInString(in.LastName) > 50 {
		return domain.NewAppError(domain.CodeValidation, "last name must be at most 50 characters", nil)
	}

	if in.Email == "" {
		return domain.NewAppError(domain.CodeValidation, "email is required", nil)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return domain.NewAppError(domain.CodeValidation, "invalid email format", nil)
	}

	if requirePassword && in.Password == "" {
		return domain.NewAppError(domain.CodeValidation, "password is required", nil)
	}
	if in.Password != "" && utf8.RuneCountInString(in.Password) < 8 {
		return domain.NewAppError(domain.CodeValidation, "password must be at least 8 characters", nil)
	}

	if in.Phone != "" && !phonePattern.MatchString(in.Phone) {
		return domain.NewAppError(domain.CodeValidation, "invalid phone number format", nil)
	}

	if in.BirthDate != "" {
		born, err := time.Parse(domain.BirthDateLayout, in.BirthDate)
		if err != nil {
			return domain.NewAppError(domain.CodeValidation, "birth date must be in YYYY-MM-DD format", nil)
		}
		if born.After(time.Now()) {
			return domain.NewAppError(domain.CodeValidation, "birth date cannot be in the future", nil)
		}
	}

	if in.Gender != "" && in.Gender != "male" && in.Gender != "female" && in.Gender != "other" {
		return domain.NewAppError(domain.CodeValidation, "gender must be male, female, or other", nil)
	}

	if in.Role != "" && in.Role != domain.RoleAdmin && in.Role != domain.RoleUser {
		return domain.NewAppError(domain.CodeValidation, "role must be admin or user", nil)
	}
	return nil
}
