package user

import (
	"context"
	"errors"
	"strings"

	"github.com/simp-lee/adminboard/internal/domain"
	"github.com/simp-lee/adminboard/internal/pkg"
	"gorm.io/gorm"
)

// Allowed fields for sorting, filtering, and searching in List queries.
var (
	allowedSortFields   = []string{"id", "first_name", "last_name", "email", "age", "role", "created_at", "updated_at"}
	allowedFilterFields = []string{"first_name", "last_name", "email", "phone", "gender", "role"}

	searchableFields = map[string]bool{
		"first_name": true,
		"last_name":  true,
		"email":      true,
		"phone":      true,
	}
)

const defaultSearchField = "email"

// userRepository implements domain.UserRepository using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository backed by the given GORM database.
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return mapError(err)
	}
	return nil
}

// GetByID retrieves a user by its primary key.
func (r *userRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email address.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

// Count returns the total number of users.
func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&total).Error; err != nil {
		return 0, mapError(err)
	}
	return total, nil
}

// List returns a paginated, sorted, searched, and filtered list of users.
func (r *userRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.User], error) {
	search, err := searchScope(req)
	if err != nil {
		return nil, err
	}

	var total int64
	base := r.db.WithContext(ctx).Model(&domain.User{}).
		Scopes(search, pkg.Filter(req, allowedFilterFields))

	if err := base.Count(&total).Error; err != nil {
		return nil, mapError(err)
	}

	var users []domain.User
	if err := base.Scopes(
		pkg.Paginate(req),
		pkg.Sort(req, allowedSortFields),
	).Find(&users).Error; err != nil {
		return nil, mapError(err)
	}

	return pkg.NewPageResult(users, total, req), nil
}

// Update saves changes to an existing user.
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return mapError(err)
	}
	return nil
}

// Delete removes a user by ID.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.User{}, id)
	if result.Error != nil {
		return mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteMany removes the users with the given ids and reports how many rows
// were actually deleted. Unknown ids are skipped, not treated as errors.
func (r *userRepository) DeleteMany(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Delete(&domain.User{}, ids)
	if result.Error != nil {
		return 0, mapError(result.Error)
	}
	return result.RowsAffected, nil
}

// searchScope builds the WHERE clause for the search query. Searching the
// first name matches against the "first last" concatenation so a query like
// "alice j" still finds Alice Johnson. Unknown search fields are rejected.
func searchScope(req domain.PageRequest) (func(db *gorm.DB) *gorm.DB, error) {
	noop := func(db *gorm.DB) *gorm.DB { return db }
	if req.Search == "" {
		return noop, nil
	}

	field := req.SearchField
	if field == "" {
		field = defaultSearchField
	}
	if !searchableFields[field] {
		return nil, domain.NewAppError(domain.CodeValidation, "unknown search field: "+field, nil)
	}

	pattern := "%" + strings.ToLower(req.Search) + "%"
	if field == "first_name" {
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("LOWER(first_name || ' ' || last_name) LIKE ?", pattern)
		}, nil
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER("+field+") LIKE ?", pattern)
	}, nil
}

// mapError converts GORM errors to domain errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err) {
		return domain.NewAppError(domain.CodeAlreadyExists, "already exists", err)
	}
	return domain.NewAppError(domain.CodeInternal, "database error", err)
}

// isDuplicateKeyError detects unique constraint violations by examining the
// error message. This is needed because not all GORM dialectors translate
// driver-level errors to gorm.ErrDuplicatedKey (e.g. the pure-Go SQLite driver).
func isDuplicateKeyError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}
