package domain

import "context"

// Roles resolved from the authenticated principal. The role gates the
// destructive and creative affordances; enforcement happens server-side in
// the role middleware, never only in a client.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a user record in the system.
//
// BirthDate is stored as an ISO "YYYY-MM-DD" string. Age is derived from it
// (whole full years elapsed) and recomputed by the service on every write
// that touches BirthDate; a directly supplied age is never authoritative
// when a birth date is present.
type User struct {
	BaseModel
	FirstName      string `gorm:"size:50;not null" json:"first_name"`
	LastName       string `gorm:"size:50;not null" json:"last_name"`
	Email          string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash   string `gorm:"size:255" json:"-"`
	Phone          string `gorm:"size:32" json:"phone"`
	BirthDate      string `gorm:"size:10" json:"birth_date"`
	Gender         string `gorm:"size:16" json:"gender"`
	Age            int    `json:"age"`
	Role           string `gorm:"size:16;not null;default:user" json:"role"`
	ProfilePicture string `gorm:"size:512" json:"profile_picture,omitempty"`
}

// FullName returns the concatenation used for full-name search matching.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserInput carries the writable user fields from the transport layer into
// the service. Password is required on create and optional on update.
type UserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     string
	BirthDate string
	Gender    string
	Role      string
}

// UserRepository defines the data access interface for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, req PageRequest) (*PageResult[User], error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uint) error
	DeleteMany(ctx context.Context, ids []uint) (int64, error)
}

// UserService defines the business logic interface for users.
type UserService interface {
	CreateUser(ctx context.Context, in UserInput) (*User, error)
	GetUser(ctx context.Context, id uint) (*User, error)
	ListUsers(ctx context.Context, req PageRequest) (*PageResult[User], error)
	UpdateUser(ctx context.Context, id uint, in UserInput) (*User, error)
	DeleteUser(ctx context.Context, id uint) error
	DeleteUsers(ctx context.Context, ids []uint) (int64, error)
}
