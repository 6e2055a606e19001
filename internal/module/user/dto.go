package user

// CreateUserRequest represents the input for creating a new user.
type CreateUserRequest struct {
	FirstName string `json:"first_name" form:"first_name" binding:"required,min=1,max=50"`
	LastName  string `json:"last_name" form:"last_name" binding:"required,min=1,max=50"`
	Email     string `json:"email" form:"email" binding:"required,email"`
	Password  string `json:"password" form:"password" binding:"required,min=8,max=72"`
	Phone     string `json:"phone" form:"phone" binding:"omitempty,max=32"`
	BirthDate string `json:"birth_date" form:"birth_date" binding:"omitempty,len=10"`
	Gender    string `json:"gender" form:"gender" binding:"omitempty,oneof=male female other"`
	Role      string `json:"role" form:"role" binding:"omitempty,oneof=admin user"`
}

// UpdateUserRequest represents the input for updating an existing user.
// Password is optional; when empty the stored hash is kept.
type UpdateUserRequest struct {
	FirstName string `json:"first_name" form:"first_name" binding:"required,min=1,max=50"`
	LastName  string `json:"last_name" form:"last_name" binding:"required,min=1,max=50"`
	Email     string `json:"email" form:"email" binding:"required,email"`
	Password  string `json:"password" form:"password" binding:"omitempty,min=8,max=72"`
	Phone     string `json:"phone" form:"phone" binding:"omitempty,max=32"`
	BirthDate string `json:"birth_date" form:"birth_date" binding:"omitempty,len=10"`
	Gender    string `json:"gender" form:"gender" binding:"omitempty,oneof=male female other"`
	Role      string `json:"role" form:"role" binding:"omitempty,oneof=admin user"`
}

// BulkDeleteRequest carries the ids for a bulk delete operation.
type BulkDeleteRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1,dive,min=1"`
}
