package auth

// LoginRequest represents the input for user login.
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=8"`
}

// RegisterRequest represents the input for user registration.
// Role is deliberately absent; it is assigned server-side.
type RegisterRequest struct {
	FirstName string `json:"first_name" form:"first_name" binding:"required,min=1,max=50"`
	LastName  string `json:"last_name" form:"last_name" binding:"required,min=1,max=50"`
	Email     string `json:"email" form:"email" binding:"required,email"`
	Password  string `json:"password" form:"password" binding:"required,min=8,max=72"`
	Phone     string `json:"phone" form:"phone" binding:"omitempty,max=32"`
	BirthDate string `json:"birth_date" form:"birth_date" binding:"omitempty,len=10"`
	Gender    string `json:"gender" form:"gender" binding:"omitempty,oneof=male female other"`
}
