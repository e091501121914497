package models

// UserRole represents user roles in the system
type UserRole string

const (
	UserRoleBuyer  UserRole = "buyer"
	UserRoleSeller UserRole = "seller"
	UserRoleAdmin  UserRole = "admin"
)

// User represents a marketplace user as returned by the backend API
type User struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Role          UserRole `json:"role"`
	Avatar        *string  `json:"avatar,omitempty"`
	WalletBalance *float64 `json:"walletBalance,omitempty"` // sellers only
}

// IsSeller checks if the user can manage products and withdraw funds
func (u *User) IsSeller() bool {
	return u.Role == UserRoleSeller
}

// IsAdmin checks if the user can access administration screens
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// UserRegistration represents user registration data sent to the backend
type UserRegistration struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     UserRole `json:"role"`
}

// UserLogin represents user login credentials
type UserLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserProfileUpdate represents user profile update data
type UserProfileUpdate struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// AuthResponse is the backend response to login and register requests
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
