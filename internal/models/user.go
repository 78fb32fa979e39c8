package models

// Profile carries the role-specific sub-fields of a user. Cleaners use
// status/rating/dba fields, customers use address fields; absent fields are
// simply empty.
type Profile struct {
	Phone          string  `json:"phone,omitempty"`
	Status         string  `json:"status,omitempty"`
	Rating         float64 `json:"rating,omitempty"`
	ProfilePicture string  `json:"profile_picture,omitempty"`
	Address        string  `json:"address,omitempty"`
	Postcode       string  `json:"postcode,omitempty"`
	DBADocument    string  `json:"dba_document,omitempty"`
	DBAVerified    bool    `json:"dba_verified,omitempty"`
	TotalJobs      int     `json:"total_jobs,omitempty"`
	TotalBookings  int     `json:"total_bookings,omitempty"`
}

// User is the shape shared by admins, cleaners and customers.
type User struct {
	ID         int     `json:"id"`
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Role       string  `json:"role"`
	IsActive   bool    `json:"is_active"`
	DateJoined string  `json:"date_joined,omitempty"`
	Profile    Profile `json:"profile"`
}

// FullName joins first and last name, falling back to the username.
func (u *User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Username
	}
	return name
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginData is the data part of a successful login response
type LoginData struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RegisterRequest represents the sign-up form
type RegisterRequest struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,ukphone"`
	Password        string `json:"password" validate:"required,password"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	UserType        string `json:"user_type" validate:"required,oneof=cleaner customer"`
}

// VerifyEmailRequest carries the OTP sent after registration
type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

// UpdateProfileRequest represents the settings form
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Phone     string `json:"phone" validate:"omitempty,ukphone"`
	Address   string `json:"address,omitempty"`
	Postcode  string `json:"postcode,omitempty"`
}

// ChangePasswordRequest represents the change-password form
type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,password"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

// StatusUpdateRequest is used for cleaner/client activation toggles
type StatusUpdateRequest struct {
	IsActive bool   `json:"is_active"`
	Status   string `json:"status,omitempty"`
}
