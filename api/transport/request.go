package transport

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegistrationRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Birthday string `json:"birthday"`
}

type EmailRequest struct {
	Email string `json:"email"`
}

type EndRegistrationRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PasswordResetRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

type CurrentPasswordResetRequest struct {
	CurrentPassword string `json:"currentPassword"`
	Password        string `json:"password"`
	Password2       string `json:"password2"`
}
