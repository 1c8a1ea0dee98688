package authclient

import "github.com/dmitrymomot/sessionkit/core/sessionstore"

// Backend endpoint paths. The backend rotates the refresh token on every
// refresh call and blacklists the previous one.
const (
	pathRegister             = "/users/"
	pathLogin                = "/users/login/"
	pathLogout               = "/users/logout/"
	pathRefresh              = "/users/refresh/"
	pathVerifyEmail          = "/users/verify_email/"
	pathResendVerification   = "/users/resend_verification/"
	pathRequestPasswordReset = "/users/request_password_reset/"
	pathConfirmPasswordReset = "/users/confirm_password_reset/"
	pathCurrentUser          = "/users/me/"
)

// KeyCurrentUser is the query-cache key for the current-user profile.
const KeyCurrentUser = "auth:currentUser"

// RegisterParams is the payload for creating a new account.
type RegisterParams struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// LoginParams is the payload for password login.
type LoginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyEmailParams is the payload for confirming an email address with the
// code sent to it.
type VerifyEmailParams struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// ConfirmPasswordResetParams is the payload for completing a password reset.
type ConfirmPasswordResetParams struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// RegisterResult is returned by Register. The account is created but not
// authenticated until the email is verified.
type RegisterResult struct {
	User    *sessionstore.User `json:"user"`
	Message string             `json:"message"`
}

// authResponse is the backend's shape for operations that establish a
// session. The web variant omits the tokens; they travel as cookies.
type authResponse struct {
	User    *sessionstore.User `json:"user"`
	Access  string             `json:"access"`
	Refresh string             `json:"refresh"`
}

// tokenPair is the backend's refresh response.
type tokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type emailRequest struct {
	Email string `json:"email"`
}
