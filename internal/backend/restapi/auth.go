package restapi

import (
	"context"

	"tasky/internal/apiclient"
	"tasky/internal/service"
)

// AuthService implements service.Auth.
// Public endpoints (login, register, password reset, OAuth URL) are sent without credentials.
type AuthService struct {
	req Requester
}

// NewAuthService creates an AuthService.
func NewAuthService(req Requester) *AuthService {
	return &AuthService{req: req}
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type forgotPasswordPayload struct {
	Email string `json:"email"`
}

type resetPasswordPayload struct {
	Email    string `json:"email"`
	OTP      string `json:"otp"`
	Password string `json:"password"`
}

type changePasswordPayload struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type redirectData struct {
	URL string `json:"url"`
}

// Login implements service.Auth. It does not store the returned token.
func (s *AuthService) Login(ctx context.Context, email, password string) (service.AuthResult, error) {
	env, err := s.req.Post(ctx, "/login", loginPayload{Email: email, Password: password}, apiclient.SkipAuth())
	return authResult(env, err)
}

// Register implements service.Auth. It does not store the returned token.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (service.AuthResult, error) {
	env, err := s.req.Post(ctx, "/register", registerPayload{Email: email, Password: password, Name: name}, apiclient.SkipAuth())
	return authResult(env, err)
}

func authResult(env *apiclient.Envelope, err error) (service.AuthResult, error) {
	res, _, err := decode[service.AuthResult](env, err)
	if err != nil {
		return service.AuthResult{}, err
	}
	if res.Token == "" {
		return service.AuthResult{}, service.NewError(service.KindRemote, "no token in response")
	}
	return res, nil
}

// ForgotPassword implements service.Auth.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	return expect(s.req.Post(ctx, "/forgot-password", forgotPasswordPayload{Email: email}, apiclient.SkipAuth()))
}

// ResetPassword implements service.Auth.
func (s *AuthService) ResetPassword(ctx context.Context, email, otp, password string) error {
	body := resetPasswordPayload{Email: email, OTP: otp, Password: password}
	return expect(s.req.Post(ctx, "/reset-password", body, apiclient.SkipAuth()))
}

// ChangePassword implements service.Auth.
func (s *AuthService) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := changePasswordPayload{OldPassword: oldPassword, NewPassword: newPassword}
	return expect(s.req.Post(ctx, "/change-password", body))
}

// GetUserProfile implements service.Auth. Absent data yields an empty profile.
func (s *AuthService) GetUserProfile(ctx context.Context) (service.UserProfile, error) {
	p, _, err := decode[service.UserProfile](s.req.Get(ctx, "/profile"))
	return p, err
}

// UpdateUserProfile implements service.Auth. When the server echoes no data
// the submitted profile is returned.
func (s *AuthService) UpdateUserProfile(ctx context.Context, profile service.UserProfile) (service.UserProfile, error) {
	body := service.UserProfile{Name: profile.Name, Email: profile.Email}
	p, found, err := decode[service.UserProfile](s.req.Put(ctx, "/profile", body))
	if err != nil {
		return service.UserProfile{}, err
	}
	if !found {
		return profile, nil
	}
	return p, nil
}

// Logout implements service.Auth. It does not clear the stored token.
func (s *AuthService) Logout(ctx context.Context) error {
	return expect(s.req.Post(ctx, "/logout", struct{}{}))
}

// GoogleLoginURL implements service.Auth.
func (s *AuthService) GoogleLoginURL(ctx context.Context) (string, error) {
	d, _, err := decode[redirectData](s.req.Get(ctx, "/auth/google/login", apiclient.SkipAuth()))
	if err != nil {
		return "", err
	}
	if d.URL == "" {
		return "", service.NewError(service.KindRemote, "no redirect url in response")
	}
	return d.URL, nil
}
