// Package service defines the domain types and the backend-agnostic
// interfaces for authentication, tasks and categories.
package service

import "context"

// Auth covers the authentication and profile endpoints.
// It never touches the stored token; callers persist or clear it.
type Auth interface {
	// Login exchanges credentials for a token and the user.
	Login(ctx context.Context, email, password string) (AuthResult, error)

	// Register creates an account and returns the same shape as Login.
	Register(ctx context.Context, email, password, name string) (AuthResult, error)

	// ForgotPassword asks the server to send a one-time code.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword consumes a one-time code. Sent without credentials.
	ResetPassword(ctx context.Context, email, otp, password string) error

	// ChangePassword requires a valid session.
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error

	// GetUserProfile returns the current user's profile.
	GetUserProfile(ctx context.Context) (UserProfile, error)

	// UpdateUserProfile replaces the profile and returns the stored copy.
	UpdateUserProfile(ctx context.Context, profile UserProfile) (UserProfile, error)

	// Logout invalidates the session server-side.
	Logout(ctx context.Context) error

	// GoogleLoginURL returns the external OAuth redirect URL.
	// No token is required.
	GoogleLoginURL(ctx context.Context) (string, error)
}

// Tasks covers CRUD and batch operations on the current user's tasks.
type Tasks interface {
	// Create stores a new task and returns it with its server-assigned ID.
	Create(ctx context.Context, payload CreateTaskPayload) (Task, error)

	// List returns the current user's tasks in server order.
	// The result is never nil.
	List(ctx context.Context) ([]Task, error)

	// GetByID returns a single task. Fails with KindNotFound when missing.
	GetByID(ctx context.Context, id int64) (Task, error)

	// Update replaces all mutable fields of task id.
	Update(ctx context.Context, id int64, payload UpdateTaskPayload) (Task, error)

	// DeleteMany deletes all ids in one request. An empty set is still sent.
	DeleteMany(ctx context.Context, ids []int64) error

	// UpdateStatusMany sets status on all ids in one request.
	UpdateStatusMany(ctx context.Context, ids []int64, status string) error
}

// Categories covers CRUD operations on the current user's categories.
type Categories interface {
	// Create stores a new category.
	Create(ctx context.Context, name, color string) (Category, error)

	// List returns the current user's categories. The result is never nil.
	List(ctx context.Context) ([]Category, error)

	// Update replaces the name and color of category id.
	Update(ctx context.Context, id int64, name, color string) (Category, error)

	// Delete removes category id.
	Delete(ctx context.Context, id int64) error
}
