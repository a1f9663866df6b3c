// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	"tasky/internal/service"
)

// MakeToken returns a token whose claims segment carries user_id and exp.
// exp is omitted when zero. The signature segment is a placeholder.
func MakeToken(userID int64, exp int64) string {
	claims := fmt.Sprintf(`{"user_id":%d}`, userID)
	if exp != 0 {
		claims = fmt.Sprintf(`{"user_id":%d,"exp":%d}`, userID, exp)
	}
	return "eyJhbGciOiJIUzI1NiJ9." + base64.RawURLEncoding.EncodeToString([]byte(claims)) + ".sig"
}

func notFound(kind string, id int64) error {
	return service.NewError(service.KindNotFound, fmt.Sprintf("%s not found: %d", kind, id))
}

// FakeAuth is an in-memory implementation of service.Auth.
type FakeAuth struct {
	mu       sync.Mutex
	accounts map[string]fakeAccount
	profile  service.UserProfile
	nextID   int64

	// OAuthURL is returned by GoogleLoginURL.
	OAuthURL string

	// Calls lists the operations invoked, in order.
	Calls []string

	// Error injection for testing
	LoginErr          error
	RegisterErr       error
	ForgotPasswordErr error
	ResetPasswordErr  error
	ChangePasswordErr error
	ProfileErr        error
	UpdateProfileErr  error
	LogoutErr         error
	GoogleLoginErr    error
}

type fakeAccount struct {
	id       int64
	name     string
	password string
}

// NewFakeAuth creates a FakeAuth with no accounts.
func NewFakeAuth() *FakeAuth {
	return &FakeAuth{
		accounts: make(map[string]fakeAccount),
		nextID:   1,
		OAuthURL: "https://accounts.example.com/o/oauth2/auth",
	}
}

// AddAccount registers an account and returns its user id.
func (f *FakeAuth) AddAccount(email, password, name string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.accounts[email] = fakeAccount{id: id, name: name, password: password}
	return id
}

// SetProfile sets the profile returned by GetUserProfile.
func (f *FakeAuth) SetProfile(p service.UserProfile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profile = p
}

func (f *FakeAuth) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, call)
}

// Login implements service.Auth.
func (f *FakeAuth) Login(ctx context.Context, email, password string) (service.AuthResult, error) {
	f.record("login")
	if f.LoginErr != nil {
		return service.AuthResult{}, f.LoginErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	acct, ok := f.accounts[email]
	if !ok || acct.password != password {
		return service.AuthResult{}, service.NewError(service.KindAuth, "invalid credentials")
	}
	user := service.UserProfile{ID: acct.id, Name: acct.name, Email: email}
	f.profile = user
	return service.AuthResult{Token: MakeToken(acct.id, 0), User: user}, nil
}

// Register implements service.Auth.
func (f *FakeAuth) Register(ctx context.Context, email, password, name string) (service.AuthResult, error) {
	f.record("register")
	if f.RegisterErr != nil {
		return service.AuthResult{}, f.RegisterErr
	}
	f.mu.Lock()
	if _, exists := f.accounts[email]; exists {
		f.mu.Unlock()
		return service.AuthResult{}, service.NewError(service.KindValidation, "email already registered")
	}
	f.mu.Unlock()

	id := f.AddAccount(email, password, name)
	user := service.UserProfile{ID: id, Name: name, Email: email}
	f.SetProfile(user)
	return service.AuthResult{Token: MakeToken(id, 0), User: user}, nil
}

// ForgotPassword implements service.Auth.
func (f *FakeAuth) ForgotPassword(ctx context.Context, email string) error {
	f.record("forgot-password")
	return f.ForgotPasswordErr
}

// ResetPassword implements service.Auth.
func (f *FakeAuth) ResetPassword(ctx context.Context, email, otp, password string) error {
	f.record("reset-password")
	if f.ResetPasswordErr != nil {
		return f.ResetPasswordErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if acct, ok := f.accounts[email]; ok {
		acct.password = password
		f.accounts[email] = acct
	}
	return nil
}

// ChangePassword implements service.Auth.
func (f *FakeAuth) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	f.record("change-password")
	return f.ChangePasswordErr
}

// GetUserProfile implements service.Auth.
func (f *FakeAuth) GetUserProfile(ctx context.Context) (service.UserProfile, error) {
	f.record("get-profile")
	if f.ProfileErr != nil {
		return service.UserProfile{}, f.ProfileErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profile, nil
}

// UpdateUserProfile implements service.Auth.
func (f *FakeAuth) UpdateUserProfile(ctx context.Context, p service.UserProfile) (service.UserProfile, error) {
	f.record("update-profile")
	if f.UpdateProfileErr != nil {
		return service.UserProfile{}, f.UpdateProfileErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profile.Name = p.Name
	f.profile.Email = p.Email
	return f.profile, nil
}

// Logout implements service.Auth.
func (f *FakeAuth) Logout(ctx context.Context) error {
	f.record("logout")
	return f.LogoutErr
}

// GoogleLoginURL implements service.Auth.
func (f *FakeAuth) GoogleLoginURL(ctx context.Context) (string, error) {
	f.record("google-login")
	if f.GoogleLoginErr != nil {
		return "", f.GoogleLoginErr
	}
	return f.OAuthURL, nil
}

// FakeTasks is an in-memory implementation of service.Tasks.
type FakeTasks struct {
	mu     sync.RWMutex
	tasks  []service.Task
	nextID int64

	// Deleted and StatusUpdates record batch calls.
	Deleted       [][]int64
	StatusUpdates []StatusUpdate

	// Error injection for testing
	CreateErr       error
	ListErr         error
	GetErr          error
	UpdateErr       error
	DeleteManyErr   error
	UpdateStatusErr error
}

// StatusUpdate records one UpdateStatusMany call.
type StatusUpdate struct {
	IDs    []int64
	Status string
}

// NewFakeTasks creates an empty FakeTasks.
func NewFakeTasks() *FakeTasks {
	return &FakeTasks{nextID: 1}
}

// AddTask stores t with the next id and returns that id.
func (f *FakeTasks) AddTask(t service.Task) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = f.nextID
	f.nextID++
	if t.Tags == nil {
		t.Tags = []string{}
	}
	f.tasks = append(f.tasks, t)
	return t.ID
}

// Task returns the stored task with id.
func (f *FakeTasks) Task(id int64) (service.Task, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// Create implements service.Tasks.
func (f *FakeTasks) Create(ctx context.Context, p service.CreateTaskPayload) (service.Task, error) {
	if f.CreateErr != nil {
		return service.Task{}, f.CreateErr
	}
	t := service.Task{
		Title:     p.Title,
		ShortDesc: p.ShortDesc,
		LongDesc:  p.LongDesc,
		Priority:  p.Priority,
		Status:    p.Status,
		DueDate:   p.DueDate,
		DueTime:   p.DueTime,
		Tags:      p.Tags,
	}
	t.ID = f.AddTask(t)
	stored, _ := f.Task(t.ID)
	return stored, nil
}

// List implements service.Tasks.
func (f *FakeTasks) List(ctx context.Context) ([]service.Task, error) {
	if f.ListErr != nil {
		return []service.Task{}, f.ListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

// GetByID implements service.Tasks.
func (f *FakeTasks) GetByID(ctx context.Context, id int64) (service.Task, error) {
	if f.GetErr != nil {
		return service.Task{}, f.GetErr
	}
	t, ok := f.Task(id)
	if !ok {
		return service.Task{}, notFound("task", id)
	}
	return t, nil
}

// Update implements service.Tasks.
func (f *FakeTasks) Update(ctx context.Context, id int64, p service.UpdateTaskPayload) (service.Task, error) {
	if f.UpdateErr != nil {
		return service.Task{}, f.UpdateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID != id {
			continue
		}
		t.Title, t.ShortDesc, t.LongDesc = p.Title, p.ShortDesc, p.LongDesc
		t.Priority, t.Status = p.Priority, p.Status
		t.DueDate, t.DueTime, t.Tags = p.DueDate, p.DueTime, p.Tags
		f.tasks[i] = t
		return t, nil
	}
	return service.Task{}, notFound("task", id)
}

// DeleteMany implements service.Tasks. Unknown ids fail the whole batch.
func (f *FakeTasks) DeleteMany(ctx context.Context, ids []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Deleted = append(f.Deleted, ids)
	if f.DeleteManyErr != nil {
		return f.DeleteManyErr
	}
	drop := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if !f.hasLocked(id) {
			return notFound("task", id)
		}
		drop[id] = true
	}
	kept := f.tasks[:0]
	for _, t := range f.tasks {
		if !drop[t.ID] {
			kept = append(kept, t)
		}
	}
	f.tasks = kept
	return nil
}

// UpdateStatusMany implements service.Tasks. Unknown ids fail the whole batch.
func (f *FakeTasks) UpdateStatusMany(ctx context.Context, ids []int64, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.StatusUpdates = append(f.StatusUpdates, StatusUpdate{IDs: ids, Status: status})
	if f.UpdateStatusErr != nil {
		return f.UpdateStatusErr
	}
	for _, id := range ids {
		if !f.hasLocked(id) {
			return notFound("task", id)
		}
	}
	for i := range f.tasks {
		for _, id := range ids {
			if f.tasks[i].ID == id {
				f.tasks[i].Status = status
			}
		}
	}
	return nil
}

func (f *FakeTasks) hasLocked(id int64) bool {
	for _, t := range f.tasks {
		if t.ID == id {
			return true
		}
	}
	return false
}

// FakeCategories is an in-memory implementation of service.Categories.
type FakeCategories struct {
	mu     sync.RWMutex
	cats   []service.Category
	nextID int64

	// Error injection for testing
	CreateErr error
	ListErr   error
	UpdateErr error
	DeleteErr error
}

// NewFakeCategories creates an empty FakeCategories.
func NewFakeCategories() *FakeCategories {
	return &FakeCategories{nextID: 1}
}

// AddCategory stores c with the next id and returns that id.
func (f *FakeCategories) AddCategory(c service.Category) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = f.nextID
	f.nextID++
	f.cats = append(f.cats, c)
	return c.ID
}

// Category returns the stored category with id.
func (f *FakeCategories) Category(id int64) (service.Category, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, c := range f.cats {
		if c.ID == id {
			return c, true
		}
	}
	return service.Category{}, false
}

// Create implements service.Categories.
func (f *FakeCategories) Create(ctx context.Context, name, color string) (service.Category, error) {
	if f.CreateErr != nil {
		return service.Category{}, f.CreateErr
	}
	id := f.AddCategory(service.Category{Name: name, Color: color})
	c, _ := f.Category(id)
	return c, nil
}

// List implements service.Categories.
func (f *FakeCategories) List(ctx context.Context) ([]service.Category, error) {
	if f.ListErr != nil {
		return []service.Category{}, f.ListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Category, len(f.cats))
	copy(out, f.cats)
	return out, nil
}

// Update implements service.Categories.
func (f *FakeCategories) Update(ctx context.Context, id int64, name, color string) (service.Category, error) {
	if f.UpdateErr != nil {
		return service.Category{}, f.UpdateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.cats {
		if c.ID == id {
			f.cats[i].Name, f.cats[i].Color = name, color
			return f.cats[i], nil
		}
	}
	return service.Category{}, notFound("category", id)
}

// Delete implements service.Categories.
func (f *FakeCategories) Delete(ctx context.Context, id int64) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.cats {
		if c.ID == id {
			f.cats = append(f.cats[:i], f.cats[i+1:]...)
			return nil
		}
	}
	return notFound("category", id)
}
