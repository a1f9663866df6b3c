package service

// Task is a single task as returned by the server.
// ID is assigned by the server and never sent on writes.
type Task struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	ShortDesc string   `json:"short_desc"`
	LongDesc  string   `json:"long_desc"`
	Priority  string   `json:"priority"`
	Status    string   `json:"status"`
	DueDate   string   `json:"date,omitempty"`
	DueTime   string   `json:"time,omitempty"`
	Tags      []string `json:"tags"`
	UserID    int64    `json:"user_id"`
}

// Category groups tasks. Count is derived by the server and read-only.
type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Count *int   `json:"count,omitempty"`
}

// UserProfile is the authenticated user's profile.
type UserProfile struct {
	ID    int64  `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// AuthResult is the data returned by login and register.
type AuthResult struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// StatusDone is the status used by workflow actions that complete tasks.
const StatusDone = "done"

// CreateTaskPayload is the body of POST /tasks.
type CreateTaskPayload struct {
	Title     string   `json:"title"`
	ShortDesc string   `json:"short_desc"`
	LongDesc  string   `json:"long_desc"`
	Priority  string   `json:"priority"`
	Status    string   `json:"status"`
	DueDate   string   `json:"date,omitempty"`
	DueTime   string   `json:"time,omitempty"`
	Tags      []string `json:"tags"`
}

// UpdateTaskPayload is the body of PUT /tasks/{id}. It replaces every
// mutable field, so callers start from the current task.
type UpdateTaskPayload struct {
	Title     string   `json:"title"`
	ShortDesc string   `json:"short_desc"`
	LongDesc  string   `json:"long_desc"`
	Priority  string   `json:"priority"`
	Status    string   `json:"status"`
	DueDate   string   `json:"date"`
	DueTime   string   `json:"time"`
	Tags      []string `json:"tags"`
}

// CategoryPayload is the body of POST /categories and PUT /categories/{id}.
type CategoryPayload struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// NewCreateTaskPayload copies the writable fields of t. ID and UserID are dropped.
func NewCreateTaskPayload(t Task) CreateTaskPayload {
	return CreateTaskPayload{
		Title:     t.Title,
		ShortDesc: t.ShortDesc,
		LongDesc:  t.LongDesc,
		Priority:  t.Priority,
		Status:    t.Status,
		DueDate:   t.DueDate,
		DueTime:   t.DueTime,
		Tags:      cloneTags(t.Tags),
	}
}

// NewUpdateTaskPayload copies every mutable field of t. ID and UserID are dropped.
func NewUpdateTaskPayload(t Task) UpdateTaskPayload {
	return UpdateTaskPayload{
		Title:     t.Title,
		ShortDesc: t.ShortDesc,
		LongDesc:  t.LongDesc,
		Priority:  t.Priority,
		Status:    t.Status,
		DueDate:   t.DueDate,
		DueTime:   t.DueTime,
		Tags:      cloneTags(t.Tags),
	}
}

// NewCategoryPayload builds a category write body. Count is never sent.
func NewCategoryPayload(name, color string) CategoryPayload {
	return CategoryPayload{Name: name, Color: color}
}

// cloneTags keeps order and never returns nil, so an empty set encodes as [].
func cloneTags(tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
