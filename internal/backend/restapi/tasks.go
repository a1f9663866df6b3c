package restapi

import (
	"context"
	"fmt"

	"tasky/internal/service"
)

// TaskRepository implements service.Tasks.
type TaskRepository struct {
	req Requester
	id  Identity
}

// NewTaskRepository creates a TaskRepository scoped to id's current user.
func NewTaskRepository(req Requester, id Identity) *TaskRepository {
	return &TaskRepository{req: req, id: id}
}

type batchDeletePayload struct {
	IDs []int64 `json:"ids"`
}

type batchStatusPayload struct {
	IDs    []int64 `json:"ids"`
	Status string  `json:"status"`
}

// Create implements service.Tasks.
func (r *TaskRepository) Create(ctx context.Context, payload service.CreateTaskPayload) (service.Task, error) {
	if payload.Tags == nil {
		payload.Tags = []string{}
	}
	t, _, err := decode[service.Task](r.req.Post(ctx, "/tasks", payload))
	if err != nil {
		return service.Task{}, err
	}
	return normalizeTask(t), nil
}

// List implements service.Tasks. A missing token scopes the request to user 0,
// which the server answers with an empty collection.
func (r *TaskRepository) List(ctx context.Context) ([]service.Task, error) {
	path := fmt.Sprintf("/tasks/user/%d", r.id.CurrentUserID())
	tasks, _, err := decode[[]service.Task](r.req.Get(ctx, path))
	if err != nil {
		return []service.Task{}, err
	}
	if tasks == nil {
		return []service.Task{}, nil
	}
	for i := range tasks {
		tasks[i] = normalizeTask(tasks[i])
	}
	return tasks, nil
}

// GetByID implements service.Tasks.
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (service.Task, error) {
	if err := checkID("task", id); err != nil {
		return service.Task{}, err
	}
	t, found, err := decode[service.Task](r.req.Get(ctx, taskPath(id)))
	if err != nil {
		return service.Task{}, err
	}
	if !found {
		return service.Task{}, service.NewError(service.KindNotFound, fmt.Sprintf("task not found: %d", id))
	}
	return normalizeTask(t), nil
}

// Update implements service.Tasks. The path id is authoritative.
func (r *TaskRepository) Update(ctx context.Context, id int64, payload service.UpdateTaskPayload) (service.Task, error) {
	if err := checkID("task", id); err != nil {
		return service.Task{}, err
	}
	if payload.Tags == nil {
		payload.Tags = []string{}
	}
	t, _, err := decode[service.Task](r.req.Put(ctx, taskPath(id), payload))
	if err != nil {
		return service.Task{}, err
	}
	return normalizeTask(t), nil
}

// DeleteMany implements service.Tasks. The batch is sent once and not retried.
func (r *TaskRepository) DeleteMany(ctx context.Context, ids []int64) error {
	if err := checkIDs("task", ids); err != nil {
		return err
	}
	return expect(r.req.Delete(ctx, "/tasks", batchDeletePayload{IDs: nonNilIDs(ids)}))
}

// UpdateStatusMany implements service.Tasks.
func (r *TaskRepository) UpdateStatusMany(ctx context.Context, ids []int64, status string) error {
	if err := checkIDs("task", ids); err != nil {
		return err
	}
	return expect(r.req.Put(ctx, "/tasks/status", batchStatusPayload{IDs: nonNilIDs(ids), Status: status}))
}

func taskPath(id int64) string {
	return fmt.Sprintf("/tasks/%d", id)
}

func nonNilIDs(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

func normalizeTask(t service.Task) service.Task {
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return t
}
