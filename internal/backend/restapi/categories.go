package restapi

import (
	"context"
	"fmt"

	"tasky/internal/service"
)

// CategoryRepository implements service.Categories. Listing is per user.
type CategoryRepository struct {
	req Requester
	id  Identity
}

// NewCategoryRepository creates a CategoryRepository scoped to id's current user.
func NewCategoryRepository(req Requester, id Identity) *CategoryRepository {
	return &CategoryRepository{req: req, id: id}
}

// Create implements service.Categories.
func (r *CategoryRepository) Create(ctx context.Context, name, color string) (service.Category, error) {
	c, _, err := decode[service.Category](r.req.Post(ctx, "/categories", service.NewCategoryPayload(name, color)))
	return c, err
}

// List implements service.Categories.
func (r *CategoryRepository) List(ctx context.Context) ([]service.Category, error) {
	path := fmt.Sprintf("/categories/user/%d", r.id.CurrentUserID())
	cats, _, err := decode[[]service.Category](r.req.Get(ctx, path))
	if err != nil {
		return []service.Category{}, err
	}
	if cats == nil {
		return []service.Category{}, nil
	}
	return cats, nil
}

// Update implements service.Categories.
func (r *CategoryRepository) Update(ctx context.Context, id int64, name, color string) (service.Category, error) {
	if err := checkID("category", id); err != nil {
		return service.Category{}, err
	}
	c, _, err := decode[service.Category](r.req.Put(ctx, categoryPath(id), service.NewCategoryPayload(name, color)))
	return c, err
}

// Delete implements service.Categories. Whether categories that still have
// tasks can be deleted is decided by the server.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	if err := checkID("category", id); err != nil {
		return err
	}
	return expect(r.req.Delete(ctx, categoryPath(id), nil))
}

func categoryPath(id int64) string {
	return fmt.Sprintf("/categories/%d", id)
}
