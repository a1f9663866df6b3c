package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasky/internal/config"
	"tasky/internal/exitcode"
	"tasky/internal/output"
	"tasky/internal/service"
)

func init() {
	Register(&CategoriesCmd{})
	Register(&AddCatCmd{})
	Register(&EditCatCmd{})
	Register(&RmCatCmd{})
}

// CategoriesCmd lists categories.
type CategoriesCmd struct{}

func (c *CategoriesCmd) Name() string      { return "categories" }
func (c *CategoriesCmd) Aliases() []string { return []string{"cats"} }
func (c *CategoriesCmd) Synopsis() string  { return "List your categories" }
func (c *CategoriesCmd) Usage() string     { return "tasky categories [common flags]" }
func (c *CategoriesCmd) NeedsAuth() bool   { return true }

func (c *CategoriesCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CategoriesCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	cats, err := deps.Categories.List(ctx)
	if err != nil {
		return fail(errOut, err)
	}
	for _, cat := range cats {
		output.FormatCategory(out, cat)
	}
	if len(cats) == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no categories found")
	}
	return exitcode.Success
}

// AddCatCmd creates a category.
type AddCatCmd struct {
	color string
}

func (c *AddCatCmd) Name() string      { return "addcat" }
func (c *AddCatCmd) Aliases() []string { return nil }
func (c *AddCatCmd) Synopsis() string  { return "Create a category" }
func (c *AddCatCmd) Usage() string     { return "tasky addcat [--color <#rrggbb>] <name...>" }
func (c *AddCatCmd) NeedsAuth() bool   { return true }

func (c *AddCatCmd) RegisterFlags(fs *flag.FlagSet) {
	c.color = ""
	fs.StringVar(&c.color, "color", "", "")
}

func (c *AddCatCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return usageError(errOut, "category name required")
	}
	if c.color != "" && !validColor(c.color) {
		return usageError(errOut, "invalid color: %s", c.color)
	}

	cat, err := deps.Categories.Create(ctx, name, c.color)
	if err != nil {
		return fail(errOut, err)
	}
	if !cfg.Quiet {
		output.FormatCategory(out, cat)
	}
	return exitcode.Success
}

// EditCatCmd renames or recolors a category.
type EditCatCmd struct {
	name  optString
	color optString
}

func (c *EditCatCmd) Name() string      { return "editcat" }
func (c *EditCatCmd) Aliases() []string { return nil }
func (c *EditCatCmd) Synopsis() string  { return "Rename or recolor a category" }
func (c *EditCatCmd) Usage() string     { return "tasky editcat [--name <name>] [--color <#rrggbb>] <id>" }
func (c *EditCatCmd) NeedsAuth() bool   { return true }

func (c *EditCatCmd) RegisterFlags(fs *flag.FlagSet) {
	c.name, c.color = optString{}, optString{}
	fs.Var(&c.name, "name", "")
	fs.Var(&c.color, "color", "")
}

func (c *EditCatCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	id, err := ParseID(args)
	if err != nil {
		return idError(errOut, "category", err)
	}
	if !c.name.set && !c.color.set {
		return usageError(errOut, "nothing to change")
	}
	if c.name.set && strings.TrimSpace(c.name.value) == "" {
		return usageError(errOut, "name must not be blank")
	}
	if c.color.set && c.color.value != "" && !validColor(c.color.value) {
		return usageError(errOut, "invalid color: %s", c.color.value)
	}

	current, err := findCategory(ctx, deps.Categories, id)
	if err != nil {
		return fail(errOut, err)
	}
	c.name.apply(&current.Name)
	c.color.apply(&current.Color)

	updated, err := deps.Categories.Update(ctx, id, strings.TrimSpace(current.Name), current.Color)
	if err != nil {
		return fail(errOut, err)
	}
	if !cfg.Quiet {
		output.FormatCategory(out, updated)
	}
	return exitcode.Success
}

// findCategory looks id up in the list, since there is no single-category endpoint.
func findCategory(ctx context.Context, cats service.Categories, id int64) (service.Category, error) {
	all, err := cats.List(ctx)
	if err != nil {
		return service.Category{}, err
	}
	for _, cat := range all {
		if cat.ID == id {
			return cat, nil
		}
	}
	return service.Category{}, service.NewError(service.KindNotFound, fmt.Sprintf("category not found: %d", id))
}

// RmCatCmd deletes a category.
type RmCatCmd struct{}

func (c *RmCatCmd) Name() string      { return "rmcat" }
func (c *RmCatCmd) Aliases() []string { return nil }
func (c *RmCatCmd) Synopsis() string  { return "Delete a category" }
func (c *RmCatCmd) Usage() string     { return "tasky rmcat <id>" }
func (c *RmCatCmd) NeedsAuth() bool   { return true }

func (c *RmCatCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCatCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	id, err := ParseID(args)
	if err != nil {
		return idError(errOut, "category", err)
	}
	if err := deps.Categories.Delete(ctx, id); err != nil {
		return fail(errOut, err)
	}
	return ok(cfg, out)
}
