package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasky/internal/config"
	"tasky/internal/exitcode"
	"tasky/internal/output"
	"tasky/internal/service"
)

const (
	defaultPriority = "medium"
	defaultStatus   = "todo"
)

func init() {
	Register(&ListCmd{})
	Register(&ShowCmd{})
	Register(&AddCmd{})
	Register(&EditCmd{})
}

// ListCmd implements the list command.
// Handles both `tasky` (no args) and `tasky list`.
type ListCmd struct {
	status string
	tag    string
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List your tasks" }
func (c *ListCmd) Usage() string     { return "tasky list [--status <status>] [--tag <tag>]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	c.status, c.tag = "", ""
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.tag, "tag", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		return usageError(errOut, "unexpected argument: %s", args[0])
	}

	tasks, err := deps.Tasks.List(ctx)
	if err != nil {
		return fail(errOut, err)
	}

	shown := 0
	for _, t := range tasks {
		if c.status != "" && !strings.EqualFold(t.Status, c.status) {
			continue
		}
		if c.tag != "" && !hasTag(t, c.tag) {
			continue
		}
		output.FormatTask(out, t)
		shown++
	}

	if shown == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	return exitcode.Success
}

func hasTag(t service.Task, tag string) bool {
	tag = strings.TrimPrefix(tag, "#")
	for _, have := range t.Tags {
		if strings.EqualFold(strings.TrimSpace(have), tag) {
			return true
		}
	}
	return false
}

// ShowCmd prints one task in full.
type ShowCmd struct{}

func (c *ShowCmd) Name() string      { return "show" }
func (c *ShowCmd) Aliases() []string { return nil }
func (c *ShowCmd) Synopsis() string  { return "Show a task" }
func (c *ShowCmd) Usage() string     { return "tasky show <id>" }
func (c *ShowCmd) NeedsAuth() bool   { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	id, err := ParseID(args)
	if err != nil {
		return idError(errOut, "task", err)
	}
	t, err := deps.Tasks.GetByID(ctx, id)
	if err != nil {
		return fail(errOut, err)
	}
	output.FormatTaskDetail(out, t)
	return exitcode.Success
}

// AddCmd implements the add command.
type AddCmd struct {
	short    string
	long     string
	priority string
	status   string
	date     string
	time     string
	tags     stringList
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "tasky add [--short <text>] [--long <text>] [--priority <p>] [--status <s>] [--date <date>] [--time <time>] [--tag <tag>]... <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	c.tags = nil
	fs.StringVar(&c.short, "short", "", "")
	fs.StringVar(&c.long, "long", "", "")
	fs.StringVar(&c.priority, "priority", defaultPriority, "")
	fs.StringVar(&c.status, "status", defaultStatus, "")
	fs.StringVar(&c.date, "date", "", "")
	fs.StringVar(&c.time, "time", "", "")
	fs.Var(&c.tags, "tag", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return usageError(errOut, "title required")
	}
	if c.time != "" && c.date == "" {
		return usageError(errOut, "--time requires --date")
	}

	created, err := deps.Tasks.Create(ctx, service.NewCreateTaskPayload(service.Task{
		Title:     title,
		ShortDesc: c.short,
		LongDesc:  c.long,
		Priority:  c.priority,
		Status:    c.status,
		DueDate:   c.date,
		DueTime:   c.time,
		Tags:      c.tags,
	}))
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		output.FormatTask(out, created)
	}
	return exitcode.Success
}

// EditCmd replaces the fields given as flags and keeps the rest.
type EditCmd struct {
	title    optString
	short    optString
	long     optString
	priority optString
	status   optString
	date     optString
	time     optString
	tags     tagFlag
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change fields of a task" }
func (c *EditCmd) Usage() string {
	return "tasky edit [--title <t>] [--short <text>] [--long <text>] [--priority <p>] [--status <s>] [--date <date>] [--time <time>] [--tag <tag>]... <id>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	*c = EditCmd{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.short, "short", "")
	fs.Var(&c.long, "long", "")
	fs.Var(&c.priority, "priority", "")
	fs.Var(&c.status, "status", "")
	fs.Var(&c.date, "date", "")
	fs.Var(&c.time, "time", "")
	fs.Var(&c.tags, "tag", "")
}

func (c *EditCmd) changed() bool {
	for _, f := range []optString{c.title, c.short, c.long, c.priority, c.status, c.date, c.time} {
		if f.set {
			return true
		}
	}
	return c.tags.set
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	id, err := ParseID(args)
	if err != nil {
		return idError(errOut, "task", err)
	}
	if !c.changed() {
		return usageError(errOut, "nothing to change")
	}
	if c.title.set && strings.TrimSpace(c.title.value) == "" {
		return usageError(errOut, "title must not be blank")
	}

	t, err := deps.Tasks.GetByID(ctx, id)
	if err != nil {
		return fail(errOut, err)
	}

	c.title.apply(&t.Title)
	c.short.apply(&t.ShortDesc)
	c.long.apply(&t.LongDesc)
	c.priority.apply(&t.Priority)
	c.status.apply(&t.Status)
	c.date.apply(&t.DueDate)
	c.time.apply(&t.DueTime)
	if c.tags.set {
		t.Tags = c.tags.tags
	}

	updated, err := deps.Tasks.Update(ctx, id, service.NewUpdateTaskPayload(t))
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		output.FormatTask(out, updated)
	}
	return exitcode.Success
}

func idError(errOut io.Writer, what string, err error) int {
	if errors.Is(err, ErrIDRequired) {
		return usageError(errOut, "%s id required", what)
	}
	return usageError(errOut, "%v", err)
}
