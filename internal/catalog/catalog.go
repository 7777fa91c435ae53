// Package catalog keeps the known projects, their tasks and the recorded
// session history. Every mutation is persisted immediately.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Tiliavir/trivial-pomodoro-timer/internal/model"
)

// ErrNoProject is returned by AddTask when no project is selected.
var ErrNoProject = errors.New("no project selected")

// Saver persists the full data set.
type Saver interface {
	Save(model.Data) error
}

// Catalog owns the in-memory data set. It is not safe for concurrent use.
type Catalog struct {
	data  model.Data
	saver Saver
}

// New wraps previously loaded data.
func New(d model.Data, saver Saver) *Catalog {
	if d.Projects == nil {
		d.Projects = []string{}
	}
	if d.Tasks == nil {
		d.Tasks = []model.Task{}
	}
	if d.Sessions == nil {
		d.Sessions = []model.Session{}
	}
	return &Catalog{data: d, saver: saver}
}

// Projects returns a copy of the project list in insertion order.
func (c *Catalog) Projects() []string {
	return slices.Clone(c.data.Projects)
}

// Tasks returns a copy of all tasks in insertion order.
func (c *Catalog) Tasks() []model.Task {
	return slices.Clone(c.data.Tasks)
}

// TasksFor returns the tasks owned by project.
func (c *Catalog) TasksFor(project string) []model.Task {
	var out []model.Task
	for _, t := range c.data.Tasks {
		if t.Project == project {
			out = append(out, t)
		}
	}
	return out
}

// Sessions returns a copy of the session history in recording order.
func (c *Catalog) Sessions() []model.Session {
	return slices.Clone(c.data.Sessions)
}

// HasProject reports whether name is a known project.
func (c *Catalog) HasProject(name string) bool {
	return slices.Contains(c.data.Projects, name)
}

// HasTask reports whether t is a known task.
func (c *Catalog) HasTask(t model.Task) bool {
	return slices.Contains(c.data.Tasks, t)
}

// AddProject adds a trimmed, non-empty, unknown project and persists.
// It reports whether the project was added.
func (c *Catalog) AddProject(name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" || c.HasProject(name) {
		return false, nil
	}
	c.data.Projects = append(c.data.Projects, name)
	return true, c.save()
}

// DeleteProject removes the project, its tasks and every session recorded
// against it, then persists. The caller is responsible for confirmation.
func (c *Catalog) DeleteProject(name string) (bool, error) {
	if name == "" || !c.HasProject(name) {
		return false, nil
	}
	c.data.Projects = slices.DeleteFunc(c.data.Projects, func(p string) bool { return p == name })
	c.data.Tasks = slices.DeleteFunc(c.data.Tasks, func(t model.Task) bool { return t.Project == name })
	c.data.Sessions = slices.DeleteFunc(c.data.Sessions, func(s model.Session) bool { return s.Project == name })
	return true, c.save()
}

// AddTask adds task name under project and persists. An empty project
// yields ErrNoProject; an empty name or a known task is a no-op.
func (c *Catalog) AddTask(project, name string) (bool, error) {
	project = strings.TrimSpace(project)
	if project == "" {
		return false, ErrNoProject
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}
	t := model.Task{Project: project, Name: name}
	if c.HasTask(t) {
		return false, nil
	}
	c.data.Tasks = append(c.data.Tasks, t)
	return true, c.save()
}

// DeleteTask removes the task and every session recorded against it, then
// persists. The caller is responsible for confirmation.
func (c *Catalog) DeleteTask(t model.Task) (bool, error) {
	if !c.HasTask(t) {
		return false, nil
	}
	c.data.Tasks = slices.DeleteFunc(c.data.Tasks, func(x model.Task) bool { return x == t })
	c.data.Sessions = slices.DeleteFunc(c.data.Sessions, func(s model.Session) bool { return s.BelongsTo(t) })
	return true, c.save()
}

// AppendSession adds a session to the history and persists.
func (c *Catalog) AppendSession(s model.Session) error {
	c.data.Sessions = append(c.data.Sessions, s)
	return c.save()
}

func (c *Catalog) save() error {
	if c.saver == nil {
		return nil
	}
	if err := c.saver.Save(c.data); err != nil {
		return fmt.Errorf("persisting catalog: %w", err)
	}
	return nil
}
