package model

import (
	"strings"
	"time"
)

// taskSeparator joins a project and a task name in the composite task label.
const taskSeparator = ": "

// Task is a unit of work owned by exactly one project.
// Identity is the (Project, Name) pair; Key is only a label.
type Task struct {
	Project string
	Name    string
}

// Key returns the composite label "<project>: <name>". It is also the
// persisted form of a task.
func (t Task) Key() string {
	return t.Project + taskSeparator + t.Name
}

func (t Task) String() string { return t.Key() }

// IsZero reports whether no task is set.
func (t Task) IsZero() bool {
	return t.Project == "" && t.Name == ""
}

// ParseTaskKey recovers the structured task from a composite label.
// The owning project is the longest known project followed by ": ";
// when no known project matches, the label is split at the first ": ".
func ParseTaskKey(key string, projects []string) (Task, bool) {
	owner := ""
	for _, p := range projects {
		if len(p) > len(owner) && strings.HasPrefix(key, p+taskSeparator) {
			owner = p
		}
	}
	if owner != "" {
		return Task{Project: owner, Name: strings.TrimPrefix(key, owner+taskSeparator)}, true
	}
	project, name, ok := strings.Cut(key, taskSeparator)
	if !ok || project == "" {
		return Task{}, false
	}
	return Task{Project: project, Name: name}, true
}

// Session is an immutable record of one focused work interval.
// Fields are declared in key order so the persisted JSON keys come out sorted.
type Session struct {
	DurationSeconds float64   `json:"duration_seconds"`
	EndTime         Timestamp `json:"end_time"`
	ID              string    `json:"id,omitempty"`
	Project         string    `json:"project"`
	StartTime       Timestamp `json:"start_time"`
	Task            string    `json:"task"`
	TaskKey         string    `json:"task_key"`
}

// Start returns the session start as a time.Time.
func (s Session) Start() time.Time { return s.StartTime.Time }

// End returns the session end as a time.Time.
func (s Session) End() time.Time { return s.EndTime.Time }

// BelongsTo reports whether the session was recorded against task t.
func (s Session) BelongsTo(t Task) bool {
	return s.Project == t.Project && s.Task == t.Name
}

// Data is the complete persisted state: the catalog plus the session history.
type Data struct {
	Projects []string
	Tasks    []Task
	Sessions []Session
}

// Empty returns Data with non-nil, empty collections.
func Empty() Data {
	return Data{Projects: []string{}, Tasks: []Task{}, Sessions: []Session{}}
}
