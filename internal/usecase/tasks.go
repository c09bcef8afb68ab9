package usecase

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// QubeBridgeTask is the name and tag of the bridge deploy task
const QubeBridgeTask = "QubeBridge"

// DeployTask is one named deployment step. Dependencies name other tasks
// that must run first on the same network.
type DeployTask struct {
	Name         string
	Contract     string
	Tags         []string
	Dependencies []string
}

// TaskRegistry holds the deploy tasks in registration order
type TaskRegistry struct {
	tasks map[string]DeployTask
	order []string
}

// NewTaskRegistry returns a registry holding the built-in tasks
func NewTaskRegistry() *TaskRegistry {
	r := &TaskRegistry{tasks: make(map[string]DeployTask)}
	_ = r.Register(DeployTask{
		Name:     QubeBridgeTask,
		Contract: "QubeBridge",
		Tags:     []string{QubeBridgeTask},
	})
	return r
}

// Register adds a task. Names must be unique.
func (r *TaskRegistry) Register(task DeployTask) error {
	if task.Name == "" {
		return fmt.Errorf("deploy task needs a name")
	}
	if _, exists := r.tasks[task.Name]; exists {
		return fmt.Errorf("deploy task %q already registered", task.Name)
	}
	if task.Contract == "" {
		task.Contract = task.Name
	}
	r.tasks[task.Name] = task
	r.order = append(r.order, task.Name)
	return nil
}

// Get returns a task by name
func (r *TaskRegistry) Get(name string) (DeployTask, bool) {
	t, ok := r.tasks[name]
	return t, ok
}

// All returns every task in registration order
func (r *TaskRegistry) All() []DeployTask {
	return lo.Map(r.order, func(name string, _ int) DeployTask { return r.tasks[name] })
}

// Select returns the tasks carrying any of tags, or every task when tags is
// empty, together with their dependencies. Dependencies come before the
// tasks that need them; otherwise registration order is kept.
func (r *TaskRegistry) Select(tags []string) ([]DeployTask, error) {
	var roots []string
	if len(tags) == 0 {
		roots = r.order
	} else {
		for _, tag := range tags {
			matched := lo.Filter(r.order, func(name string, _ int) bool {
				return name == tag || lo.Contains(r.tasks[name].Tags, tag)
			})
			if len(matched) == 0 {
				return nil, fmt.Errorf("no deploy task has tag %q", tag)
			}
			roots = append(roots, matched...)
		}
		roots = lo.Uniq(roots)
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int)
	var ordered []DeployTask
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		task, ok := r.tasks[name]
		if !ok {
			return fmt.Errorf("deploy task %q depends on unknown task %q", path[len(path)-1], name)
		}
		switch state[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("deploy task dependency cycle: %s -> %s", strings.Join(path, " -> "), name)
		}

		state[name] = visiting
		path = append(path, name)
		for _, dep := range task.Dependencies {
			if err := visit(dep); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		state[name] = done
		ordered = append(ordered, task)
		return nil
	}

	for _, name := range roots {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return ordered, nil
}
