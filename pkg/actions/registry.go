// Package actions holds the canned operator commands reachable from the
// console with the "!" prefix. Each action registers itself by name in an
// init function, mirroring how pluggable components self-register elsewhere
// in the codebase.
package actions

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ruslano69/mschain/pkg/audit"
)

// Action validates its arguments up front and then runs against the live
// session. Validation failures never reach the network.
type Action interface {
	Validate(args []string) error
	Execute(ctx context.Context, env *Env) error
}

// Factory creates a fresh action instance per invocation.
type Factory func() Action

// Info describes a registered action for help output and completion.
type Info struct {
	Name        string
	Description string
	Usage       string
}

type registration struct {
	factory Factory
	info    Info
}

var registry = make(map[string]registration)

// Register adds an action to the registry. Called from init; registering the
// same name twice is a programming error.
func Register(name, description, usage string, factory Factory) {
	key := strings.ToLower(name)
	if _, exists := registry[key]; exists {
		panic(fmt.Sprintf("action %q registered twice", name))
	}
	registry[key] = registration{
		factory: factory,
		info:    Info{Name: key, Description: description, Usage: usage},
	}
}

// New returns a fresh instance of the named action.
func New(name string) (Action, bool) {
	reg, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return reg.factory(), true
}

// Describe returns the metadata of the named action.
func Describe(name string) (Info, bool) {
	reg, ok := registry[strings.ToLower(name)]
	if !ok {
		return Info{}, false
	}
	return reg.info, true
}

// List returns every registered action, sorted by name.
func List() []Info {
	infos := make([]Info, 0, len(registry))
	for _, reg := range registry {
		infos = append(infos, reg.info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Run looks up, validates, and executes an action, recording the invocation
// in the audit trail.
func Run(ctx context.Context, env *Env, name string, args []string) error {
	action, ok := New(name)
	if !ok {
		return fmt.Errorf("unknown action %q (try !help)", name)
	}

	if err := action.Validate(args); err != nil {
		return fmt.Errorf("invalid arguments for !%s: %w", strings.ToLower(name), err)
	}

	start := time.Now()
	err := action.Execute(ctx, env)

	entry := &audit.Entry{
		Operation: audit.OpAction,
		Status:    audit.StatusSuccess,
		Server:    env.Executor.ExecutionTarget(),
		Statement: strings.TrimSpace("!" + strings.ToLower(name) + " " + strings.Join(args, " ")),
		Duration:  time.Since(start),
	}
	if err != nil {
		entry.Status = audit.StatusFailure
		entry.Error = err.Error()
	}
	env.Audit.Record(entry)

	return err
}
