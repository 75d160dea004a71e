// Package commands provides the shared context type and all CLI subcommands.
package commands

import (
	"context"
	"errors"
	"os/user"

	v1 "github.com/f9-o/greet/api/v1"
	"github.com/f9-o/greet/internal/core/config"
	"github.com/f9-o/greet/internal/core/logger"
	"github.com/f9-o/greet/internal/core/state"
	"github.com/f9-o/greet/pkg/errs"
)

// contextKey is the key type for values stored in a command context.
type contextKey string

const runtimeContextKey contextKey = "greet.runtime"

// GlobalFlags holds the parsed global flags for use by subcommands.
type GlobalFlags struct {
	Debug      bool
	JSONOutput bool
	NoHistory  bool
}

// Runtime is the shared dependency bundle injected into each subcommand via context.
type Runtime struct {
	Config *config.Config
	Log    *logger.Logger
	State  *state.DB // nil when --no-history is set
	Flags  GlobalFlags
}

// NewContext returns a new context carrying the Runtime.
func NewContext(parent context.Context, rt *Runtime) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithValue(parent, runtimeContextKey, rt)
}

// FromContext extracts the Runtime from ctx. Panics if not present (programming error).
func FromContext(ctx context.Context) *Runtime {
	rt, ok := ctx.Value(runtimeContextKey).(*Runtime)
	if !ok || rt == nil {
		panic("greet: Runtime not found in context, missing PersistentPreRunE?")
	}
	return rt
}

// Close releases the state store and log files.
func (rt *Runtime) Close() error {
	var err error
	if rt.State != nil {
		err = rt.State.Close()
		rt.State = nil
	}
	if rt.Log != nil {
		err = errors.Join(err, rt.Log.Close())
	}
	return err
}

// remember audits a greeting and, when history is on, stores it.
// A history failure is logged, never returned: the greeting already went out.
func (rt *Runtime) remember(op, name, text string) {
	rt.Log.Audit(logger.AuditEntry{Op: op, User: currentUser(), Name: name, Result: "success"})

	if rt.State == nil || !rt.Config.History.Enabled {
		return
	}
	rec, err := rt.State.Record(v1.GreetingRecord{Name: name, Greeting: text}, rt.Config.History.MaxRecords)
	if err != nil {
		rt.Log.Warn("greeting not recorded", "op", op, "err", errs.Message(err))
		return
	}
	rt.Log.Debug("greeting recorded", "op", op, "seq", rec.Seq)
}

func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return "unknown"
}
