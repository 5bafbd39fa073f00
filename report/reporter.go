package report

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"go.uber.org/zap"
)

// LogLevel mirrors the handful of verbosity tiers a compiler-shaped tool
// conventionally exposes.
type LogLevel int

const (
	LogLevelSilent LogLevel = iota
	LogLevelError
	LogLevelWarn
	LogLevelVerbose
)

// Reporter is the weaver's ambient diagnostics sink: a console tier for a
// human running the CLI, and an optional structured JSON tier for
// machine-consumed logs, both tagged with the same weave-run correlation
// id so a single run's console output and log lines can be joined. Its
// methods are guarded by a mutex, so it is safe for concurrent use.
type Reporter struct {
	mu       sync.Mutex
	logLevel LogLevel
	runID    string
	zap      *zap.Logger
	isErr    bool
}

// New creates a Reporter for a single weave run. jsonLog selects the
// structured zap tier in addition to the pterm console tier.
func New(logLevel LogLevel, jsonLog bool) (*Reporter, error) {
	r := &Reporter{
		logLevel: logLevel,
		runID:    uuid.NewString(),
	}

	if jsonLog {
		zl, err := zap.NewProduction()
		if err != nil {
			return nil, err
		}
		r.zap = zl
	}

	return r, nil
}

// RunID returns the correlation id tagging every message from this run.
func (r *Reporter) RunID() string {
	return r.runID
}

// Info reports a routine progress message.
func (r *Reporter) Info(message string, args ...any) {
	if r.logLevel < LogLevelVerbose {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pterm.Info.Println(sprintf(message, args...))
	if r.zap != nil {
		r.zap.Info(sprintf(message, args...), zap.String("run_id", r.runID))
	}
}

// Warn reports a non-fatal irregularity.
func (r *Reporter) Warn(message string, args ...any) {
	if r.logLevel < LogLevelWarn {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pterm.Warning.Println(sprintf(message, args...))
	if r.zap != nil {
		r.zap.Warn(sprintf(message, args...), zap.String("run_id", r.runID))
	}
}

// Fatal reports the *WeaveError that aborted the run.
func (r *Reporter) Fatal(err *WeaveError) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.isErr = true

	if r.logLevel < LogLevelError {
		return
	}

	pterm.Error.Println(err.Error())
	if r.zap != nil {
		r.zap.Error("weave aborted",
			zap.String("run_id", r.runID),
			zap.String("kind", err.Kind.String()),
			zap.String("fqn", err.FQN),
			zap.Error(err.Cause),
		)
	}
}

// AnyErrors reports whether Fatal has been called on this Reporter.
func (r *Reporter) AnyErrors() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.isErr
}

// Sync flushes the structured log sink, if one is configured. It should be
// deferred right after New.
func (r *Reporter) Sync() {
	if r.zap != nil {
		_ = r.zap.Sync()
	}
}

func sprintf(message string, args ...any) string {
	if len(args) == 0 {
		return message
	}
	return pterm.Sprintf(message, args...)
}
