// Package launcher runs a target jar against a materialized runtime,
// working through an ordered list of JVM compatibility flag sets, and
// coordinates fallback across alternate runtime versions when the
// requested one cannot run the jar.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrJarNotFound indicates the target archive does not exist or is not
// a regular file. Checked before any runtime work begins.
var ErrJarNotFound = errors.New("jar file not found")

// FlagSet is one combination of JVM compatibility switches.
type FlagSet struct {
	Name string
	Args []string
}

// flagSets is the fixed attempt order: standard execution first, then
// progressively heavier workarounds.
var flagSets = []FlagSet{
	{Name: "standard"},
	{Name: "no-verify", Args: []string{"-Xverify:none"}},
	{Name: "relaxed-security", Args: []string{"-XX:+IgnoreUnrecognizedVMOptions", "-Djava.security.manager=allow"}},
	{Name: "no-verify+relaxed-security", Args: []string{"-Xverify:none", "-XX:+IgnoreUnrecognizedVMOptions", "-Djava.security.manager=allow"}},
}

// WorkaroundsError indicates every applicable flag set failed for one
// runtime version.
type WorkaroundsError struct {
	Version  int
	Attempts int
}

func (e *WorkaroundsError) Error() string {
	return fmt.Sprintf("all %d execution attempts failed with Java %d", e.Attempts, e.Version)
}

// Causes lists plausible root causes for display once every flag set
// has been exhausted.
func (e *WorkaroundsError) Causes() []string {
	return []string{
		"the jar contains corrupted or truncated bytecode",
		"obfuscation produced symbol names the JVM rejects",
		"the jar is missing runtime dependencies",
		"the application is fundamentally incompatible with the attempted Java versions",
	}
}

// Commander interface for testing
type Commander interface {
	Run() error
}

// Engine executes one jar against one runtime.
type Engine struct {
	execCommand func(ctx context.Context, name string, args ...string) Commander
	logger      *log.Logger
}

// NewEngine creates an execution engine.
func NewEngine() *Engine {
	return &Engine{
		execCommand: func(ctx context.Context, name string, args ...string) Commander {
			return exec.CommandContext(ctx, name, args...)
		},
		logger: log.Default(),
	}
}

// CheckJar verifies the target archive exists and is a regular file.
func CheckJar(jarPath string) error {
	info, err := os.Stat(jarPath)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrJarNotFound, jarPath)
	}

	return nil
}

// Run executes the jar with javaPath, trying each flag set in order
// and stopping at the first zero exit. When forceWorkarounds is set,
// the standard attempt is skipped entirely. Success is judged by exit
// status alone; JVM output passes straight through.
func (e *Engine) Run(ctx context.Context, version int, javaPath, jarPath string, jarArgs []string, forceWorkarounds bool) error {
	if err := CheckJar(jarPath); err != nil {
		return err
	}

	attempts := flagSets
	if forceWorkarounds {
		attempts = flagSets[1:]
	}

	for _, fs := range attempts {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		args := make([]string, 0, len(fs.Args)+2+len(jarArgs))
		args = append(args, fs.Args...)
		args = append(args, "-jar", jarPath)
		args = append(args, jarArgs...)

		e.logger.Debug("executing jar", "java", javaPath, "flags", fs.Name, "args", strings.Join(args, " "))

		c := e.execCommand(ctx, javaPath, args...)
		if cmd, ok := c.(*exec.Cmd); ok {
			cmd.Stdin = os.Stdin
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
		}

		err := c.Run()
		if err == nil {
			if fs.Name != "standard" {
				e.logger.Info("jar ran with workaround flags", "flags", fs.Name)
			}

			return nil
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			e.logger.Warn("execution attempt failed", "java", version, "flags", fs.Name, "exit", code, "reason", DescribeExit(code))
		} else {
			e.logger.Warn("execution attempt failed", "java", version, "flags", fs.Name, "err", err)
		}
	}

	return &WorkaroundsError{Version: version, Attempts: len(attempts)}
}
