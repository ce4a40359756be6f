// Package extraction launches the external CV parser that extracts skills for a
// persisted candidate.
package extraction

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/talent-hub/internal/logger"
	"go.uber.org/zap"
)

// DefaultCommand runs the CV parser project through the dotnet CLI. The CV text,
// candidate ID and API key are appended as positional arguments.
var DefaultCommand = []string{"dotnet", "run", "--project", "process_cv_csharp", "--"}

const logPreviewLimit = 200

// SkillExtractor extracts skills from a candidate's CV text. Implementations write
// their results to the store themselves.
type SkillExtractor interface {
	Extract(ctx context.Context, cvText string, candidateID int64) (*Result, error)
}

// Result is the outcome of a completed extractor run
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Succeeded reports whether the extractor exited with status 0
func (r *Result) Succeeded() bool {
	return r != nil && r.ExitCode == 0
}

// Diagnostics returns the tool's error output, falling back to stdout.
func (r *Result) Diagnostics() string {
	if r == nil {
		return ""
	}
	if s := strings.TrimSpace(r.Stderr); s != "" {
		return s
	}
	return strings.TrimSpace(r.Stdout)
}

// ProcessExtractor runs the extractor as a child process
type ProcessExtractor struct {
	Command []string
	APIKey  string
	// Timeout bounds a single run; zero waits for the process to exit.
	Timeout time.Duration
	// Env is added to the parent environment.
	Env []string

	log *zap.Logger
}

// NewProcessExtractor returns an extractor for command. An empty command falls back
// to DefaultCommand.
func NewProcessExtractor(log *zap.Logger, command []string, apiKey string, timeout time.Duration) *ProcessExtractor {
	if len(command) == 0 {
		command = DefaultCommand
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ProcessExtractor{
		Command: command,
		APIKey:  apiKey,
		Timeout: timeout,
		log:     log,
	}
}

// Extract runs the extractor and blocks until it exits. A non-zero exit is reported
// through Result, not as an error; errors mean the process could not be run to
// completion.
func (p *ProcessExtractor) Extract(ctx context.Context, cvText string, candidateID int64) (*Result, error) {
	if len(p.Command) == 0 {
		return nil, &Error{Message: "no extractor command configured"}
	}

	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	args := append(append([]string{}, p.Command[1:]...), cvText, strconv.FormatInt(candidateID, 10), p.APIKey)
	cmd := exec.CommandContext(ctx, p.Command[0], args...)
	if len(p.Env) > 0 {
		cmd.Env = append(os.Environ(), p.Env...)
	}

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	p.log.Debug("running skill extractor",
		zap.Int64("candidate_id", candidateID),
		zap.String("command", p.Command[0]),
		zap.String("cv_text", logger.Truncate(cvText, logPreviewLimit)),
	)

	start := time.Now()
	runErr := cmd.Run()
	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if runErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			result.ExitCode = -1
			return result, &Error{Message: "extractor interrupted", Cause: ctxErr}
		}
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return nil, &Error{Message: "failed to start extractor", Cause: runErr}
		}
		result.ExitCode = exitErr.ExitCode()
	}

	fields := []zap.Field{
		zap.Int64("candidate_id", candidateID),
		zap.Int("exit_code", result.ExitCode),
		zap.Duration("duration", result.Duration),
	}
	if result.Succeeded() {
		p.log.Info("skill extraction finished", fields...)
	} else {
		p.log.Warn("skill extraction failed",
			append(fields, zap.String("diagnostics", logger.Truncate(result.Diagnostics(), logPreviewLimit)))...)
	}
	return result, nil
}

// ParseCommand splits a configured command line on whitespace.
func ParseCommand(line string) []string {
	return strings.Fields(line)
}
