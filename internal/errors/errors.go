package errors

import (
	"errors"
	"fmt"
	"time"
)

// Error types for the findsweep engine
type ErrorType string

const (
	// Validation errors (detected before any process is spawned)
	ErrorTypeFlag ErrorType = "flag"
	ErrorTypeGlob ErrorType = "glob"

	// Process errors
	ErrorTypeTool  ErrorType = "tool_not_found"
	ErrorTypeSpawn ErrorType = "spawn"
	ErrorTypeRun   ErrorType = "run"

	// File errors
	ErrorTypeFileRead  ErrorType = "file_read"
	ErrorTypeFileWrite ErrorType = "file_write"

	// Configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// ErrEmptyPattern is returned when a search or replace is requested with a
// blank pattern. It is always detected before a process is spawned.
var ErrEmptyPattern = errors.New("search pattern is empty")

// FlagError represents a rejected command-line flag
type FlagError struct {
	Type   ErrorType
	Flag   string
	Reason string
}

// NewFlagError creates a new flag rejection error
func NewFlagError(flag, reason string) *FlagError {
	return &FlagError{
		Type:   ErrorTypeFlag,
		Flag:   flag,
		Reason: reason,
	}
}

// Error implements the error interface
func (e *FlagError) Error() string {
	return fmt.Sprintf("flag %q is not allowed: %s", e.Flag, e.Reason)
}

// GlobError represents an invalid include/exclude glob pattern
type GlobError struct {
	Type    ErrorType
	Pattern string
}

// NewGlobError creates a new glob validation error
func NewGlobError(pattern string) *GlobError {
	return &GlobError{
		Type:    ErrorTypeGlob,
		Pattern: pattern,
	}
}

// Error implements the error interface
func (e *GlobError) Error() string {
	return fmt.Sprintf("invalid glob pattern %q", e.Pattern)
}

// ToolError represents a missing external search binary
type ToolError struct {
	Type       ErrorType
	Binary     string
	Underlying error
}

// NewToolError creates a new missing-tool error
func NewToolError(binary string, err error) *ToolError {
	return &ToolError{
		Type:       ErrorTypeTool,
		Binary:     binary,
		Underlying: err,
	}
}

// Error implements the error interface
func (e *ToolError) Error() string {
	return fmt.Sprintf("search tool %q not found: %v", e.Binary, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As
func (e *ToolError) Unwrap() error {
	return e.Underlying
}

// SpawnError represents an OS-level failure to start the external process
type SpawnError struct {
	Type       ErrorType
	Binary     string
	Underlying error
}

// NewSpawnError creates a new process spawn error
func NewSpawnError(binary string, err error) *SpawnError {
	return &SpawnError{
		Type:       ErrorTypeSpawn,
		Binary:     binary,
		Underlying: err,
	}
}

// Error implements the error interface
func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start %q: %v", e.Binary, e.Underlying)
}

// Unwrap returns the underlying error
func (e *SpawnError) Unwrap() error {
	return e.Underlying
}

// RunError represents a search process that exited with a failure status.
// Stderr holds the accumulated standard-error output of the run.
type RunError struct {
	Type     ErrorType
	Pattern  string
	ExitCode int
	Stderr   string
}

// NewRunError creates a new process failure error
func NewRunError(pattern string, exitCode int, stderr string) *RunError {
	return &RunError{
		Type:     ErrorTypeRun,
		Pattern:  pattern,
		ExitCode: exitCode,
		Stderr:   stderr,
	}
}

// Error implements the error interface
func (e *RunError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("search for %q failed with exit code %d: %s", e.Pattern, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("search for %q failed with exit code %d", e.Pattern, e.ExitCode)
}

// FileError represents a per-file failure during replacement
type FileError struct {
	Type       ErrorType
	Path       string
	Operation  string
	Underlying error
	Timestamp  time.Time
}

// NewFileError creates a new file error
func NewFileError(op, path string, err error) *FileError {
	errorType := ErrorTypeFileRead
	if op == "write" {
		errorType = ErrorTypeFileWrite
	}

	return &FileError{
		Type:       errorType,
		Path:       path,
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *FileError) Error() string {
	return fmt.Sprintf("file %s failed for %s: %v", e.Operation, e.Path, e.Underlying)
}

// Unwrap returns the underlying error
func (e *FileError) Unwrap() error {
	return e.Underlying
}

// ConfigError represents a configuration error
type ConfigError struct {
	Type       ErrorType
	Field      string
	Value      string
	Underlying error
}

// NewConfigError creates a new config error
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{
		Type:       ErrorTypeConfig,
		Field:      field,
		Value:      value,
		Underlying: err,
	}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("config error for field %s (value %s): %v", e.Field, e.Value, e.Underlying)
	}
	return fmt.Sprintf("config error for field %s: %v", e.Field, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}
