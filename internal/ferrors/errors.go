// Package ferrors provides the error taxonomy for gdb-fzf.
// Every failure class that can surface during an interaction has its own
// type so that callers can decide between reporting to the user and
// degrading to a silent no-op.
package ferrors

import (
	"fmt"
	"strings"
)

// FzfError is the base interface for all gdb-fzf errors
type FzfError interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

// baseError provides common functionality for all gdb-fzf errors
type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// SymbolResolutionError reports every required symbol that failed to
// resolve, not just the first one. A user cannot attach a debugger to
// their debugger, so the full list is the only diagnostic they get.
type SymbolResolutionError struct {
	baseError
	Missing []string
}

// NewSymbolResolutionError creates a new symbol resolution error
func NewSymbolResolutionError(missing []string) *SymbolResolutionError {
	return &SymbolResolutionError{
		baseError: baseError{
			code:    "SYMBOL_ERROR",
			message: fmt.Sprintf("failed to resolve required symbols: %s", strings.Join(missing, ", ")),
		},
		Missing: missing,
	}
}

// LaunchError represents a failure to spawn an external process (the
// finder or the batch-mode host used for previews)
type LaunchError struct {
	baseError
	Command string
}

// NewLaunchError creates a new launch error
func NewLaunchError(command string, message string, cause error) *LaunchError {
	return &LaunchError{
		baseError: baseError{
			code:    "LAUNCH_ERROR",
			message: message,
			cause:   cause,
		},
		Command: command,
	}
}

// ProtocolError represents malformed output from the finder process
type ProtocolError struct {
	baseError
	Output string
}

// NewProtocolError creates a new protocol error
func NewProtocolError(output string, message string) *ProtocolError {
	return &ProtocolError{
		baseError: baseError{
			code:    "PROTOCOL_ERROR",
			message: message,
		},
		Output: output,
	}
}

// BufferWriteError represents a refused or failed write into the host's
// line buffer
type BufferWriteError struct {
	baseError
	Text string
}

// NewBufferWriteError creates a new buffer write error
func NewBufferWriteError(text string, message string, cause error) *BufferWriteError {
	return &BufferWriteError{
		baseError: baseError{
			code:    "BUFFER_WRITE_ERROR",
			message: message,
			cause:   cause,
		},
		Text: text,
	}
}

// ConfigurationError represents errors in configuration files
type ConfigurationError struct {
	baseError
	Path string
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(path string, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{
			code:    "CONFIG_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// CacheError represents errors in command cache operations
type CacheError struct {
	baseError
	Path string
}

// NewCacheError creates a new cache error
func NewCacheError(path string, message string, cause error) *CacheError {
	return &CacheError{
		baseError: baseError{
			code:    "CACHE_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}
