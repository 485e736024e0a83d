package archive

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strings"
	"syscall"
)

// Failure classes. A StorageError matches its class with errors.Is.
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrDiskFull         = errors.New("no space left on device")
	ErrTimeout          = errors.New("operation timed out")
	ErrThrottled        = errors.New("rate limited")
	ErrAuth             = errors.New("authentication failed")
	ErrAccessDenied     = errors.New("access denied")
	ErrNetwork          = errors.New("network error")
	ErrUnclassified     = errors.New("storage error")
)

// StorageError is an archive failure with its class attached. The cause
// stays reachable through errors.As.
type StorageError struct {
	Kind error
	Op   string // "init", "write" or "read"
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	where := e.Op
	if e.Path != "" {
		where += " " + e.Path
	}
	return fmt.Sprintf("archive %s: %v: %v", where, e.Kind, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

// WrapWriteError classifies a write failure. Returns nil if err is nil.
func WrapWriteError(err error, path string) error {
	return wrap("write", path, err)
}

// WrapReadError classifies a read failure. Returns nil if err is nil.
func WrapReadError(err error, path string) error {
	return wrap("read", path, err)
}

// WrapInitError classifies a dataset construction failure.
func WrapInitError(err error, dataset string) error {
	return wrap("init", dataset, err)
}

func wrap(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Kind: classify(err), Op: op, Path: path, Err: err}
}

// Object stores report most failures as API error codes inside the
// message, so anything the typed checks miss is matched by text.
var messageRules = []struct {
	kind    error
	needles []string
}{
	{ErrPermissionDenied, []string{"permission denied", "eacces"}},
	{ErrNotFound, []string{"no such file", "does not exist", "not found", "enoent", "nosuchkey", "nosuchbucket"}},
	{ErrDiskFull, []string{"no space left", "disk full", "enospc", "quota exceeded"}},
	{ErrTimeout, []string{"timeout", "timed out", "deadline exceeded"}},
	{ErrThrottled, []string{"slowdown", "throttl", "429", "toomanyrequests"}},
	{ErrAuth, []string{"nocredentialproviders", "invalidaccesskeyid", "signaturedoesnotmatch", "expiredtoken", "401", "unauthorized"}},
	{ErrAccessDenied, []string{"accessdenied", "forbidden", "403"}},
	{ErrNetwork, []string{"connection refused", "no route to host", "network unreachable", "dial tcp"}},
}

func classify(err error) error {
	if kind := classifyTyped(err); kind != nil {
		return kind
	}
	msg := strings.ToLower(err.Error())
	for _, rule := range messageRules {
		for _, n := range rule.needles {
			if strings.Contains(msg, n) {
				return rule.kind
			}
		}
	}
	return ErrUnclassified
}

func classifyTyped(err error) error {
	var timeout interface{ Timeout() bool }
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &timeout) && timeout.Timeout():
		return ErrTimeout
	case errors.Is(err, fs.ErrPermission):
		return ErrPermissionDenied
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, syscall.ENOSPC):
		return ErrDiskFull
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ErrNetwork
	}
	return nil
}

func isNotFound(err error) bool {
	return classify(err) == ErrNotFound
}
