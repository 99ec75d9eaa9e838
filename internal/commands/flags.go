package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"firetask/internal/exitcode"
	"firetask/internal/service"
)

// multiFlag collects repeated string flag values in order.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(s string) error {
	*m = append(*m, s)
	return nil
}

// optFlag is a string flag that records whether it was provided, so an
// explicitly empty value can be told apart from an absent one.
type optFlag struct {
	value string
	set   bool
}

func (o *optFlag) String() string { return o.value }

func (o *optFlag) Set(s string) error {
	o.value = s
	o.set = true
	return nil
}

// parseDue accepts a calendar date or a full RFC 3339 timestamp.
func parseDue(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid due date: %s (want YYYY-MM-DD or RFC 3339)", s)
}

// storeExit prints a store error and returns its exit code.
func storeExit(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		fmt.Fprintln(errOut, "error: task not found")
		return exitcode.UserError
	case errors.Is(err, service.ErrPermissionDenied):
		fmt.Fprintln(errOut, "error: permission denied (run: firetask login)")
		return exitcode.AuthError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}

// authExit prints an identity error and returns its exit code. The message
// set is small and fixed; provider details ride along after the colon.
func authExit(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		fmt.Fprintln(errOut, "error: invalid email or password")
		return exitcode.AuthError
	case errors.Is(err, service.ErrEmailInUse):
		fmt.Fprintln(errOut, "error: email already in use")
		return exitcode.AuthError
	case errors.Is(err, service.ErrWeakPassword):
		fmt.Fprintln(errOut, "error: password too weak")
		return exitcode.AuthError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}
