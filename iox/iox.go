// Package iox provides I/O helpers for resource cleanup.
package iox

import (
	"errors"
	"io"
)

// DiscardClose closes c and discards the error.
// Use in defer statements where close errors are unactionable, such as
// input readers or response bodies:
//
//	defer iox.DiscardClose(obj)
func DiscardClose(c io.Closer) { _ = c.Close() }

// CloseAll closes every closer in order, skipping nils, and joins the
// errors. Every closer is closed even when an earlier one fails.
func CloseAll(cs ...io.Closer) error {
	var errs []error
	for _, c := range cs {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
