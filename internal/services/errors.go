// Package services holds the error taxonomy shared by the probe and API
// layers. Sentinel markers classify failures so the reconciler can decide
// between "expected absence" and "degraded this cycle".
package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound marks an expected absence: a missing cache directory,
	// no credentials in local storage, no matching segment. Callers treat
	// it as an empty result, not a failure.
	ErrNotFound = errors.New("not found")

	// ErrTransient marks a failure worth retrying or skipping for one
	// cycle: probe timeouts, HTTP errors, an unreadable segment.
	ErrTransient = errors.New("transient failure")

	// ErrConfiguration marks an unusable configuration value detected at
	// construction time.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap tags an error with one of the sentinel markers above while keeping
// component and operation context in the message.
func Wrap(marker error, component, operation string, err error) error {
	detail := buildDetail(component, operation)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation string) string {
	parts := make([]string, 0, 2)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
