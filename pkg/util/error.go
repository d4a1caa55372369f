// pkg/util/error.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorLogger accumulates errors found while validating configuration and
// resource descriptions so that validation can continue past the first
// problem. Push and Pop maintain a path to the item being checked, which
// prefixes each reported error.
type ErrorLogger struct {
	hierarchy []string
	errs      []error
}

func (e *ErrorLogger) Push(s string) {
	e.hierarchy = append(e.hierarchy, s)
}

func (e *ErrorLogger) Pop() {
	e.hierarchy = e.hierarchy[:len(e.hierarchy)-1]
}

func (e *ErrorLogger) Depth() int {
	return len(e.hierarchy)
}

func (e *ErrorLogger) ErrorString(s string, args ...any) {
	e.Error(fmt.Errorf(s, args...))
}

// Error records err under the current path; the original error stays
// available to errors.Is and errors.As.
func (e *ErrorLogger) Error(err error) {
	if len(e.hierarchy) > 0 {
		err = fmt.Errorf("%s: %w", strings.Join(e.hierarchy, " / "), err)
	}
	e.errs = append(e.errs, err)
}

func (e *ErrorLogger) HaveErrors() bool {
	return len(e.errs) > 0
}

// Err returns nil if no errors have been reported and otherwise an error
// that joins all of them.
func (e *ErrorLogger) Err() error {
	return errors.Join(e.errs...)
}

func (e *ErrorLogger) String() string {
	return strings.Join(MapSlice(e.errs, error.Error), "\n")
}
