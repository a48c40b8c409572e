package utils

import (
	"github.com/pkg/errors"

	"go.viam.com/animsolvers/logging"
)

// NewConfigValidationError returns a config validation error occurring at a given path.
func NewConfigValidationError(path string, err error) error {
	return errors.Wrapf(err, "error validating %q", path)
}

// NewConfigValidationFieldRequiredError returns a config validation error for a field missing at a given path.
func NewConfigValidationFieldRequiredError(path, field string) error {
	return NewConfigValidationError(path, errors.Errorf("%q is required", field))
}

// NewUnexpectedTypeError is used when there is a type mismatch.
func NewUnexpectedTypeError(expected interface{}, actual interface{}) error {
	return errors.Errorf("expected %T but got %T", expected, actual)
}

// UncheckedError is used in places where it is not important to check the error, such as flushing logs at exit. The
// error is logged to the global logger at debug level.
func UncheckedError(err error) {
	UncheckedErrorFunc(func() error { return err })
}

// UncheckedErrorFunc calls f and logs any error it returns to the global logger at debug level.
func UncheckedErrorFunc(f func() error) {
	if err := f(); err != nil {
		logging.Global().Debugw("unchecked error", "error", err)
	}
}
