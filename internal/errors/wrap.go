package errors

import "fmt"

// Wrap adds context to errors at package boundaries and returns nil for a nil err.
// The original chain is preserved, so sentinel checks keep working:
//
//	if err := src.Load(ctx); err != nil {
//	    return errors.Wrap(err, "failed to load tasks")
//	}
//
//	if errors.Is(err, errors.ErrFetchFailed) { ... }
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf is Wrap with a formatted message:
//
//	return errors.Wrapf(errors.ErrNoResolvableDate, "task %s", taskID)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
