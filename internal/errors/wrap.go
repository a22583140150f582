package errors

import "fmt"

// Wrap adds context to an error at a package boundary and returns nil for a
// nil error, so it can be used inline:
//
//	if err := repo.Checkout(ctx, branch); err != nil {
//	    return errors.Wrap(err, "checkout release branch")
//	}
//
// The chain is preserved, so errors.Is(err, errors.ErrRemoteAhead) and
// errors.Kind(err) keep working on the result.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf is Wrap with a formatted message:
//
//	return errors.Wrapf(err, "merge %s into %s", source, target)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
