package build

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/shlex"

	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
)

// argLineDenyPattern matches shell control characters that must not appear in
// free-form argument lines.
var argLineDenyPattern = regexp.MustCompile(`[&|;]`)

// ValidateArgLine rejects argument lines containing '&', '|' or ';'.
func ValidateArgLine(argLine string) error {
	if argLineDenyPattern.MatchString(argLine) {
		return fmt.Errorf("%q: %w", argLine, gferrors.ErrInvalidArgLine)
	}
	return nil
}

// SplitArgLine splits an argument line into arguments, honoring shell quoting.
func SplitArgLine(argLine string) ([]string, error) {
	if strings.TrimSpace(argLine) == "" {
		return nil, nil
	}
	if err := ValidateArgLine(argLine); err != nil {
		return nil, err
	}

	args, err := shlex.Split(argLine)
	if err != nil {
		return nil, fmt.Errorf("parse argument line %q: %w: %w", argLine, err, gferrors.ErrInvalidArgLine)
	}
	return args, nil
}
