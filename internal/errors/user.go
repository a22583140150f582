package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// Specific sentinels come before the kind they wrap so errors.Is() picks the
// most precise entry. Using a slice (not a map) because errors.Is() requires
// proper error chain traversal.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	// ===================
	// Repository state
	// ===================
	{
		err: ErrDirtyWorkingTree,
		info: ErrorInfo{
			Message: "You have some uncommitted files.",
			Action:  "Commit or discard local changes in order to proceed.",
		},
	},
	{
		err: ErrRemoteAhead,
		info: ErrorInfo{
			Message: "Remote branch is ahead of the local branch.",
			Action:  "Execute 'git pull' and run the command again.",
		},
	},
	{
		err: ErrRepositoryLocked,
		info: ErrorInfo{
			Message: "Another gitflow command is running in this repository.",
			Action:  "Wait for it to finish, or remove the lock file if that process is gone.",
		},
	},
	{
		err: ErrAmbiguousBranch,
		info: ErrorInfo{
			Message: "More than one matching branch exists.",
			Action:  "Pass the branch name explicitly or remove the stale branch.",
		},
	},
	{
		err: ErrBranchNotFound,
		info: ErrorInfo{
			Message: "The specified branch does not exist.",
			Action:  "Check the branch name with 'git branch -a' or create it first.",
		},
	},
	{
		err: ErrBranchExists,
		info: ErrorInfo{
			Message: "A branch with this name already exists.",
			Action:  "Choose a different name or finish the existing branch first.",
		},
	},
	{
		err: ErrTagNotFound,
		info: ErrorInfo{
			Message: "The requested tag does not exist.",
			Action:  "List tags with 'git tag' and pass an existing one.",
		},
	},
	{
		err: ErrNotGitRepo,
		info: ErrorInfo{
			Message: "This command must be run from within a git repository.",
			Action:  "Navigate to a git repository or pass --dir.",
		},
	},
	{
		err: ErrDetachedHead,
		info: ErrorInfo{
			Message: "HEAD is detached.",
			Action:  "Check out a branch before running the command.",
		},
	},
	{
		err: ErrInteractiveRequired,
		info: ErrorInfo{
			Message: "A choice is required but prompting is disabled.",
			Action:  "Pass the value with a flag or run in a terminal without --batch.",
		},
	},
	{
		err: ErrMenuCanceled,
		info: ErrorInfo{
			Message: "Operation canceled.",
		},
	},

	// ===================
	// Configuration
	// ===================
	{
		err: ErrInvalidArgLine,
		info: ErrorInfo{
			Message: "The build argument line contains '&', '|' or ';'.",
			Action:  "Remove shell control characters from the argument line.",
		},
	},
	{
		err: ErrInvalidBranchName,
		info: ErrorInfo{
			Message: "The branch name is not valid.",
			Action:  "Use a name accepted by 'git check-ref-format' and the configured pattern.",
		},
	},
	{
		err: ErrUnknownVersionPolicy,
		info: ErrorInfo{
			Message: "The configured version policy is unknown.",
			Action:  "Use one of the built-in policies (semver, odd-even) or leave it empty.",
		},
	},
	{
		err: ErrConflictingFlags,
		info: ErrorInfo{
			Message: "Conflicting options were specified.",
			Action:  "Check the command help for valid flag combinations.",
		},
	},
	{
		err: ErrConfiguration,
		info: ErrorInfo{
			Message: "Invalid configuration.",
			Action:  "Check the flags and the .gitflow.yaml configuration.",
		},
	},

	// ===================
	// Versions
	// ===================
	{
		err: ErrVersionFormat,
		info: ErrorInfo{
			Message: "The version string is not valid.",
			Action:  "Use a version like 1.2.3, 1.2.3-RC1 or 1.2.3-SNAPSHOT.",
		},
	},
	{
		err: ErrBlankVersion,
		info: ErrorInfo{
			Message: "A version could not be determined.",
			Action:  "Pass the version explicitly.",
		},
	},

	// ===================
	// External tools
	// ===================
	{
		err: ErrExternalTool,
		info: ErrorInfo{
			Message: "An external command failed.",
			Action:  "Inspect the command output; the repository was left as is for inspection.",
		},
	},
}

// errorInfoMap provides O(1) lookup for direct sentinel error matches.
//
//nolint:gochecknoglobals // Pre-built mapping for O(1) lookup performance
var errorInfoMap = buildErrorInfoMap()

func buildErrorInfoMap() map[error]ErrorInfo {
	m := make(map[error]ErrorInfo, len(errorInfoEntries))
	for _, entry := range errorInfoEntries {
		m[entry.err] = entry.info
	}
	return m
}

// getErrorInfo looks up the ErrorInfo for a given error.
// Returns an ErrorInfo with the original error message if not found.
func getErrorInfo(err error) ErrorInfo {
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}

	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve the issue.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
