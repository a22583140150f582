package tui

// ActionableError wraps an error message with an actionable suggestion.
//
// Example usage:
//
//	err := NewActionableError("Remote branch is ahead of the local branch.", "Execute 'git pull' and run the command again.")
//	output.Error(err)
//	// Outputs: ✗ Remote branch is ahead of the local branch.
//	//          ▸ Try: Execute 'git pull' and run the command again.
type ActionableError struct {
	// Message is the primary error message.
	Message string

	// Suggestion provides actionable guidance for resolving the error.
	Suggestion string

	// Context holds the underlying error detail, appended in parentheses.
	Context string
}

// NewActionableError creates a new ActionableError with message and suggestion.
func NewActionableError(msg, suggestion string) *ActionableError {
	return &ActionableError{
		Message:    msg,
		Suggestion: suggestion,
	}
}

// Error implements the error interface.
// Returns the message with context if provided, e.g., "branch not found (feature/x)".
func (e *ActionableError) Error() string {
	if e.Context != "" {
		return e.Message + " (" + e.Context + ")"
	}
	return e.Message
}

// WithContext adds optional context to the error.
// Returns the same error for method chaining.
func (e *ActionableError) WithContext(ctx string) *ActionableError {
	e.Context = ctx
	return e
}
