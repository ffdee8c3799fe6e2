package dto

// ActionResult is the uniform envelope for mutating endpoints: the caller
// always learns whether the action landed and, on failure, why.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// OKResult is the canonical success envelope.
func OKResult() ActionResult {
	return ActionResult{Success: true}
}

// FailResult wraps a human-readable failure message.
func FailResult(message string) ActionResult {
	return ActionResult{Success: false, Message: message}
}
