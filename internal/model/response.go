package model

// SessionResponse is the body of a successful login or refresh. The shape is
// a compatibility contract with the admin dashboard client.
type SessionResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
}

// FailureResponse is the generic failure body for session and authorization
// errors. Message carries no detail about why authentication failed.
type FailureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is the failure body for resource endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse acknowledges a mutation with no payload, e.g. a delete.
type SuccessResponse struct {
	Success bool `json:"success"`
}
