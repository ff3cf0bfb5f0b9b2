package server

// HTTPError is the error envelope returned by the server.
type HTTPError struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AuthSignupRequest represents the signup payload.
type AuthSignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthLoginRequest represents the login payload.
type AuthLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries a bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// SubmitLinkRequest is the body of POST /api/v1/urls.
type SubmitLinkRequest struct {
	URL          string `json:"url"`
	Title        string `json:"title,omitempty"`
	DateAccessed string `json:"date_accessed,omitempty"` // RFC 3339
}

// IngestRequest is the webhook body: the URL alone, identity comes from the key.
type IngestRequest struct {
	URL string `json:"url"`
}
