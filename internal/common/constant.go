package common

const (
	// AuthorizationHeaderName carries the bearer token on protected requests.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme is the only accepted authorization scheme.
	BearerScheme = "Bearer"

	// TokenType is reported to clients next to every issued access token.
	TokenType = "bearer"

	// RequestIDHeaderName is echoed back on every response.
	RequestIDHeaderName = "X-Request-ID"

	// DateLayout is the calendar note key format (YYYY-MM-DD).
	DateLayout = "2006-01-02"
)
