package common

const (
	// AuthorizationHeaderName carries the bearer token on protected requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix is matched case-sensitively, including the trailing space.
	BearerPrefix = "Bearer "

	// TokenType is echoed back to clients in the login response.
	TokenType = "Bearer"
)
