package common

// AuthorizationHeaderName is the HTTP header that carries the bearer token.
const AuthorizationHeaderName = "Authorization"

// CSRFHeaderName is the HTTP header clients echo the CSRF cookie value into
// on state-changing requests (cookie-based deployments only).
const CSRFHeaderName = "X-CSRF-Token"

// CSRFCookieName is the cookie the server issues for double-submit CSRF checks.
const CSRFCookieName = "csrf_token"
