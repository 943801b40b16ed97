package common

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "authkeeper_session"
