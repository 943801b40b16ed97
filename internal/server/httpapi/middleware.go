package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
)

const identityKey = "sessionIdentity"

// sessionMiddleware authenticates requests by the session cookie. Requests
// without a valid, unexpired session token are rejected with 401.
func (s *HTTPServer) sessionMiddleware(c *gin.Context) {

	cookie, err := c.Cookie(common.SessionCookieName)
	if err != nil || cookie == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	identity, err := auth.ParseToken(cookie, s.jwtSecret)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.Set(identityKey, identity)
	c.Next()
}

func sessionFromContext(c *gin.Context) *auth.SessionIdentity {
	v, ok := c.Get(identityKey)
	if !ok {
		return &auth.SessionIdentity{}
	}
	identity, ok := v.(*auth.SessionIdentity)
	if !ok {
		return &auth.SessionIdentity{}
	}
	return identity
}
