package middleware

import (
	"net/http"
	"strings"

	"sevabazar/internal/domain/entities"
	"sevabazar/internal/usecase/interfaces"
	"sevabazar/pkg"

	"github.com/gin-gonic/gin"
)

const callerContextKey = "caller"

var (
	errAuthRequired   = pkg.NewDomainErrorSimple("AUTH_REQUIRED", "Authentication required", http.StatusUnauthorized)
	errInvalidSession = pkg.NewDomainErrorSimple("INVALID_SESSION", "Invalid or expired session", http.StatusUnauthorized)
)

// Authenticate resolves the bearer session token to a Caller and attaches it
// to the request context. Authorization decisions stay in the usecases; this
// middleware only answers "who is calling".
func Authenticate(sessions interfaces.ISessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(errAuthRequired.HTTPStatus, errAuthRequired.ToHTTPError())
			return
		}

		caller, err := sessions.Get(c.Request.Context(), token)
		if err != nil {
			appErr := pkg.NewDomainError("SESSION_LOOKUP_FAILED", "Could not verify session", err, http.StatusInternalServerError)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		if caller.ID == "" {
			c.AbortWithStatusJSON(errInvalidSession.HTTPStatus, errInvalidSession.ToHTTPError())
			return
		}

		c.Set(callerContextKey, caller)
		c.Next()
	}
}

// CallerFrom returns the Caller attached by Authenticate.
func CallerFrom(c *gin.Context) (entities.Caller, bool) {
	v, ok := c.Get(callerContextKey)
	if !ok {
		return entities.Caller{}, false
	}
	caller, ok := v.(entities.Caller)
	return caller, ok
}

// SetCaller attaches a Caller directly, for tests that bypass Authenticate.
func SetCaller(c *gin.Context, caller entities.Caller) {
	c.Set(callerContextKey, caller)
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
