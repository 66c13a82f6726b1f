package middlewares

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
)

// Origins the web client uses during local development; always allowed.
var defaultDevOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:3001",
	"http://127.0.0.1:3001",
}

var (
	localhostOrigin = regexp.MustCompile(`^http://(localhost|127\.0\.0\.1):\d+$`)
	lanOrigin       = regexp.MustCompile(`^http://192\.168\.\d+\.\d+(?::\d+)?$`)
	netlifyOrigin   = regexp.MustCompile(`^https://[a-z0-9-]+\.netlify\.app$`)
)

// CORSMiddleware allows the configured origins plus localhost on any port,
// private-LAN addresses and netlify preview deploys. Disallowed origins get
// no CORS headers rather than an error, so browsers deny them cleanly.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins)+len(defaultDevOrigins))

	for _, origin := range defaultDevOrigins {
		allowed[origin] = struct{}{}
	}

	for _, origin := range allowedOrigins {
		allowed[strings.TrimRight(origin, "/")] = struct{}{}
	}

	return func(ctx *gin.Context) {
		origin := strings.TrimRight(ctx.GetHeader("Origin"), "/")

		if origin != "" && originAllowed(allowed, origin) {
			ctx.Header("Access-Control-Allow-Origin", origin)
			ctx.Header("Access-Control-Allow-Credentials", "true")
			ctx.Header("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
			ctx.Header("Access-Control-Allow-Headers", "Content-Type,Authorization,x-admin-passcode")
		}

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}

		ctx.Next()
	}
}

func originAllowed(allowed map[string]struct{}, origin string) bool {
	if _, ok := allowed[origin]; ok {
		return true
	}

	return localhostOrigin.MatchString(origin) ||
		lanOrigin.MatchString(origin) ||
		netlifyOrigin.MatchString(origin)
}
