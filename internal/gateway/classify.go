package gateway

import (
	"errors"
	"net/http"
	"strings"
)

// transportIndicators mark a transport or CORS style failure. Matching is
// case-insensitive against the whole error text.
var transportIndicators = []string{
	"failed to fetch",
	"network error",
	"connection refused",
	"timeout",
	"econnrefused",
	"socket hang up",
	"no available backends",
	"method not allowed",
}

type statusCoder interface {
	StatusCode() int
}

// IsBackendDown reports whether err indicates the backend itself is
// unreachable, as opposed to a bad response for this one request. An HTTP
// 405 counts: the proxy in front of the career backend answers 405 when no
// backend is registered for a route.
func IsBackendDown(err error) bool {
	if err == nil {
		return false
	}

	var sc statusCoder
	if errors.As(err, &sc) && sc.StatusCode() == http.StatusMethodNotAllowed {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, indicator := range transportIndicators {
		if strings.Contains(msg, indicator) {
			return true
		}
	}
	return false
}
