package middleware

import (
	"net/http"
	"time"
)

// defaultSlow is the warn threshold AccessLog applies when callers take the default
const defaultSlow = 500 * time.Millisecond

// AccessLog is AccessLogZerolog with the stock slow threshold
func AccessLog(next http.Handler) http.Handler {
	return AccessLogZerolog(AccessLogOptions{Slow: defaultSlow})(next)
}
