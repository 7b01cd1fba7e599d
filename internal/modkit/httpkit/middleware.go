package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "numwash/internal/platform/net/http"
	"numwash/internal/platform/net/middleware"
)

// CommonStack is the baseline middleware every mounted API scope gets.
// Compose Guard or anything service specific on top at wiring time.
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// correlation first, then panic containment
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.TagSQLTrace(),
		middleware.RecoverJSON,

		// response hygiene and the access log
		middleware.NoCache(),
		middleware.Logger(),

		// transport niceties
		middleware.CORS(middleware.CORSOptions{}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Timeout(30 * time.Second),
	}
}

// Guard binds the request guard to the platform JSON writer.
// phttp.JSON already matches the write func(w, status, body) shape.
func Guard(p middleware.GuardPort) func(http.Handler) http.Handler {
	return middleware.Guard(p, phttp.JSON)
}
