// Package version exposes the build stamp baked into the binary.
package version

// BuildInfo is the build stamp the meta endpoints serve.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Overridden at build time, for example
//
//	go build -ldflags "\
//	  -X 'numwash/internal/core/version.version=v0.1.0' \
//	  -X 'numwash/internal/core/version.commit=4f9c21d' \
//	  -X 'numwash/internal/core/version.date=2026-08-23'"
//
// The sweep binary additionally stamps service=numwash-sweep.
var (
	service = "numwash-api"
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info reports the stamp for the running binary
func Info() BuildInfo {
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}
