// Package version provides information about the build of the exporter
package version

// BuildInfo holds version information about the build
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information. version, commit and date are set
// at build time with -ldflags, e.g.
// -X 'itemsexport/internal/core/version.version=v0.1.0'
func Info() BuildInfo {
	return BuildInfo{
		Service: "itemsexport",
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// String renders "version (commit, date)" for --version output
func (b BuildInfo) String() string {
	return b.Version + " (" + b.Commit + ", " + b.Date + ")"
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
