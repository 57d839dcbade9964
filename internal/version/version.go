package version

// Set at build time:
// go build -ldflags "-X Orthos/internal/version.Version=0.2.0 -X Orthos/internal/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String is the version line printed by the CLI and the health endpoint.
func String() string {
	return Version + " (" + GitCommit + ", built " + BuildTime + ")"
}
