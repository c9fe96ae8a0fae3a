package app

import "fmt"

// Set via ldflags:
// go build -ldflags "-X github.com/heartmarshall/culops-pantry/internal/app.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

const serviceName = "culops-pantry"

// BuildVersion returns a formatted version string for startup logs and health endpoints.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}

// UserAgent identifies this service on outgoing culops requests.
func UserAgent() string {
	if Commit == "unknown" || Commit == "" {
		return serviceName + "/" + Version
	}
	return fmt.Sprintf("%s/%s (+%s)", serviceName, Version, Commit)
}
