package params

//nolint:gochecknoglobals // set via ldflags at build time.
var (
	// Version is the application version, set via ldflags.
	Version = "dev"
	// Commit is the VCS revision the binary was built from, set via ldflags.
	Commit = "none"
	// CompiledAt is the build timestamp, set via ldflags.
	CompiledAt = "unknown"
)

// VersionString renders the build information on one line.
func VersionString() string {
	return Version + " (" + Commit + ", built " + CompiledAt + ")"
}
