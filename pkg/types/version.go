package types

// set by main from -ldflags
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
