package version

// Version and GitRef are replaced at build time with
// -ldflags "-X github.com/techalysis/techalysis/pkg/version.Version=...".
var Version = "v0.1.0-dev"

var GitRef = "unknown"

func String() string {
	if GitRef == "" || GitRef == "unknown" {
		return Version
	}
	return Version + "-" + GitRef
}
