package cache

import "fmt"

// Key identifies one cached runtime archive by major version, OS and
// architecture. Semantically equal keys always map to the same filename.
type Key struct {
	// Version is the Java major version (e.g. 21)
	Version int

	// OS is the distributor OS name (linux, mac, windows)
	OS string

	// Arch is the distributor architecture name (x64, aarch64, arm, x32)
	Arch string
}

// Filename returns the cache filename for this key.
func (k Key) Filename() string {
	return fmt.Sprintf("java-%d-%s-%s.tar.gz", k.Version, k.OS, k.Arch)
}

func (k Key) String() string {
	return fmt.Sprintf("Java %d (%s/%s)", k.Version, k.OS, k.Arch)
}
