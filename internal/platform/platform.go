// Package platform maps the running OS and CPU to the runtime
// distributor's naming scheme. There is no recovery path here: a
// platform the distributor has no runtimes for is a configuration
// error the process cannot work around.
package platform

import (
	"fmt"
	"runtime"
)

// ErrUnsupportedPlatform indicates the host OS or architecture has no
// corresponding runtime distribution.
var ErrUnsupportedPlatform = fmt.Errorf("unsupported platform")

// Platform identifies the host in distributor naming terms.
type Platform struct {
	// OS is one of "linux", "mac", "windows"
	OS string

	// Arch is one of "x64", "aarch64", "arm", "x32"
	Arch string
}

func (p Platform) String() string {
	return p.OS + "/" + p.Arch
}

// Identify resolves the current host platform.
func Identify() (Platform, error) {
	os, err := IdentifyOS(runtime.GOOS)
	if err != nil {
		return Platform{}, err
	}

	arch, err := IdentifyArch(runtime.GOARCH)
	if err != nil {
		return Platform{}, err
	}

	return Platform{OS: os, Arch: arch}, nil
}

// IdentifyOS maps a GOOS value to the distributor's OS name.
func IdentifyOS(goos string) (string, error) {
	switch goos {
	case "linux":
		return "linux", nil
	case "darwin":
		return "mac", nil
	case "windows":
		return "windows", nil
	}

	return "", fmt.Errorf("%w: no runtime distribution for OS %q", ErrUnsupportedPlatform, goos)
}

// IdentifyArch maps a GOARCH value to the distributor's architecture name.
func IdentifyArch(goarch string) (string, error) {
	switch goarch {
	case "amd64":
		return "x64", nil
	case "arm64":
		return "aarch64", nil
	case "arm":
		return "arm", nil
	case "386":
		return "x32", nil
	}

	return "", fmt.Errorf("%w: no runtime distribution for architecture %q", ErrUnsupportedPlatform, goarch)
}
