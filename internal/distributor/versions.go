package distributor

// VersionInfo describes one major version for display.
type VersionInfo struct {
	Version     int
	Description string
}

// StaticVersions is the fallback version table used when the remote
// catalog cannot be reached or parsed.
var StaticVersions = []VersionInfo{
	{Version: 8, Description: "LTS - legacy applications"},
	{Version: 11, Description: "LTS"},
	{Version: 17, Description: "LTS"},
	{Version: 21, Description: "LTS - recommended"},
	{Version: 24, Description: "Current release"},
}
