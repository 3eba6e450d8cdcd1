package models

// AppInfo is what the version endpoint reports about the running server.
type AppInfo struct {
	Version string `json:"version"`
	Env     string `json:"env"`
	Commit  string `json:"commit,omitempty"`
	BuiltAt string `json:"builtAt,omitempty"`
}
