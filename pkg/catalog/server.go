package catalog

// Server describes how to launch a tool host: the command to spawn and
// the environment it runs with. Entries in Env override values loaded
// from EnvFile.
type Server struct {
	Name    string            `json:"-"`
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env"`
	EnvFile string            `json:"env_file,omitempty"`
}
