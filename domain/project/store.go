package project

// Store is the port for persisting projects between runs. The project
// file is exclusively owned by one process for the duration of a command;
// no concurrent-writer protocol exists.
type Store interface {
	// Load reads and structurally validates a project file
	Load(path string) (*Project, error)

	// Save writes the project atomically enough that a failed write never
	// corrupts an existing file
	Save(p *Project, path string) error
}
