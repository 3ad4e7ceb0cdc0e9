package config

// pyprojectFile mirrors the subset of pyproject.toml the toolkit reads.
type pyprojectFile struct {
	Tool toolSection `toml:"tool"`
}

type toolSection struct {
	Poetry poetrySection `toml:"poetry"`
}

type poetrySection struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`

	// Dependencies values are either constraint strings or inline tables;
	// only the python constraint is read and that one is always a string.
	Dependencies map[string]any `toml:"dependencies"`
}
