package domain

import "strings"

// Command is a fully assembled external command invocation. Wrappers build
// argv lists only; no shell interpolation ever happens.
type Command struct {
	// Args is the argv list, Args[0] being the executable.
	Args []string

	// Dir is the working directory. Tool wrappers always set this to the
	// project root.
	Dir string

	// Env holds extra environment variables overriding the inherited ones.
	Env map[string]string
}

// String renders the command the way it would be typed into a shell,
// quoting arguments that contain whitespace.
func (c Command) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		if strings.ContainsAny(a, " \t") {
			parts[i] = "'" + a + "'"
		} else {
			parts[i] = a
		}
	}
	return strings.Join(parts, " ")
}
