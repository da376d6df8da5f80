// Package session provides the CLI commands that run a task session.
package session

import "github.com/spf13/cobra"

// Register adds the session commands to parent and makes running a session
// the parent's default action.
func Register(parent *cobra.Command) {
	RegisterRunCmd(parent)
	addRunFlags(parent)
	parent.RunE = runSession
}
