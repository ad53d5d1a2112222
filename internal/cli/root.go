// Package cli implements the crudable command-line interface, an inspection
// tool over the entity-relationship registry of the config domain.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/crudable/pkg/registry"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	output    string
	jsonMode  bool
}

// session carries the state shared by the commands of one invocation.
type session struct {
	flags  rootFlags
	v      *viper.Viper
	logger *slog.Logger
	reg    *registry.Registry
}

// NewRootCmd creates the top-level "crudable" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	s := &session{}

	root := &cobra.Command{
		Use:   "crudable",
		Short: "Inspect entity declarations of crudable containers",
		Long: "crudable reports which members of the config containers hold\n" +
			"collections of which entity types, as seen by the CRUD engine.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&s.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVarP(&s.flags.output, "output", "o", "", "output format: text, json or yaml")
	root.PersistentFlags().BoolVar(&s.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(s))
	root.AddCommand(newContainersCmd(s))
	root.AddCommand(newDescribeCmd(s))
	root.AddCommand(newEntitiesCmd(s))
	root.AddCommand(newHasCmd(s))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	err := root.Execute()
	if err == nil {
		os.Exit(exitSuccess)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(exitCode(err))
}

// systemError marks failures that are not caused by the user's input.
type systemError struct {
	err error
}

func (e *systemError) Error() string { return e.err.Error() }
func (e *systemError) Unwrap() error { return e.err }

func sysErr(format string, args ...any) error {
	return &systemError{err: fmt.Errorf(format, args...)}
}

// exitCode maps an error returned by a command to a process exit code.
func exitCode(err error) int {
	var se *systemError
	if errors.As(err, &se) {
		return exitSysError
	}
	return exitUserError
}
