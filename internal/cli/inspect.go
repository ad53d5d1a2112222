package cli

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/cobra"
)

var errUnknownContainer = errors.New("unknown container")

// declView is the rendered form of one declaration.
type declView struct {
	Member    string   `json:"member" yaml:"member"`
	Kind      string   `json:"kind" yaml:"kind"`
	Owner     string   `json:"owner" yaml:"owner"`
	Inherited bool     `json:"inherited" yaml:"inherited"`
	Entities  []string `json:"entities" yaml:"entities"`
}

// containerView is the rendered form of one container.
type containerView struct {
	Name         string `json:"name" yaml:"name"`
	Declarations int    `json:"declarations" yaml:"declarations"`
}

func newContainersCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "containers",
		Short: "List the registered containers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var views []containerView
			for _, t := range s.reg.Containers() {
				decls, err := s.reg.DeclarationsFor(t)
				if err != nil {
					return sysErr("%s: %w", t.Name(), err)
				}
				views = append(views, containerView{Name: t.Name(), Declarations: len(decls)})
			}
			return s.render(cmd.OutOrStdout(), views, func(tw tableWriter) {
				tw.header("CONTAINER", "DECLARATIONS")
				for _, v := range views {
					tw.row(v.Name, v.Declarations)
				}
			})
		},
	}
}

func newDescribeCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <container>",
		Short: "Show the declared members of a container",
		Long: `Describe lists every member of the container that holds a collection of
entities, including members inherited from embedded structs.

Example:
  crudable describe ConfigState
  crudable describe SandboxState --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := s.container(args[0])
			if err != nil {
				return err
			}
			decls, err := s.reg.DeclarationsFor(t)
			if err != nil {
				return sysErr("%s: %w", t.Name(), err)
			}

			views := make([]declView, len(decls))
			for i, d := range decls {
				views[i] = declView{
					Member:    d.Member.Name,
					Kind:      d.Member.Kind.String(),
					Owner:     d.Member.Owner.Name(),
					Inherited: d.Member.Inherited(),
					Entities:  d.EntityNames(),
				}
			}
			return s.render(cmd.OutOrStdout(), views, func(tw tableWriter) {
				tw.header("MEMBER", "KIND", "OWNER", "ENTITIES")
				for _, v := range views {
					tw.row(v.Member, v.Kind, v.Owner, strings.Join(v.Entities, ", "))
				}
			})
		},
	}
}

func newEntitiesCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "entities <container> <member>",
		Short: "Print the entity types declared on a member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := s.container(args[0])
			if err != nil {
				return err
			}
			entities, err := s.reg.EntityTypesFor(t, args[1])
			if err != nil {
				return err
			}
			names := make([]string, len(entities))
			for i, e := range entities {
				names[i] = e.Name
			}
			return s.render(cmd.OutOrStdout(), names, func(tw tableWriter) {
				tw.header("ENTITY", "TYPE")
				for _, e := range entities {
					tw.row(e.Name, e.Type.String())
				}
			})
		},
	}
}

func newHasCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "has <container> <member>",
		Short: "Report whether a member carries an entity declaration",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			has := false
			if t, err := s.container(args[0]); err == nil {
				has = s.reg.HasDeclaration(t, args[1])
			}
			fmt.Fprintln(cmd.OutOrStdout(), has)
			return nil
		},
	}
}

// container looks up a registered container by name.
func (s *session) container(name string) (reflect.Type, error) {
	if t, ok := s.reg.Container(name); ok {
		return t, nil
	}
	var valid []string
	for _, t := range s.reg.Containers() {
		valid = append(valid, t.Name())
	}
	return nil, fmt.Errorf("%w %q (valid: %s)", errUnknownContainer, name, strings.Join(valid, ", "))
}
