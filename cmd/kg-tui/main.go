// Command kg-tui is an interactive browser of the catalog query results.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dd0wney/assembly-kg/pkg/cli"
	"github.com/dd0wney/assembly-kg/pkg/storage"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		flags   cli.Flags
		rebuild bool
	)

	cmd := &cobra.Command{
		Use:           "kg-tui",
		Short:         "Browse the catalog query results interactively",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cli.Setup(cmd, &flags)
			if err != nil {
				return err
			}
			return env.Finish(run(cmd, env, rebuild))
		},
	}

	flags.BindCommon(cmd)
	flags.BindAssembly(cmd)
	flags.BindGraph(cmd, "ttl", "Graph file to browse (.ttl, .nt, optionally .sz)")
	flags.BindFixture(cmd)
	cmd.Flags().BoolVar(&rebuild, "rebuild", false, "Build the graph in memory instead of loading the file")

	return cmd
}

func run(cmd *cobra.Command, env *cli.Env, rebuild bool) error {
	var (
		store *storage.TripleStore
		err   error
	)
	if rebuild {
		store, err = env.BuildGraph()
	} else {
		store, err = env.LoadGraph(cmd.Context())
	}
	if err != nil {
		return err
	}
	store.Freeze()

	m := initialModel(cmd.Context(), env.Runner(store), store.GetStatistics(), env.Params())
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	_, err = p.Run()
	return err
}
