// Command kg-build builds the assembly knowledge graph, writes it to a graph file and
// prints the result of every catalog query.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dd0wney/assembly-kg/pkg/cli"
	"github.com/dd0wney/assembly-kg/pkg/graphfile"
	"github.com/dd0wney/assembly-kg/pkg/logging"
	"github.com/dd0wney/assembly-kg/pkg/report"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		flags       cli.Flags
		skipQueries bool
	)

	cmd := &cobra.Command{
		Use:   "kg-build",
		Short: "Build the assembly knowledge graph",
		Long: `kg-build builds the knowledge graph of the sample assembly (or of a YAML
fixture), writes it to a Turtle, N-Triples or snappy-compressed graph file and runs the
seven catalog queries against the graph it just built.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cli.Setup(cmd, &flags)
			if err != nil {
				return err
			}
			return env.Finish(run(cmd, env, skipQueries))
		},
	}

	flags.BindCommon(cmd)
	flags.BindAssembly(cmd)
	flags.BindGraph(cmd, "out", "Graph file to write (.ttl, .nt, optionally .sz)")
	flags.BindFixture(cmd)
	cmd.Flags().BoolVar(&skipQueries, "skip-queries", false, "Only write the graph file")

	return cmd
}

func run(cmd *cobra.Command, env *cli.Env, skipQueries bool) error {
	ctx := cmd.Context()
	path := env.Config.GraphPath

	store, err := env.BuildGraph()
	if err != nil {
		return err
	}

	timer := logging.StartTimer(env.Logger, "graph saved", logging.Path(path))
	if err := graphfile.Save(ctx, path, store); err != nil {
		timer.EndError(err)
		return err
	}
	timer.End(logging.Triples(store.Len()))
	fmt.Fprintf(env.Stdout, "Wrote %s with %d triples.\n", path, store.Len())

	if skipQueries {
		return nil
	}

	store.Freeze()
	outcomes, err := env.Runner(store).RunAll(ctx, env.Params())
	if err != nil {
		return err
	}
	fmt.Fprintln(env.Stdout)
	return report.NewPrinter(env.Stdout).PrintAll(outcomes)
}
