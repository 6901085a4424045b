// Command kg-query runs the catalog queries against a graph file and prints the
// results. Subcommands list the catalog, evaluate GraphQL documents and serve the graph
// over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dd0wney/assembly-kg/pkg/cli"
	"github.com/dd0wney/assembly-kg/pkg/query"
	"github.com/dd0wney/assembly-kg/pkg/report"
	"github.com/dd0wney/assembly-kg/pkg/storage"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options are shared by the root command and its subcommands
type options struct {
	flags   cli.Flags
	rebuild bool
}

func rootCmd() *cobra.Command {
	opts := &options{}
	var name string

	cmd := &cobra.Command{
		Use:   "kg-query",
		Short: "Run the catalog queries against a knowledge graph",
		Long: `kg-query loads a graph file (or rebuilds the graph in memory with --rebuild) and
prints the result of every catalog query, or of one query with --query.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cli.Setup(cmd, &opts.flags)
			if err != nil {
				return err
			}
			return env.Finish(runQueries(cmd, env, opts, name))
		},
	}

	opts.flags.BindCommon(cmd)
	opts.flags.BindAssembly(cmd)
	opts.flags.BindGraph(cmd, "ttl", "Graph file to query (.ttl, .nt, optionally .sz)")
	opts.flags.BindFixture(cmd)
	cmd.PersistentFlags().BoolVar(&opts.rebuild, "rebuild", false, "Build the graph in memory instead of loading the file")
	cmd.Flags().StringVarP(&name, "query", "q", "", "Run only this query (slug, slug prefix or number)")

	cmd.AddCommand(listCmd(opts), graphqlCmd(opts), serveCmd(opts))
	return cmd
}

// loadGraph returns a read-only graph from the file, or from the fixture when
// rebuilding
func loadGraph(cmd *cobra.Command, env *cli.Env, opts *options) (*storage.TripleStore, error) {
	var (
		store *storage.TripleStore
		err   error
	)
	if opts.rebuild {
		store, err = env.BuildGraph()
	} else {
		store, err = env.LoadGraph(cmd.Context())
	}
	if err != nil {
		return nil, err
	}
	store.Freeze()
	return store, nil
}

func runQueries(cmd *cobra.Command, env *cli.Env, opts *options, name string) error {
	store, err := loadGraph(cmd, env, opts)
	if err != nil {
		return err
	}
	runner := env.Runner(store)
	printer := report.NewPrinter(env.Stdout)
	p := env.Params()

	if name == "" {
		outcomes, err := runner.RunAll(cmd.Context(), p)
		if err != nil {
			return err
		}
		return printer.PrintAll(outcomes)
	}

	q, err := query.Lookup(name)
	if err != nil {
		return err
	}
	result, err := runner.Run(cmd.Context(), q, p)
	if err != nil {
		return err
	}
	return printer.PrintResult(q, q.Title(p), result)
}

func listCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the catalog queries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cli.Setup(cmd, &opts.flags)
			if err != nil {
				return err
			}
			err = report.NewPrinter(env.Stdout).PrintCatalog(query.Catalog(), env.Params())
			return env.Finish(err)
		},
	}
}
