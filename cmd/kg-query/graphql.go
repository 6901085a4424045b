package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dd0wney/assembly-kg/pkg/cli"
	"github.com/dd0wney/assembly-kg/pkg/graphql"
)

// errGraphQL reports a document that executed with errors
var errGraphQL = errors.New("graphql document returned errors")

// graphqlOptions are the flags of the graphql subcommand
type graphqlOptions struct {
	maxDepth  int
	variables string
	operation string
}

func graphqlCmd(opts *options) *cobra.Command {
	gopts := &graphqlOptions{}

	cmd := &cobra.Command{
		Use:   "graphql <document>",
		Short: "Evaluate a GraphQL document against the graph",
		Long: `Evaluates a GraphQL document against the graph and prints the response as JSON.
Pass "-" to read the document from stdin.`,
		Example: `  kg-query graphql '{ assembly(id: "A100") { label parts { label qty } } }'
  kg-query graphql '{ run(query: "q4", assembly: "A100") { title rows } }'
  kg-query graphql --variables '{"a":"A100"}' 'query($a: String) { run(query: "q7", assembly: $a) { rows } }'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cli.Setup(cmd, &opts.flags)
			if err != nil {
				return err
			}
			return env.Finish(runGraphQL(cmd, env, opts, gopts, args[0]))
		},
	}
	cmd.Flags().IntVar(&gopts.maxDepth, "max-depth", graphql.DefaultMaxDepth, "Maximum selection depth")
	cmd.Flags().StringVar(&gopts.variables, "variables", "", "Variables as a JSON object")
	cmd.Flags().StringVar(&gopts.operation, "operation", "", "Operation to run when the document has several")
	return cmd
}

func runGraphQL(cmd *cobra.Command, env *cli.Env, opts *options, gopts *graphqlOptions, document string) error {
	if document == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return err
		}
		document = string(data)
	}
	if strings.TrimSpace(document) == "" {
		return errors.New("empty graphql document")
	}

	req := graphql.Request{Query: document, OperationName: gopts.operation}
	if gopts.variables != "" {
		if err := json.Unmarshal([]byte(gopts.variables), &req.Variables); err != nil {
			return fmt.Errorf("parse --variables: %w", err)
		}
	}

	store, err := loadGraph(cmd, env, opts)
	if err != nil {
		return err
	}
	schema, err := graphql.GenerateSchema(store)
	if err != nil {
		return err
	}

	result := graphql.ExecuteWithDepthLimit(cmd.Context(), schema, req, gopts.maxDepth)

	enc := json.NewEncoder(env.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return err
	}
	if result.HasErrors() {
		return errGraphQL
	}
	return nil
}
