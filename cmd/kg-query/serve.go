package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dd0wney/assembly-kg/pkg/cli"
	"github.com/dd0wney/assembly-kg/pkg/graphql"
	"github.com/dd0wney/assembly-kg/pkg/health"
	"github.com/dd0wney/assembly-kg/pkg/logging"
	"github.com/dd0wney/assembly-kg/pkg/query"
	"github.com/dd0wney/assembly-kg/pkg/server"
	kgtls "github.com/dd0wney/assembly-kg/pkg/tls"
)

func serveCmd(opts *options) *cobra.Command {
	var addr string
	tlsCfg := kgtls.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the graph over HTTP",
		Long: `Serves the graph until interrupted:
  POST /graphql   GraphQL endpoint
  GET  /metrics   Prometheus metrics
  GET  /livez     liveness
  GET  /readyz    readiness (graph loaded, catalog answers)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cli.Setup(cmd, &opts.flags)
			if err != nil {
				return err
			}
			return env.Finish(runServe(cmd, env, opts, addr, tlsCfg))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "Listen address")
	cmd.Flags().StringVar(&tlsCfg.CertFile, "tls-cert", "", "TLS certificate file (PEM)")
	cmd.Flags().StringVar(&tlsCfg.KeyFile, "tls-key", "", "TLS private key file (PEM)")
	cmd.Flags().BoolVar(&tlsCfg.SelfSigned, "tls-self-signed", false, "Serve HTTPS with a generated self-signed certificate")
	return cmd
}

func runServe(cmd *cobra.Command, env *cli.Env, opts *options, addr string, tlsCfg *kgtls.Config) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverTLS, err := kgtls.Load(tlsCfg)
	if err != nil {
		return err
	}

	store, err := loadGraph(cmd, env, opts)
	if err != nil {
		return err
	}
	schema, err := graphql.GenerateSchema(store)
	if err != nil {
		return err
	}

	probe, err := query.Lookup("q2")
	if err != nil {
		return err
	}
	checker := health.NewChecker()
	checker.RegisterLivenessCheck("process", health.AliveCheck())
	checker.RegisterReadinessCheck("graph", health.GraphCheck(store))
	checker.RegisterReadinessCheck("query", health.QueryCheck(store, probe, env.Params(), query.ValidateQueryTimeout(env.Config.QueryTimeout)))

	env.Logger.Info("serving graph", logging.String("addr", addr), logging.Triples(store.Len()))
	return server.New(server.Config{
		Addr:    addr,
		GraphQL: graphql.NewGraphQLHandler(schema, env.Logger),
		Metrics: env.Metrics.GetPrometheusRegistry(),
		Health:  checker,
		Logger:  env.Logger,
		TLS:     serverTLS,
	}).Run(ctx)
}
