// Package cli holds the plumbing shared by the command line tools: config layering,
// logging, run ids, metrics and graph loading.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dd0wney/assembly-kg/pkg/config"
	"github.com/dd0wney/assembly-kg/pkg/fixture"
	"github.com/dd0wney/assembly-kg/pkg/graphfile"
	"github.com/dd0wney/assembly-kg/pkg/logging"
	"github.com/dd0wney/assembly-kg/pkg/metrics"
	"github.com/dd0wney/assembly-kg/pkg/query"
	"github.com/dd0wney/assembly-kg/pkg/storage"
)

// Flags are the command line values that override the config. Each command binds
// only the flags it offers.
type Flags struct {
	ConfigPath  string
	Assembly    string
	GraphPath   string
	OutDir      string
	Fixture     string
	LogLevel    string
	LogFormat   string
	MetricsFile string

	graphFlag string
	outFlag   string
}

// BindCommon binds the flags every command offers
func (f *Flags) BindCommon(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&f.ConfigPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&f.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&f.LogFormat, "log-format", "", "Log format (json, text)")
	cmd.PersistentFlags().StringVar(&f.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")
}

// BindAssembly binds --assembly
func (f *Flags) BindAssembly(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&f.Assembly, "assembly", "a", "A100", "Assembly id for the parameterized queries")
}

// BindGraph binds the graph file path under the given flag name
func (f *Flags) BindGraph(cmd *cobra.Command, name, usage string) {
	f.graphFlag = name
	cmd.PersistentFlags().StringVar(&f.GraphPath, name, "kg.ttl", usage)
}

// BindOutDir binds --out as the CSV output directory
func (f *Flags) BindOutDir(cmd *cobra.Command) {
	f.outFlag = "out"
	cmd.Flags().StringVarP(&f.OutDir, "out", "o", "out", "Output directory for the CSV files")
}

// BindFixture binds --fixture
func (f *Flags) BindFixture(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.Fixture, "fixture", "", "YAML dataset to build instead of the built-in sample")
}

// Env is the runtime of one command invocation
type Env struct {
	Config  *config.Config
	Logger  logging.Logger
	Metrics *metrics.Registry
	RunID   string
	Stdout  io.Writer
}

// Setup layers defaults, the config file, the environment and the flags the user set,
// validates the result and creates the logger. Logs go to stderr.
func Setup(cmd *cobra.Command, f *Flags) (*Env, error) {
	return setup(cmd, f, os.LookupEnv, cmd.ErrOrStderr())
}

func setup(cmd *cobra.Command, f *Flags, lookup func(string) (string, bool), logOut io.Writer) (*Env, error) {
	cfg, err := config.Load(f.ConfigPath, lookup)
	if err != nil {
		return nil, err
	}

	changed := func(name string) bool {
		fl := cmd.Flags().Lookup(name)
		return fl != nil && fl.Changed
	}
	if changed("assembly") {
		cfg.Assembly = f.Assembly
	}
	if f.graphFlag != "" && changed(f.graphFlag) {
		cfg.GraphPath = f.GraphPath
	}
	if f.outFlag != "" && changed(f.outFlag) {
		cfg.OutDir = f.OutDir
	}
	if changed("fixture") {
		cfg.Fixture = f.Fixture
	}
	if changed("log-level") {
		cfg.LogLevel = f.LogLevel
	}
	if changed("log-format") {
		cfg.LogFormat = f.LogFormat
	}
	if changed("metrics-file") {
		cfg.MetricsFile = f.MetricsFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := logging.NewLogger(logOut, cfg.LogFormat, logging.ParseLevel(cfg.LogLevel)).
		With(logging.RunID(runID), logging.String("command", cmd.Name()))

	return &Env{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.NewRegistry(),
		RunID:   runID,
		Stdout:  cmd.OutOrStdout(),
	}, nil
}

// Params returns the query parameters from the config
func (e *Env) Params() query.Params {
	return query.Params{AssemblyID: e.Config.Assembly}
}

// Runner creates a query runner over g reporting to the env's metrics
func (e *Env) Runner(g query.Graph) *query.Runner {
	return query.NewRunner(g, query.RunnerConfig{
		Logger:   e.Logger,
		Observer: e.Metrics,
		Timeout:  e.Config.QueryTimeout,
	})
}

// LoadGraph reads the configured graph file
func (e *Env) LoadGraph(ctx context.Context) (*storage.TripleStore, error) {
	path := e.Config.GraphPath
	start := time.Now()

	store, err := graphfile.Load(ctx, path)
	if err != nil {
		e.Metrics.RecordGraphLoad(0, time.Since(start), err)
		return nil, err
	}

	elapsed := time.Since(start)
	e.Metrics.RecordGraphLoad(store.Len(), elapsed, nil)
	e.Logger.Info("graph loaded", logging.Path(path), logging.Triples(store.Len()), logging.Latency(elapsed))
	return store, nil
}

// Dataset returns the configured fixture, or the built-in sample when none is set
func (e *Env) Dataset() (*fixture.Dataset, error) {
	if e.Config.Fixture == "" {
		return fixture.Sample(), nil
	}
	d, err := fixture.LoadYAML(e.Config.Fixture)
	if err != nil {
		return nil, err
	}
	e.Logger.Info("fixture loaded", logging.Path(e.Config.Fixture), logging.Count(len(d.Parts)))
	return d, nil
}

// BuildGraph builds the graph from the configured fixture in memory
func (e *Env) BuildGraph() (*storage.TripleStore, error) {
	d, err := e.Dataset()
	if err != nil {
		return nil, err
	}
	store, err := fixture.Build(d)
	if err != nil {
		return nil, err
	}
	e.Metrics.SetGraphTriples(store.Len())
	e.Logger.Debug("graph built", logging.Triples(store.Len()))
	return store, nil
}

// Close writes the metrics file when one is configured
func (e *Env) Close() error {
	if e.Config.MetricsFile == "" {
		return nil
	}
	if err := e.Metrics.WriteToTextfile(e.Config.MetricsFile); err != nil {
		return err
	}
	e.Logger.Debug("metrics written", logging.Path(e.Config.MetricsFile))
	return nil
}

// Finish closes the env and joins a close failure into err
func (e *Env) Finish(err error) error {
	if cerr := e.Close(); cerr != nil {
		if err == nil {
			return cerr
		}
		return fmt.Errorf("%w (also: %v)", err, cerr)
	}
	return err
}
