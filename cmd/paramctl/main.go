// Command paramctl resolves the variables declared in a variables file against
// a parameter store and prints them as shell exports, JSON or YAML.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/prometheus/client_golang/prometheus"

	params "github.com/0xalexb/hjarta-params"
	"github.com/0xalexb/hjarta-params/logging"
	"github.com/0xalexb/hjarta-params/resolver"
)

type cliOptions struct {
	configFile  string
	store       string
	region      string
	maxResults  int
	rateLimit   float64
	rateBurst   int
	natsURL     string
	bucket      string
	storeFile   string
	rootPath    string
	raise       bool
	format      string
	prefix      string
	upper       bool
	timeout     time.Duration
	metricsFile string
	logLevel    string
	logFormat   string
}

type cli struct {
	app     *kingpin.Application
	resolve *kingpin.CmdClause
	version *kingpin.CmdClause
}

func newCLI(opts *cliOptions) *cli {
	app := kingpin.New("paramctl", "Resolve declared variables from a parameter store")

	resolve := app.Command("resolve", "Resolve the variables of a variables file").Default()
	resolve.Flag("config", "Path to the YAML variables file, - for standard input").Short('c').Required().StringVar(&opts.configFile)
	resolve.Flag("store", "Parameter store backend").EnumVar(&opts.store, kindSSM, kindNATS, kindFile)
	resolve.Flag("region", "AWS region of the ssm store").StringVar(&opts.region)
	resolve.Flag("max-results", "Page size for path listings (set -1 to keep the file value)").
		Default("-1").IntVar(&opts.maxResults)
	resolve.Flag("rate-limit", "Store requests per second (set 0 to disable, -1 to keep the file value)").
		Default("-1").Float64Var(&opts.rateLimit)
	resolve.Flag("rate-burst", "Burst capacity for the rate limiter (set -1 to keep the file value)").
		Default("-1").IntVar(&opts.rateBurst)
	resolve.Flag("nats-url", "NATS server URL of the nats store").StringVar(&opts.natsURL)
	resolve.Flag("bucket", "Key-value bucket of the nats store").StringVar(&opts.bucket)
	resolve.Flag("store-file", "YAML parameters file of the file store").StringVar(&opts.storeFile)
	resolve.Flag("root-path", "Root path, overriding params.root_path").StringVar(&opts.rootPath)
	resolve.Flag("raise-on-not-found", "Fail when a flat-mode parameter does not exist").BoolVar(&opts.raise)
	resolve.Flag("format", "Output format").Default(formatEnv).EnumVar(&opts.format, formatEnv, formatJSON, formatYAML)
	resolve.Flag("prefix", "Prefix for env output names").StringVar(&opts.prefix)
	resolve.Flag("upper", "Upper-case env output names").BoolVar(&opts.upper)
	resolve.Flag("timeout", "Deadline for the whole resolution").Default("30s").DurationVar(&opts.timeout)
	resolve.Flag("metrics-file", "Write resolver metrics in Prometheus text format to this file").
		StringVar(&opts.metricsFile)
	resolve.Flag("log-level", "Log level: debug, info, warn or error").Default("warn").StringVar(&opts.logLevel)
	resolve.Flag("log-format", "Log format: json or text").Default(logging.FormatJSON).StringVar(&opts.logFormat)

	version := app.Command("version", "Print build information")

	return &cli{app: app, resolve: resolve, version: version}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "paramctl: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var opts cliOptions

	commands := newCLI(&opts)
	commands.app.UsageWriter(stderr)
	commands.app.ErrorWriter(stderr)

	command, err := commands.app.Parse(args)
	if err != nil {
		return fmt.Errorf("parsing arguments: %w", err)
	}

	switch command {
	case commands.version.FullCommand():
		_, err = fmt.Fprintf(stdout, "paramctl %s\n", params.VersionString())

		return err
	default:
		return resolveVariables(ctx, &opts, stdout, stderr)
	}
}

func (o *cliOptions) apply(vars *resolver.FileConfig, store *storeConfig) {
	if o.store != "" {
		store.Kind = o.store
	}

	if o.region != "" {
		store.Region = o.region
	}

	if o.maxResults >= 0 {
		store.MaxResults = int32(min(o.maxResults, 1<<31-1)) //nolint:gosec // clamped above
	}

	if o.rateLimit >= 0 {
		store.RateLimit = o.rateLimit
	}

	if o.rateBurst >= 0 {
		store.RateBurst = o.rateBurst
	}

	if o.natsURL != "" {
		store.NATSURL = o.natsURL
	}

	if o.bucket != "" {
		store.Bucket = o.bucket
	}

	if o.storeFile != "" {
		store.File = o.storeFile
	}

	if o.rootPath != "" {
		vars.RootPath = o.rootPath
	}

	if o.raise {
		vars.RaiseOnParameterNotFound = true
	}
}

func resolveVariables(ctx context.Context, opts *cliOptions, stdout, stderr io.Writer) error {
	vars, store, err := loadVariablesFile(opts.configFile)
	if err != nil {
		return err
	}

	opts.apply(vars, store)

	err = store.requireBackend()
	if err != nil {
		return err
	}

	logger := logging.NewLogger(logging.LoggerConfig{
		Level:   opts.logLevel,
		Format:  opts.logFormat,
		Service: "paramctl",
	}, stderr)

	factory, release := store.factory()
	defer release()

	cfg := vars.ResolverConfig()
	cfg.ClientFactory = factory
	cfg.Logger = logger

	registry := prometheus.NewRegistry()
	if opts.metricsFile != "" {
		cfg.Metrics, err = resolver.NewMetrics(registry)
		if err != nil {
			return fmt.Errorf("registering metrics: %w", err)
		}
	}

	res, err := resolver.New(cfg)
	if err != nil {
		return err
	}

	if opts.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	values := resolver.NewMapSink()
	resolveErr := res.Resolve(ctx, values)

	if opts.metricsFile != "" {
		err = prometheus.WriteToTextfile(opts.metricsFile, registry)
		if err != nil {
			logger.Error("writing metrics failed",
				slog.String("file", opts.metricsFile),
				slog.Any("error", err))
		}
	}

	if resolveErr != nil {
		return resolveErr
	}

	logger.Info("variables resolved",
		slog.String("store", store.Kind),
		slog.Int("variables", len(values.Names())))

	return writeValues(stdout, opts.format, envNaming{prefix: opts.prefix, upper: opts.upper}, values)
}
