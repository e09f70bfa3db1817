package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/pirate/cli/cmd"
	"github.com/ardnew/pirate/pkg"
)

// CLI is the top-level command-line interface for pirate.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Source []string `help:"Manifest file(s) or '-' for stdin." name:"source" short:"s" type:"existingfile"`
	Spec   []string `help:"Option spec, appended after manifest specs." name:"spec" short:"o"`

	Init  cmd.Init  `cmd:"" help:"Initialize configuration file."`
	Check cmd.Check `cmd:"" help:"Compile option specs and list descriptors."`
	Usage cmd.Usage `cmd:"" help:"Print usage text for the option specs."`
	Eval  cmd.Eval  `cmd:"" help:"Evaluate an expression over matched arguments."`
	Repl  cmd.Repl  `cmd:"" help:"Match arguments interactively."`

	Match cmd.Match `cmd:"" default:"withargs" help:"Match arguments against option specs."`
}

// Run executes the pirate CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	return run(ctx, exit, cmd.DefaultStreams(), args...)
}

func run(
	ctx context.Context,
	exit func(code int),
	streams cmd.Streams,
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig + ".yaml")

	vars := kong.Vars{
		"version":            pkg.Version,
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Apply logger flags before kong reports any parse error.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(streams.Out, streams.Err),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(resolve(ctx), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithStreams(ctx, streams)
	ctx = cmd.WithSourceFiles(ctx, cli.Source)
	ctx = cmd.WithSpecs(ctx, cli.Spec)

	// Finalize logger configuration with all parsed values, including those
	// resolved from the configuration file.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
