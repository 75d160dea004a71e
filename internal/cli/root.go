// Package cli defines the root Cobra command and global flag/context setup.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/f9-o/greet/internal/cli/commands"
	"github.com/f9-o/greet/internal/core/config"
	"github.com/f9-o/greet/internal/core/logger"
	"github.com/f9-o/greet/internal/core/state"
	"github.com/f9-o/greet/pkg/errs"
	"github.com/f9-o/greet/pkg/pprint"
)

// globalFlags holds values bound to persistent global flags.
type globalFlags struct {
	configFile string
	debug      bool
	jsonOutput bool
	noHistory  bool
}

// app owns one command tree and the runtime it opens.
type app struct {
	flags  globalFlags
	stderr io.Writer
	rt     *commands.Runtime
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "greet",
		Short:         "greet — say hello from the terminal",
		Long:          "With no subcommand, prints the hello line followed by a greeting for greeter.name.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          commands.RunDefault,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipsRuntime(cmd) {
				return nil
			}
			return a.initRuntime(cmd)
		},
	}

	origHelp := root.HelpFunc()
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		pprint.PrintBanner(cmd.OutOrStdout(), commands.Version, commands.BuildDate)
		origHelp(cmd, args)
	})

	pf := root.PersistentFlags()
	pf.StringVarP(&a.flags.configFile, "config", "c", "", "Path to greet.yaml (defaults to auto-discovery)")
	pf.BoolVar(&a.flags.debug, "debug", false, "Enable debug-level logging")
	pf.BoolVar(&a.flags.jsonOutput, "json", false, "Output in machine-readable JSON")
	pf.BoolVar(&a.flags.noHistory, "no-history", false, "Do not open or write the greeting history")

	root.AddCommand(
		commands.NewHelloCmd(),
		commands.NewSayCmd(),
		commands.NewHistoryCmd(),
		commands.NewInitCmd(),
		commands.NewVersionCmd(),
	)
	return root
}

// skipsRuntime reports whether cmd or any ancestor runs without config,
// logs or state. Shell completion commands nest under "completion" or
// are cobra's hidden __complete requests.
func skipsRuntime(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "version", "help", "init", "completion",
			cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return false
}

// initRuntime loads config, logger, and state before each command runs.
func (a *app) initRuntime(cmd *cobra.Command) error {
	cfg, err := config.Load(a.flags.configFile)
	if err != nil {
		return err
	}

	home := config.Home()
	log := logger.Init(logger.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		LogFile: filepath.Join(home, "logs", "greet.log"),
		Home:    home,
		Debug:   a.flags.debug,
		Stderr:  a.stderr,
	})

	rt := &commands.Runtime{
		Config: cfg,
		Log:    log,
		Flags: commands.GlobalFlags{
			Debug:      a.flags.debug,
			JSONOutput: a.flags.jsonOutput,
			NoHistory:  a.flags.noHistory,
		},
	}
	a.rt = rt

	if !a.flags.noHistory {
		if err := os.MkdirAll(home, 0750); err != nil {
			return errs.New(errs.ErrStateOpen, "state.home", err).WithResource(home)
		}
		db, err := state.Open(filepath.Join(home, "state.db"))
		if err != nil {
			return err
		}
		rt.State = db
	}

	cmd.SetContext(commands.NewContext(cmd.Context(), rt))
	return nil
}

// close releases whatever initRuntime opened.
func (a *app) close() {
	if a.rt == nil {
		return
	}
	if err := a.rt.Close(); err != nil {
		a.rt.Log.Warn("runtime close", "err", err)
	}
	a.rt = nil
}

// Run executes the command tree with args and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	defer a.close()

	if err := root.ExecuteContext(ctx); err != nil {
		pprint.To(stderr).Error("%s", errs.Message(err))
		return 1
	}
	return 0
}

// Execute runs the CLI against the process arguments. Called by main().
func Execute() {
	os.Exit(Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
