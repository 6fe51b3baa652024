package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/whogoesfirst/internal/config"
	"github.com/arcanaland/whogoesfirst/internal/logging"
)

var (
	cfg    *config.Config
	logger *zap.Logger

	rootPath     string
	language     string
	stateBackend string
	statePath    string
	debug        bool
	seed         int64
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "whogoesfirst",
	Short: "Draw cards to decide who goes first",
	Long: `Who Goes First deals a shuffled deck of cards, each naming a rule for picking
the first player. The deck remembers which cards you have already seen, so
every card comes up once before the deck is reshuffled, even when cards are
added to or removed from the catalog between draws.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return err
		}
		applyFlags(cmd)

		logger, err = logging.New(cfg.Debug)
		if err != nil {
			return err
		}
		logger.Debug("Configuration loaded",
			zap.String("root", cfg.RootPath),
			zap.String("lang", cfg.PreferredLanguage),
			zap.String("backend", cfg.StateBackend),
			zap.String("state", cfg.StateDir()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// applyFlags lets explicitly set flags override the config file and environment.
func applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.RootPath = rootPath
	}
	if flags.Changed("lang") {
		cfg.PreferredLanguage = language
	}
	if flags.Changed("backend") {
		cfg.StateBackend = stateBackend
	}
	if flags.Changed("state") {
		cfg.StatePath = statePath
	}
	if flags.Changed("debug") {
		cfg.Debug = debug
	}
}

func init() {
	RootCmd.SilenceUsage = true
	RootCmd.SilenceErrors = true

	flags := RootCmd.PersistentFlags()
	flags.StringVarP(&rootPath, "root", "r", "", "Catalog root: an http(s) URL or a local directory")
	flags.StringVarP(&language, "lang", "l", "", "Preferred language (defaults to the saved deck's language)")
	flags.StringVar(&stateBackend, "backend", "", "State backend: file or sqlite")
	flags.StringVar(&statePath, "state", "", "Directory the deck state is kept in")
	flags.BoolVar(&debug, "debug", false, "Enable debug logging")
	flags.Int64Var(&seed, "seed", 0, "Shuffle seed (0 seeds from the clock)")

	RootCmd.AddCommand(validateCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
