package cmd

import (
	"fmt"

	"github.com/projecteru2/core/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/projecteru2/uuidstamp/internal/config"
	"github.com/projecteru2/uuidstamp/internal/stamp"
	"github.com/projecteru2/uuidstamp/internal/version"
)

func newRootCmd() *cobra.Command {
	var (
		cfgFile string
		conf    *config.Config
	)
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "uuidstamp [flags] OUTPUT_PATH [MODE]",
		Short: "Write a fresh random UUID to OUTPUT_PATH",
		Long: "Generate a random (version 4) UUID, write it as the sole content of OUTPUT_PATH\n" +
			"and print it. If MODE is exactly " + stamp.Target + ", also print a build banner.",
		Version: version.VERSION,
		// Only OUTPUT_PATH and MODE are read; further arguments are ignored.
		Args: cobra.MinimumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if conf, err = config.Load(v, cfgFile); err != nil {
				return err
			}
			// stdout is reserved for the stamp lines, so logging stays off
			// unless a log file is configured.
			if conf.Log.Filename == "" {
				return nil
			}
			return log.SetupLog(commandContext(cmd), &conf.Log, "")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Arguments are valid past this point; usage would only bury I/O errors.
			cmd.SilenceUsage = true
			return runStamp(cmd, conf, args)
		},
	}
	cmd.SetVersionTemplate(version.String())
	// Everything after OUTPUT_PATH is positional, so MODE may start with a dash.
	cmd.Flags().SetInterspersed(false)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	cmd.PersistentFlags().String("file-mode", "", "permission for a newly created OUTPUT_PATH (octal)")
	cmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-file", "", "write logs to this file (logging is off without it)")

	bindFlags(v, cmd.PersistentFlags())

	return cmd
}

// flagKeys maps persistent flags to the config keys they override.
var flagKeys = map[string]string{
	"file-mode": "file_mode",
	"log-level": "log.level",
	"log-file":  "log.filename",
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) {
	for name, key := range flagKeys {
		_ = v.BindPFlag(key, fs.Lookup(name))
	}
}

func runStamp(cmd *cobra.Command, conf *config.Config, args []string) error {
	ctx := commandContext(cmd)
	logger := log.WithFunc("cmd.stamp")

	perm, err := conf.Perm()
	if err != nil {
		return err
	}

	path, mode := args[0], ""
	if len(args) > 1 {
		mode = args[1]
	}

	id, err := stamp.New(cmd.OutOrStdout(), stamp.WithPerm(perm)).Stamp(ctx, path, mode)
	if err != nil {
		return fmt.Errorf("stamp %s: %w", path, err)
	}
	logger.Infof(ctx, "stamped %s with %s", path, id)
	return nil
}

// Execute is the main entry point called from main.go.
func Execute() error {
	ctx, cancel := newCommandContext()
	defer cancel()
	return newRootCmd().ExecuteContext(ctx)
}
