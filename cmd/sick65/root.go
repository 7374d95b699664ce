package main

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sick-lang/sick65/tass"
)

var logger zerolog.Logger

var rootCmd = &cobra.Command{
	Use:   "sick65",
	Short: "Toolchain driver for sick65 compiled programs",
	Long: `sick65 drives the external cross-assembler over generated assembly
source and post-processes its output into a debugger breakpoint script.

All flags can also be set through SICK65_* environment variables, for
example SICK65_ASSEMBLER=/opt/bin/64tass.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.WarnLevel
		if viper.GetBool("verbose") {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).With().Timestamp().Logger()
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("assembler", tass.DefaultExecutable, "cross-assembler executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	viper.BindPFlag("assembler", rootCmd.PersistentFlags().Lookup("assembler"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.SetEnvPrefix("sick65")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(assembleCmd)
}
