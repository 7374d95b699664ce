package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sick-lang/sick65/ast"
	"github.com/sick-lang/sick65/tass"
)

var assembleCmd = &cobra.Command{
	Use:   "assemble <program.asm>",
	Short: "Assemble generated source and extract debugger breakpoints",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseFormat(viper.GetString("format"))
		if err != nil {
			return err
		}
		input := args[0]
		output := viper.GetString("output")
		if output == "" {
			ext := ".prg"
			if format == ast.FormatRaw {
				ext = ".bin"
			}
			output = strings.TrimSuffix(input, filepath.Ext(input)) + ext
		}
		asm := &tass.Assembler{
			Format:     format,
			Executable: viper.GetString("assembler"),
			Log:        logger,
		}
		result, err := asm.Assemble(cmd.Context(), input, output)
		if err != nil {
			return err
		}
		script, err := asm.GenerateBreakpointList(result)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "binary:", result.Binary)
		fmt.Fprintln(cmd.OutOrStdout(), "breakpoint script:", script)
		return nil
	},
}

func parseFormat(name string) (ast.Format, error) {
	switch name {
	case "raw":
		return ast.FormatRaw, nil
	case "prg":
		return ast.FormatPRG, nil
	case "basic":
		return ast.FormatBasic, nil
	}
	return 0, fmt.Errorf("unknown output format %q (want raw, prg or basic)", name)
}

func init() {
	assembleCmd.Flags().StringP("format", "f", "prg", "output format: raw, prg or basic")
	assembleCmd.Flags().StringP("output", "o", "", "output file (defaults next to the input)")
	viper.BindPFlag("format", assembleCmd.Flags().Lookup("format"))
	viper.BindPFlag("output", assembleCmd.Flags().Lookup("output"))
}
