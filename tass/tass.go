// Package tass invokes the 64tass cross-assembler on generated assembly
// source and post-processes its output files.
package tass

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/sick-lang/sick65/ast"
	"github.com/sick-lang/sick65/codegen"
	"github.com/sick-lang/sick65/errors"
)

// DefaultExecutable is the assembler binary looked up on PATH when the
// Assembler does not name one explicitly.
const DefaultExecutable = "64tass"

// File name suffixes of the assembler's auxiliary outputs.
const (
	ListingSuffix   = ".final-asm"
	LabelFileSuffix = ".vice-mon-list"
)

// breakpointLine matches a listing line for an emitted breakpoint marker:
// an address, the $ea nop encoding, and the unique comment signature.
var breakpointLine = regexp.MustCompile(
	`^.(?P<address>\w+)\s+ea\s+nop\s+;\s+` + regexp.QuoteMeta(codegen.BreakpointSignature))

// Assembler runs 64tass for one output format.
type Assembler struct {
	// Format selects the assembler flags for the output container.
	Format ast.Format

	// Executable overrides the assembler binary. Defaults to "64tass".
	Executable string

	// Log receives invocation diagnostics. The zero value is usable.
	Log zerolog.Logger
}

// Result names the files a successful assembly produced.
type Result struct {
	Binary    string
	Listing   string
	LabelFile string
}

// Args returns the assembler command line for the given input and output
// files: warnings on, a label dump and a debug listing requested, plus the
// format-specific output flags.
func (a *Assembler) Args(inputFile, outputFile string) ([]string, error) {
	args := []string{
		"--ascii", "--case-sensitive", "-Wall", "-Wno-strict-bool",
		"--dump-labels", "--vice-labels", "-l", outputFile + LabelFileSuffix,
		"-L", outputFile + ListingSuffix, "--no-monitor",
		"--output", outputFile, inputFile,
	}
	switch a.Format {
	case ast.FormatPRG, ast.FormatBasic:
		args = append(args, "--cbm-prg")
	case ast.FormatRaw:
		args = append(args, "--nostart")
	default:
		return nil, fmt.Errorf("tass: no output flags for format %v", a.Format)
	}
	return args, nil
}

// Assemble runs the assembler on inputFile, producing outputFile and its
// auxiliary label and listing files. The call blocks until the assembler
// exits; bound it by passing a context with a deadline, or pass
// context.Background() to wait indefinitely.
func (a *Assembler) Assemble(ctx context.Context, inputFile, outputFile string) (*Result, error) {
	args, err := a.Args(inputFile, outputFile)
	if err != nil {
		return nil, err
	}
	exe := a.Executable
	if exe == "" {
		exe = DefaultExecutable
	}
	a.Log.Info().Str("assembler", exe).Strs("args", args).Msg("running assembler")
	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		switch {
		case stderrors.Is(err, exec.ErrNotFound):
			return nil, errors.New(errors.AssemblerNotFound,
				"cannot run assembler program: %s", err)
		case stderrors.As(err, &exitErr):
			cerr := errors.New(errors.AssemblerFailed,
				"assembler failed with returncode %d", exitErr.ExitCode())
			cerr.ExitCode = exitErr.ExitCode()
			return nil, cerr
		default:
			return nil, err
		}
	}
	return &Result{
		Binary:    outputFile,
		Listing:   outputFile + ListingSuffix,
		LabelFile: outputFile + LabelFileSuffix,
	}, nil
}

// ScanBreakpoints reads a debug listing and returns the hex-prefixed
// address of every breakpoint marker line, in scan order.
func ScanBreakpoints(r io.Reader) ([]string, error) {
	var breakpoints []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if m := breakpointLine.FindStringSubmatch(scanner.Text()); m != nil {
			breakpoints = append(breakpoints, "$"+m[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return breakpoints, nil
}

// GenerateBreakpointList scans the debug listing for breakpoint markers
// and appends a monitor breakpoint script to the label dump file: a header
// comment, a clear-all command, then one set command per address in scan
// order. It returns the path of the script file.
func (a *Assembler) GenerateBreakpointList(result *Result) (string, error) {
	listing, err := os.Open(result.Listing)
	if err != nil {
		return "", err
	}
	breakpoints, err := ScanBreakpoints(listing)
	listing.Close()
	if err != nil {
		return "", err
	}
	f, err := os.OpenFile(result.LabelFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}
	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "; vice monitor breakpoint list now follows")
	fmt.Fprintf(w, "; %d breakpoints have been defined here\n", len(breakpoints))
	fmt.Fprintln(w, "del")
	for _, b := range breakpoints {
		fmt.Fprintln(w, "break", b)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	a.Log.Info().Int("breakpoints", len(breakpoints)).Str("file", result.LabelFile).
		Msg("breakpoint list written")
	return result.LabelFile, nil
}
