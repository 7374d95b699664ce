// Package codegen lowers a validated program tree into assembly source for
// the 64tass cross-assembler.
//
// The generator walks the tree once, front to back: sanity checks, file
// header, the global startup sequence, every block (zero page first), and
// a footer. All binary-level decisions are made here: memory layout,
// little-endian byte splits, the 5-byte float format, the string encodings
// and the block initialization protocol. The assembler only turns the
// emitted text into an image.
package codegen

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/sick-lang/sick65/ast"
	"github.com/sick-lang/sick65/errors"
)

// BreakpointSignature marks breakpoint instructions in the emitted text so
// that the toolchain's listing scan can recover their assembled addresses.
const BreakpointSignature = "~~~BREAKPOINT~~~"

// Symbols shared between the generated code and the bundled runtime.
const (
	initBlockLabel  = "_sick65_init_block"
	entrypointLabel = "_sick65_entrypoint"
	saveZpLabel     = "_sick65_save_zeropage"
	restoreZpLabel  = "_sick65_restore_zeropage"
	runtimeScope    = "sick65_lib"
	stringPoolLabel = "sick65_string_vars_start"
)

// Zero page save/restore routines, included verbatim when the program's
// zero page option asks for save-and-restore.
//
//go:embed lib/restorezp.asm
var restoreZpFragment string

// Generator emits one program as assembly text. It owns the output sink
// for the duration of a single Generate call and nothing else; the program
// tree itself is never modified.
type Generator struct {
	program *ast.Program
	out     *bufio.Writer
	log     zerolog.Logger
	clock   func() time.Time
}

// Config holds generator options.
type Config struct {
	// Program is the validated tree to lower. Required.
	Program *ast.Program

	// Logger receives generation progress. Optional.
	Logger *zerolog.Logger

	// Clock supplies the timestamp for provenance comments and the BASIC
	// stub year. Optional; defaults to time.Now. Tests inject a fixed
	// clock to get reproducible output.
	Clock func() time.Time
}

// New creates a Generator for the given program.
func New(cfg Config) (*Generator, error) {
	if cfg.Program == nil {
		return nil, fmt.Errorf("codegen: config must supply a program")
	}
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Generator{program: cfg.Program, log: log, clock: clock}, nil
}

// GenerateFile writes the assembly source to the named file. The file is
// created (or truncated) and closed on every exit path.
func (g *Generator) GenerateFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	genErr := g.Generate(f)
	if cerr := f.Close(); cerr != nil && genErr == nil {
		genErr = cerr
	}
	return genErr
}

// Generate writes the assembly source to w. On a mid-generation error a
// visible abort marker is written into the (invalid) output before the
// sink is flushed and the error is returned, so inspecting the generated
// file shows the abort reason.
func (g *Generator) Generate(w io.Writer) (err error) {
	g.out = bufio.NewWriter(w)
	defer func() {
		if err != nil {
			g.p(".error \"****** ABORTED DUE TO ERROR: %s\"", err)
		}
		if ferr := g.out.Flush(); ferr != nil && err == nil {
			err = ferr
		}
		g.out = nil
	}()
	if err = g.sanityCheck(); err != nil {
		return err
	}
	g.log.Debug().Str("file", g.program.Filename).Msg("sanity checks passed")
	if err = g.header(); err != nil {
		return err
	}
	g.startup()
	if err = g.blocks(); err != nil {
		return err
	}
	g.footer()
	g.log.Info().
		Str("format", g.program.Format.String()).
		Int("blocks", len(g.program.Blocks)).
		Msg("assembly source generated")
	return nil
}

// p writes one line of output.
func (g *Generator) p(format string, args ...any) {
	fmt.Fprintf(g.out, format, args...)
	g.out.WriteByte('\n')
}

// pi writes one line of output at the instruction indent (two tabs).
func (g *Generator) pi(format string, args ...any) {
	g.out.WriteString("\t\t")
	g.p(format, args...)
}

// sanityCheck fails fast, before any output is produced, on structural
// violations that downstream emission assumes cannot occur.
func (g *Generator) sanityCheck() error {
	main := g.program.Main()
	entry := false
	if main != nil {
		for _, n := range main.Nodes {
			if lbl, ok := n.(*ast.Label); ok && lbl.Name == ast.StartLabel {
				entry = true
				break
			}
		}
	}
	if !entry {
		return errors.New(errors.MissingEntryPoint,
			"program entry point is missing ('%s' label in '%s' block)",
			ast.StartLabel, ast.MainBlock)
	}

	var result *multierror.Error
	counts := make(map[string]int, len(g.program.Blocks))
	for _, b := range g.program.Blocks {
		counts[b.Name]++
	}
	reported := make(map[string]bool)
	for _, b := range g.program.Blocks {
		if counts[b.Name] > 1 && !reported[b.Name] {
			reported[b.Name] = true
			result = multierror.Append(result, errors.NewAt(errors.DuplicateBlockName,
				b.Ref, "block name %q is used %d times", b.Name, counts[b.Name]))
		}
	}
	if zp := g.program.ZeroPage(); zp != nil {
		for _, n := range zp.Nodes {
			switch v := n.(type) {
			case *ast.VarDef:
				if v.Class == ast.ClassVar {
					result = multierror.Append(result, errors.NewAt(errors.InvalidZeroPageContent,
						v.Ref, "variable %q in the zero page block must carry a zero page address", v.Name))
				}
			case *ast.Directive:
			default:
				result = multierror.Append(result, errors.NewAt(errors.InvalidZeroPageContent,
					n.Pos(), "zero page block can only contain variable definitions and directives, found %s", n))
			}
		}
	}
	// Zero page addresses are aliased only by the zero page block; a
	// zero-page-class variable anywhere else would be initialized against a
	// symbol that is never defined.
	for _, b := range g.program.Blocks {
		if b.IsZeroPage() {
			continue
		}
		for _, v := range b.Variables() {
			if v.Class == ast.ClassZeroPage {
				result = multierror.Append(result, errors.NewAt(errors.InvalidZeroPageContent,
					v.Ref, "zero page variable %q defined outside the zero page block", v.Name))
			}
		}
	}
	return result.ErrorOrNil()
}

// header emits the provenance comments, the assembler preamble and the
// format-specific program prologue.
func (g *Generator) header() error {
	now := g.clock()
	g.p("; code generated by sick65")
	g.p("; source file: %s", g.program.Filename)
	g.p("; compiled on: %s", now.Format("2006-01-02 15:04:05"))
	g.p("; output options: %s %s", g.program.Format, g.program.ZpOption)
	g.p("; assembler syntax is for the 64tass cross-assembler")
	g.p("\n.cpu  '6502'\n.enc  'none'\n")
	switch g.program.Format {
	case ast.FormatBasic:
		if g.program.Address != ast.BasicLoadAddress {
			return errors.New(errors.InvalidLoadAddress,
				"basic output format must have load address %s, got %s",
				hexWord(ast.BasicLoadAddress), hexWord(g.program.Address))
		}
		g.p("; ---- basic program with sys call ----")
		g.p("* = %s", hexWord(g.program.Address))
		g.pi(".word  (+), %d", now.Year())
		g.pi(".null  $9e, format(' %%d ', %s), $3a, $8f, ' sick65'", entrypointLabel)
		g.p("+\t\t.word  0")
		g.p("%s\t\t; assembly code starts here\n", entrypointLabel)
	case ast.FormatPRG:
		g.p("; ---- program without sys call ----")
		g.p("* = %s\n", hexWord(g.program.Address))
	case ast.FormatRaw:
		g.p("; ---- raw assembler program ----")
		g.p("* = %s\n", hexWord(g.program.Address))
	}
	return nil
}

// startup emits the process-wide initialization protocol: save the zero
// page when asked to, run every block initializer (the zero-page block
// strictly first, because the other initializers may use zero-page scratch
// storage), then enter user code.
func (g *Generator) startup() {
	if g.program.ZpOption == ast.ZpClobberRestore {
		g.pi("jsr  %s", saveZpLabel)
	}
	g.pi("; initialize all blocks (reset vars)")
	if g.program.ZeroPage() != nil {
		g.pi("jsr  %s.%s", ast.ZeroPageBlock, initBlockLabel)
	}
	for _, block := range g.program.Blocks {
		if block.IsZeroPage() {
			continue
		}
		g.pi("jsr  %s.%s", block.Name, initBlockLabel)
	}
	g.pi("; call user code")
	if g.program.ZpOption == ast.ZpClobberRestore {
		// A normal return from main.start still restores the zero page
		// and halts cleanly.
		g.pi("jsr  %s.%s", ast.MainBlock, ast.StartLabel)
		g.pi("cld")
		g.pi("jmp  %s\n", restoreZpLabel)
		g.p("%s", strings.TrimRight(restoreZpFragment, "\n"))
	} else {
		g.pi("jmp  %s.%s", ast.MainBlock, ast.StartLabel)
	}
	g.p("")
}

func (g *Generator) footer() {
	g.p("\t.end")
}
