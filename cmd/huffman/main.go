// Command huffman compresses and expands files with a static order-0
// Huffman model.
//
//	huffman [-x] [-d] [-q] infile outfile [-d]
//
// The file is expanded instead of compressed when -x is given or when the
// executable's name contains "expand".
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adilg123/static-huffman/internal/compression"
	"github.com/adilg123/static-huffman/internal/compression/algorithms/huffman"
	"github.com/adilg123/static-huffman/internal/config"
	pb "github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const compressionName = "static order 0 model with Huffman coding"

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

type cliOptions struct {
	dump, expand, quiet bool
}

func usage(w io.Writer, prog string) {
	fmt.Fprintf(w, "\nUsage: %s [-x] [-q] infile outfile [-d]\n\n", prog)
	fmt.Fprintf(w, "%s\n\n", compressionName)
	fmt.Fprintln(w, "Specifying -d will dump the modeling data")
	fmt.Fprintln(w, "Specifying -x expands infile instead of compressing it")
	fmt.Fprintln(w, "Specifying -q hides the progress bar")
}

func run(args []string, stdout, stderr io.Writer) int {
	prog := filepath.Base(args[0])
	var opts cliOptions
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.dump, "d", false, "dump the modeling data")
	fs.BoolVar(&opts.expand, "x", strings.Contains(prog, "expand"), "expand instead of compress")
	fs.BoolVar(&opts.quiet, "q", false, "hide the progress bar")
	fs.Usage = func() { usage(stderr, prog) }

	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	if fs.NArg() < 2 {
		usage(stdout, prog)
		return 0
	}
	input, output := fs.Arg(0), fs.Arg(1)
	// flags may also follow the file names
	if err := fs.Parse(fs.Args()[2:]); err != nil {
		return 2
	}
	if fs.NArg() > 0 {
		usage(stderr, prog)
		return 2
	}

	cfg := config.Load()
	var err error
	if opts.expand {
		fmt.Fprintf(stdout, "\nExpanding %s to %s\n", input, output)
		err = expandFile(input, output, opts, cfg, stdout, stderr)
	} else {
		fmt.Fprintf(stdout, "\nCompressing %s to %s\n", input, output)
		fmt.Fprintf(stdout, "Using %s\n", compressionName)
		err = compressFile(input, output, opts, cfg, stdout, stderr)
	}
	if err != nil {
		color.New(color.FgRed).Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// transcodeOptions wires the dump flag and, on a terminal, a progress bar
// counting bytes on the compressed side. The returned func stops the bar.
func transcodeOptions(opts cliOptions, cfg *config.Config, total int64, stdout, stderr io.Writer) ([]huffman.Option, func()) {
	var hopts []huffman.Option
	if opts.dump {
		hopts = append(hopts, huffman.WithDump(stdout))
	}
	if opts.quiet || !isTerminal(stderr) {
		return hopts, func() {}
	}

	bar := pb.New64(total)
	bar.Set(pb.Bytes, true)
	bar.SetWriter(stderr)
	bar.Start()
	hopts = append(hopts, huffman.WithProgressFunc(func(n int64) { bar.Add64(n) }, cfg.ProgressInterval))
	return hopts, func() { bar.Finish() }
}

func compressFile(input, output string, opts cliOptions, cfg *config.Config, stdout, stderr io.Writer) error {
	in, err := os.Open(input)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(output)
	if err != nil {
		return err
	}
	defer out.Close()

	hopts, finish := transcodeOptions(opts, cfg, 0, stdout, stderr)
	err = huffman.CompressFile(in, out, hopts...)
	finish()
	if err != nil {
		return fmt.Errorf("compress %s: %w", input, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	return report(input, output, stdout)
}

func expandFile(input, output string, opts cliOptions, cfg *config.Config, stdout, stderr io.Writer) error {
	in, err := os.Open(input)
	if err != nil {
		return err
	}
	defer in.Close()
	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.Create(output)
	if err != nil {
		return err
	}
	defer out.Close()

	hopts, finish := transcodeOptions(opts, cfg, info.Size(), stdout, stderr)
	err = huffman.ExpandFile(in, out, hopts...)
	finish()
	if err != nil {
		return fmt.Errorf("expand %s: %w", input, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	return report(input, output, stdout)
}

func report(input, output string, w io.Writer) error {
	inInfo, err := os.Stat(input)
	if err != nil {
		return err
	}
	outInfo, err := os.Stat(output)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	return compression.NewStats(compression.DefaultAlgorithm, inInfo.Size(), outInfo.Size()).Report(w)
}
