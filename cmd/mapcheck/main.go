// Command mapcheck loads YAML mapping files and prints their diagnostics.
//
// Only the structure of a file can be checked here: schema version, profile
// references, duplicate pairs, member paths and conflicting options. Type
// names and members are resolved when the program that owns the types calls
// mapping.Apply.
//
// Usage:
//
//	mapcheck [-strict] [-normalize] file.yaml...
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"object-mapper/mapping"
	"object-mapper/options"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mapcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)

	strict := fs.Bool("strict", false, "treat warnings as errors")
	normalize := fs.Bool("normalize", false, "print each valid file with 121 shorthand expanded")

	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: mapcheck [-strict] [-normalize] file.yaml...")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	opts, err := options.FromEnv()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: opts.LogLevel}))

	code := exitOK
	for _, path := range fs.Args() {
		if !check(path, *strict, *normalize, stdout, logger) {
			code = exitInvalid
		}
	}

	return code
}

func check(path string, strict, normalize bool, stdout io.Writer, logger *slog.Logger) bool {
	mf, err := mapping.LoadFile(path)
	if err != nil {
		logger.Error("load failed", slog.String("file", path), slog.Any("error", err))
		return false
	}

	diags := mapping.Validate(mf, nil)

	for _, d := range diags.Errors {
		fmt.Fprintf(stdout, "%s: error: %s\n", path, d)
	}

	for _, d := range diags.Warnings {
		logger.Warn(d.Message, slog.String("file", path), slog.String("code", d.Code),
			slog.String("pair", d.TypePair), slog.String("member", d.FieldPath))
		fmt.Fprintf(stdout, "%s: warning: %s\n", path, d)
	}

	ok := diags.IsValid() && (!strict || len(diags.Warnings) == 0)
	if !ok {
		return false
	}

	logger.Debug("mapping file is valid", slog.String("file", path), slog.Int("mappings", len(mf.TypeMappings)))

	if normalize {
		mapping.NormalizeMappingFile(mf)

		data, err := mapping.Marshal(mf)
		if err != nil {
			logger.Error("marshal failed", slog.String("file", path), slog.Any("error", err))
			return false
		}

		fmt.Fprintf(stdout, "# %s\n%s", path, data)
	}

	return true
}
