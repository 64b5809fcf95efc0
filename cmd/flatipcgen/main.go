// Command flatipcgen certifies the @flatipc types of a Go file and writes
// their envelope methods, signatures and proof obligations to
// <file>_flatipc.go.
//
// Usage:
//
//	//go:generate go run github.com/alexhholmes/flatipc/cmd/flatipcgen -file $GOFILE
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/alexhholmes/flatipc/internal/analyzer"
	"github.com/alexhholmes/flatipc/internal/codegen"
	"github.com/alexhholmes/flatipc/internal/parser"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("flatipcgen", flag.ContinueOnError)
	file := fs.String("file", os.Getenv("GOFILE"), "annotated Go source file")
	out := fs.String("out", "", "output path (default <file>_flatipc.go)")
	check := fs.Bool("check", false, "certify only, print a report and write nothing")
	verbose := fs.Bool("v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return errors.New("no input: pass -file or run from go:generate")
	}

	log := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		log = l
		defer func() { _ = log.Sync() }()
	}

	// Sibling files contribute the types fields refer to
	reg := analyzer.NewTypeRegistry()
	siblings, err := parser.ParseDir(filepath.Dir(*file))
	if err != nil {
		log.Warn("some package files could not be parsed", zap.Error(err))
	}
	for _, f := range siblings {
		reg.AddFile(f)
	}

	target, err := parser.ParseFile(*file)
	if err != nil {
		return err
	}
	reg.AddFile(target)

	if len(target.Types) == 0 {
		log.Info("no @flatipc types found", zap.String("file", *file))
		return nil
	}

	var certs []*analyzer.Certificate
	for _, decl := range target.Types {
		cert, err := analyzer.Certify(decl, reg)
		if err != nil {
			return fmt.Errorf("%s: %w", decl.Pos, err)
		}
		log.Debug("certified",
			zap.String("type", decl.Name),
			zap.Stringer("kind", decl.Kind),
			zap.Uint32("signature", cert.Signature),
			zap.Int("obligations", len(cert.Obligations)),
			zap.Int("padded_size", cert.PaddedSize()))
		certs = append(certs, cert)
	}

	if *check {
		for _, cert := range certs {
			size := "?"
			if cert.LayoutKnown {
				size = fmt.Sprintf("%d", cert.Layout.Size)
			}
			fmt.Fprintf(stdout, "%-20s %-8s sig=%#08x size=%s obligations=%d\n",
				cert.Decl.Name, cert.Decl.Kind, cert.Signature, size, len(cert.Obligations))
		}
		return nil
	}

	code, err := codegen.GenerateFile(certs, codegen.Options{
		Package: target.Package,
		Source:  filepath.Base(*file),
		Imports: target.Imports,
	})
	if err != nil {
		return err
	}

	dest := *out
	if dest == "" {
		dest = strings.TrimSuffix(*file, ".go") + parser.GeneratedSuffix
	}
	if err := os.WriteFile(dest, code, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	log.Info("wrote generated code", zap.String("path", dest), zap.Int("types", len(certs)))
	return nil
}
