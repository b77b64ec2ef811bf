// Command vmtrans translates VM code to Hack assembly.
package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/n2t/toolchain/internal/driver"
	"github.com/n2t/toolchain/internal/logio"
	"github.com/n2t/toolchain/internal/vmlang"
)

var log = &logio.Logger{}

func main() {
	target := flag.String("d", "", ".vm file to translate, or a directory containing .vm files")
	quiet := flag.Bool("q", false, "suppress per-file progress output")
	trace := flag.Bool("trace", false, "echo every generated assembly instruction at TRACE level")
	flag.Parse()

	log.SetOutput(os.Stderr)
	defer func() { os.Exit(log.ExitCode()) }()

	level := driver.LogLevel()
	quietMode := *quiet || level == "quiet"
	debugMode := level == "debug"
	traceMode := *trace || driver.TraceEnabled()

	if *target == "" && flag.NArg() > 0 {
		*target = flag.Arg(0)
	}
	if *target == "" {
		flag.Usage()
		log.Errorf("a path is required (positional argument or -d)")
		return
	}

	info, err := os.Stat(*target)
	if err != nil {
		log.Errorf("%v", err)
		return
	}

	files, err := driver.CollectFiles(*target, ".vm")
	if err != nil {
		log.ErrorIf(err)
		return
	}
	if debugMode {
		log.Printf("DEBUG", "found %d .vm file(s) under %s", len(files), *target)
	}

	// Each file parses independently and concurrently; the resulting command
	// lists are then handed to GenerateFromParsed in file order so the
	// generator's comparison and return-address counters stay single-threaded
	// and monotonic across the whole run.
	parsed, err := driver.MapOrdered(files, func(path string) ([]vmlang.Command, error) {
		if !quietMode {
			log.Printf("INFO", "parsing %s", path)
		}
		stem, source, err := driver.ReadUnit(path)
		if err != nil {
			return nil, err
		}
		return vmlang.Parse(stem, source)
	})
	if err != nil {
		log.ErrorIf(err)
		return
	}

	asm, err := vmlang.GenerateFromParsed(parsed, info.IsDir())
	if err != nil {
		log.ErrorIf(err)
		return
	}
	if traceMode {
		log.TraceEach(asm)
	}

	outPath := outputPath(*target, info.IsDir())
	if err := driver.WriteOutput(outPath, asm); err != nil {
		log.ErrorIf(err)
		return
	}
	if !quietMode {
		log.Printf("INFO", "wrote %s", outPath)
	}
}

// outputPath mirrors the original's naming: a directory "Foo/" translates
// to "Foo/Foo.asm"; a single file "Foo.vm" translates to "Foo.asm".
func outputPath(target string, isDir bool) string {
	if isDir {
		name := filepath.Base(filepath.Clean(target))
		return filepath.Join(target, name+".asm")
	}
	return target[:len(target)-len(filepath.Ext(target))] + ".asm"
}
