// Command jackc compiles Jack source files to VM code.
package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/n2t/toolchain/internal/driver"
	"github.com/n2t/toolchain/internal/jack"
	"github.com/n2t/toolchain/internal/logio"
)

var log = &logio.Logger{}

func main() {
	target := flag.String("d", "", ".jack file to compile, or a directory containing .jack files")
	quiet := flag.Bool("q", false, "suppress per-file progress output")
	trace := flag.Bool("trace", false, "echo every compiled VM command at TRACE level")
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

	files, err := driver.CollectFiles(*target, ".jack")
	if err != nil {
		log.ErrorIf(err)
		return
	}
	if debugMode {
		log.Printf("DEBUG", "found %d .jack file(s) under %s", len(files), *target)
	}

	// Independent .jack files compile concurrently, one goroutine per file
	// via jack.Compile; each compilation is a pure function of its own
	// source text, so there is no shared state to serialize.
	outputs, err := driver.MapOrdered(files, func(path string) (string, error) {
		stem, source, err := driver.ReadUnit(path)
		if err != nil {
			return "", err
		}
		return jack.Compile(stem, source)
	})
	if err != nil {
		log.ErrorIf(err)
		return
	}

	for i, path := range files {
		if !quietMode {
			log.Printf("INFO", "compiling %s", path)
		}
		if traceMode {
			log.TraceEach(outputs[i])
		}
		outPath := withExt(path, ".vm")
		if err := driver.WriteOutput(outPath, outputs[i]); err != nil {
			log.ErrorIf(err)
		}
	}
}

func withExt(path, ext string) string {
	return path[:len(path)-len(filepath.Ext(path))] + ext
}
