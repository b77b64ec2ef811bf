// Command asm assembles Hack assembly files to machine code.
package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/n2t/toolchain/internal/driver"
	"github.com/n2t/toolchain/internal/hack"
	"github.com/n2t/toolchain/internal/logio"
)

var log = &logio.Logger{}

func main() {
	target := flag.String("d", "", ".asm file to assemble, or a directory containing .asm files")
	quiet := flag.Bool("q", false, "suppress per-file progress output")
	trace := flag.Bool("trace", false, "echo every assembled machine instruction at TRACE level")
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

	files, err := driver.CollectFiles(*target, ".asm")
	if err != nil {
		log.ErrorIf(err)
		return
	}
	if debugMode {
		log.Printf("DEBUG", "found %d .asm file(s) under %s", len(files), *target)
	}

	// Each .asm file assembles independently: hack.Assemble runs its own
	// two-pass symbol resolution over one file's instructions, so files fan
	// out across goroutines with no shared state to serialize.
	outputs, err := driver.MapOrdered(files, func(path string) (string, error) {
		stem, source, err := driver.ReadUnit(path)
		if err != nil {
			return "", err
		}
		return hack.Assemble(stem, source)
	})
	if err != nil {
		log.ErrorIf(err)
		return
	}

	for i, path := range files {
		if !quietMode {
			log.Printf("INFO", "assembling %s", path)
		}
		if traceMode {
			log.TraceEach(outputs[i])
		}
		outPath := withExt(path, ".hack")
		if err := driver.WriteOutput(outPath, outputs[i]); err != nil {
			log.ErrorIf(err)
		}
	}
}

func withExt(path, ext string) string {
	return path[:len(path)-len(filepath.Ext(path))] + ext
}
