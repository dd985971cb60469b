// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"corelang/grammar"
	"corelang/internal/config"
	"corelang/internal/engine"
	"corelang/internal/errors"
	"corelang/internal/lexer"
)

const usage = `usage: core [-hsbtfv] [-i input-file] [-c config.yaml] [-m max-iterations] file.core

options:
  -i FILE  read input values from FILE, one integer per line
  -c FILE  load settings from FILE instead of ./.core.yaml
  -m N     stop a while statement after N iterations (0 = no limit)
  -s       reject variables that were never declared
  -b       print output only after the program finishes
  -t       print the token sequence instead of running
  -f       print the formatted program instead of running
  -v       more logging on stderr (repeatable)
  -h       show this help
`

var log = commonlog.GetLogger("core.cli")

type options struct {
	file       string
	inputFile  string
	configFile string

	strict        bool
	buffered      bool
	dumpTokens    bool
	format        bool
	help          bool
	maxIterations int
	maxSet        bool
	verbosity     int
}

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func parseArgs(args []string) (*options, error) {
	opts, optind, err := getopt.Getopts(args, "hsbtfvi:c:m:")
	if err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		switch opt.Option {
		case 'h':
			o.help = true
		case 's':
			o.strict = true
		case 'b':
			o.buffered = true
		case 't':
			o.dumpTokens = true
		case 'f':
			o.format = true
		case 'v':
			o.verbosity++
		case 'i':
			o.inputFile = opt.Value
		case 'c':
			o.configFile = opt.Value
		case 'm':
			value, err := strconv.Atoi(opt.Value)
			if err != nil || value < 0 {
				return nil, fmt.Errorf("invalid -m parameter %q", opt.Value)
			}
			o.maxIterations = value
			o.maxSet = true
		}
	}
	if o.help {
		return o, nil
	}

	rest := args[optind:]
	if len(rest) != 1 {
		return nil, fmt.Errorf("expected exactly one source file, got %d", len(rest))
	}
	if o.dumpTokens && o.format {
		return nil, fmt.Errorf("-t and -f cannot be combined")
	}
	o.file = rest[0]
	return o, nil
}

// loadConfig merges the config file with the command line; flags win.
func loadConfig(o *options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configFile != "" {
		cfg, err = config.Load(o.configFile)
	} else {
		cfg, err = config.LoadDefault(".")
	}
	if err != nil {
		return nil, err
	}

	cfg.Strict = cfg.Strict || o.strict
	cfg.Buffered = cfg.Buffered || o.buffered
	if o.maxSet {
		cfg.MaxIterations = o.maxIterations
	}
	cfg.Verbosity += o.verbosity
	return cfg, cfg.Validate()
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	o, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "core: %v\n\n%s", err, usage)
		return 2
	}
	if o.help {
		fmt.Fprint(stdout, usage)
		return 0
	}

	cfg, err := loadConfig(o)
	if err != nil {
		fmt.Fprintf(stderr, "core: %v\n", err)
		return 2
	}
	cfg.Color.Apply()
	commonlog.Configure(cfg.Verbosity, nil)
	if cfg.Path != "" {
		log.Infof("settings from %s", cfg.Path)
	}

	source, err := os.ReadFile(o.file)
	if err != nil {
		fmt.Fprintf(stderr, "failed to read file: %v\n", err)
		return 1
	}

	startTime := time.Now()
	reporter := errors.NewErrorReporter(o.file, string(source))
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)

	scanner := lexer.NewScanner(source)
	tokens := scanner.ScanTokens()
	log.Debugf("scanned %d tokens", len(tokens))

	if o.dumpTokens {
		fmt.Fprint(stdout, lexer.Dump(tokens))
	}
	if scanErrors := scanner.Errors(); len(scanErrors) > 0 {
		for _, scanErr := range scanErrors {
			fmt.Fprint(stderr, reporter.FormatError(errors.FromScanError(scanErr)))
		}
		red.Fprintf(stderr, "Scanning failed after %s\n", formatDuration(time.Since(startTime)))
		return 1
	}
	if o.dumpTokens {
		return 0
	}

	if o.format {
		program, err := grammar.ParseString(o.file, string(source))
		if err != nil {
			report(stderr, reporter, err)
			return 1
		}
		fmt.Fprint(stdout, program.String())
		return 0
	}

	opts := cfg.EngineOptions()
	if o.inputFile != "" {
		values, err := readInputFile(o.inputFile)
		if err != nil {
			fmt.Fprintf(stderr, "failed to read input: %v\n", err)
			return 1
		}
		opts.Input = engine.NewSliceInput(values...)
	} else {
		opts.Input = engine.NewPromptInput(stdin, stdout)
	}

	var buffer *engine.BufferedOutput
	if cfg.Buffered {
		buffer = &engine.BufferedOutput{}
		opts.Output = buffer
	} else {
		opts.Output = engine.NewWriterOutput(stdout)
	}

	if err := engine.New(opts).Run(tokens); err != nil {
		report(stderr, reporter, err)
		red.Fprintf(stderr, "Execution failed after %s\n", formatDuration(time.Since(startTime)))
		return 1
	}
	if buffer != nil {
		if err := buffer.Flush(stdout); err != nil {
			fmt.Fprintf(stderr, "failed to write output: %v\n", err)
			return 1
		}
	}

	if cfg.Verbosity > 0 {
		green.Fprintf(stderr, "Successfully ran %s in %s\n", o.file, formatDuration(time.Since(startTime)))
	}
	return 0
}

func report(w io.Writer, reporter *errors.ErrorReporter, err error) {
	if compilerErr, ok := errors.FromError(err); ok {
		fmt.Fprint(w, reporter.FormatError(compilerErr))
		return
	}
	fmt.Fprintf(w, "%s: %v\n", color.RedString("error"), err)
}

func readInputFile(path string) ([]int32, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return engine.ParseInputFile(file)
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
