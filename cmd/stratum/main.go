// Command stratum resolves hierarchical sidecar metadata for an item
// in a filesystem tree and, optionally, runs it through the script
// engine. goptions handles verb parsing; stdout/stderr go through
// package vars for testability, and the ANSI color decision is driven
// by isatty.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/voxelbrain/goptions"

	"github.com/gobbles/stratum/internal/config"
	"github.com/gobbles/stratum/internal/logx"
	"github.com/gobbles/stratum/internal/utils/ansi"
	"github.com/gobbles/stratum/internal/utils/keypath"
	"github.com/gobbles/stratum/pkg/stratum"
	_ "github.com/gobbles/stratum/pkg/stratum/decoder" // register yaml/json decoders
	"github.com/gobbles/stratum/pkg/stratum/script"
	"github.com/gobbles/stratum/pkg/stratum/script/asm"
)

// Version is set by the release build process; development builds
// leave it at its zero value.
var Version = "(development)"

var printfStdOut = func(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, format, args...)
}

var getopts = func(o interface{}) {
	if err := goptions.Parse(o); err != nil {
		usage()
	}
}

var exit = func(code int) { os.Exit(code) }

var usage = func() {
	goptions.PrintHelp()
	exit(1)
}

// resolveOpts is shared by all three verbs: most
// fields apply to every verb, and the handful that don't (Field,
// Method, Program) are simply ignored by the verbs that have no use
// for them.
type resolveOpts struct {
	IncludeFiles []string `goptions:"--include-files, description='Glob pattern(s) a sidecar-bearing file must match (may repeat)'"`
	ExcludeFiles []string `goptions:"--exclude-files, description='Glob pattern(s) to reject among files (may repeat)'"`
	IncludeDirs  []string `goptions:"--include-dirs, description='Glob pattern(s) a descended directory must match (may repeat)'"`
	ExcludeDirs  []string `goptions:"--exclude-dirs, description='Glob pattern(s) to reject among directories (may repeat)'"`
	SortBy       string   `goptions:"--sort-by, description='name or mod_time (default: name)'"`
	SortOrder    string   `goptions:"--sort-order, description='ascending or descending (default: ascending)'"`
	Format       string   `goptions:"--format, description='sidecar serialize_format: yaml or json (default: yaml)'"`
	SelfFn       string   `goptions:"--self-fn, description='override the Parent sidecar file stem'"`
	ItemFn       string   `goptions:"--item-fn, description='override the Siblings sidecar file stem'"`
	Config       string   `goptions:"--config, description='load include/exclude/sort/format options from a config document, ignoring the flags above'"`

	Field   string `goptions:"--field, description='aggregate: the block field to search for; get: a key path to project the result through; run: the key path each resolved block is projected through'"`
	Method  string `goptions:"--method, description='aggregate: first or collect (default: first)'"`
	Program string `goptions:"--program, description='run: path to a pipeline script (default: read from stdin)'"`

	Help  bool               `goptions:"--help, -h"`
	Files goptions.Remainder `goptions:"description='item path to resolve'"`
}

func main() {
	var options struct {
		Debug     bool   `goptions:"-D, --debug, description='Enable debugging'"`
		Trace     bool   `goptions:"-T, --trace, description='Enable trace mode debugging (very verbose)'"`
		Version   bool   `goptions:"-v, --version, description='Display version information'"`
		Color     string `goptions:"--color, description='Control color output (on/off/auto, default: auto)'"`
		Action    goptions.Verbs
		Get       resolveOpts `goptions:"get"`
		Aggregate resolveOpts `goptions:"aggregate"`
		Run       resolveOpts `goptions:"run"`
	}
	getopts(&options)

	if options.Debug {
		logx.SetLevel(logx.LevelDebug)
	}
	if options.Trace {
		logx.SetLevel(logx.LevelTrace)
	}

	if options.Get.Help || options.Aggregate.Help || options.Run.Help {
		usage()
		return
	}

	if options.Version {
		printfStdOut("%s - Version %s\n", os.Args[0], Version)
		exit(0)
		return
	}

	shouldEnableColor := false
	switch options.Color {
	case "on":
		shouldEnableColor = true
	case "off":
		shouldEnableColor = false
	case "auto", "":
		shouldEnableColor = isatty.IsTerminal(os.Stderr.Fd())
	default:
		fmt.Fprintf(os.Stderr, "Invalid --color option: %s. Must be 'on', 'off', or 'auto'.\n", options.Color)
		exit(1)
		return
	}
	ansi.Color(shouldEnableColor)

	var err error
	switch options.Action {
	case "get":
		err = cmdGet(options.Get)
	case "aggregate":
		err = cmdAggregate(options.Aggregate)
	case "run":
		err = cmdRun(options.Run)
	default:
		usage()
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, ansi.Sprintf("@R{error:} %s", err.Error()))
		exit(2)
		return
	}
}

func resolveDocument(o resolveOpts) (config.Document, error) {
	if o.Config != "" {
		return config.Load(o.Config)
	}
	return config.Document{
		IncludeFiles:    config.StringOrList(o.IncludeFiles),
		ExcludeFiles:    config.StringOrList(o.ExcludeFiles),
		IncludeDirs:     config.StringOrList(o.IncludeDirs),
		ExcludeDirs:     config.StringOrList(o.ExcludeDirs),
		SortBy:          o.SortBy,
		SortOrder:       o.SortOrder,
		SerializeFormat: o.Format,
		SelfFn:          o.SelfFn,
		ItemFn:          o.ItemFn,
	}, nil
}

func itemPath(o resolveOpts) (string, error) {
	if len(o.Files) == 0 {
		return "", fmt.Errorf("an item path is required")
	}
	return o.Files[0], nil
}

func cmdGet(o resolveOpts) error {
	doc, err := resolveDocument(o)
	if err != nil {
		return err
	}
	cfg, err := doc.ToConfiguration()
	if err != nil {
		return err
	}
	path, err := itemPath(o)
	if err != nil {
		return err
	}

	block, err := stratum.GetWithConfig(path, cfg)
	if err != nil {
		return err
	}

	v := stratum.BlockAsValue(block)
	if o.Field != "" {
		kp, err := keypath.Parse(o.Field)
		if err != nil {
			return fmt.Errorf("field %q: %w", o.Field, err)
		}
		resolved, ok := kp.Resolve(v)
		if !ok {
			resolved = stratum.Nil
		}
		v = resolved
	}

	out, err := dumpYAML(v)
	if err != nil {
		return err
	}
	printfStdOut("%s", out)
	return nil
}

func cmdAggregate(o resolveOpts) error {
	doc, err := resolveDocument(o)
	if err != nil {
		return err
	}
	cfg, err := doc.ToConfiguration()
	if err != nil {
		return err
	}
	path, err := itemPath(o)
	if err != nil {
		return err
	}
	if o.Field == "" {
		return fmt.Errorf("--field is required for aggregate")
	}

	method := stratum.AggFirst
	switch o.Method {
	case "", "first":
		method = stratum.AggFirst
	case "collect":
		method = stratum.AggCollect
	default:
		return fmt.Errorf("--method must be 'first' or 'collect', got %q", o.Method)
	}

	v, err := stratum.AggregateWithConfig(path, o.Field, cfg, method)
	if err != nil {
		return err
	}
	out, err := dumpYAML(v)
	if err != nil {
		return err
	}
	printfStdOut("%s", out)
	return nil
}

func cmdRun(o resolveOpts) error {
	doc, err := resolveDocument(o)
	if err != nil {
		return err
	}
	cfg, err := doc.ToConfiguration()
	if err != nil {
		return err
	}
	path, err := itemPath(o)
	if err != nil {
		return err
	}

	selection, err := cfg.Selection()
	if err != nil {
		return err
	}
	dec, ok := stratum.DecoderFor(cfg.SerializeFormat)
	if !ok {
		return stratum.ErrNoDecoder
	}

	var kp stratum.KeyPath
	if o.Field != "" {
		kp, err = keypath.Parse(o.Field)
		if err != nil {
			return fmt.Errorf("field %q: %w", o.Field, err)
		}
	}

	src, err := programSource(o)
	if err != nil {
		return err
	}
	prog, err := asm.Parse(src)
	if err != nil {
		return fmt.Errorf("parsing program: %w", err)
	}

	ctx := &script.Context{
		ItemPath:  path,
		Selection: selection,
		Sorter:    cfg.Sorter(),
		Decoder:   dec,
		Naming:    cfg.Naming(),
		KeyPath:   kp,
	}

	result, err := script.RunToValue(prog, nil, ctx)
	if err != nil {
		return err
	}
	out, err := dumpYAML(result)
	if err != nil {
		return err
	}
	printfStdOut("%s", out)
	return nil
}

func programSource(o resolveOpts) (string, error) {
	if o.Program != "" {
		raw, err := os.ReadFile(o.Program)
		if err != nil {
			return "", fmt.Errorf("reading program %s: %w", o.Program, err)
		}
		return string(raw), nil
	}
	if len(o.Files) > 1 {
		return strings.Join(o.Files[1:], "\n"), nil
	}
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading program from stdin: %w", err)
	}
	return string(raw), nil
}
