package main

import (
	"errors"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"
	"github.com/pipe01/akhamoth/internal/config"
	"github.com/pipe01/akhamoth/internal/diagnostics"
	"github.com/pipe01/akhamoth/internal/dump"
	"github.com/pipe01/akhamoth/internal/session"
	"github.com/pipe01/akhamoth/internal/source"
	"github.com/tliron/commonlog"
	"golang.org/x/term"

	_ "github.com/tliron/commonlog/simple"
)

var version = "0.0.1"

var (
	configPath   = kingpin.Flag("config", "Project file listing the sources to compile").Short('c').PlaceHolder(config.DefaultFileName).String()
	colorMode    = kingpin.Flag("color", "When to color diagnostics").Envar("AKHC_COLOR").Enum("auto", "always", "never")
	dumpTokens   = kingpin.Flag("tokens", "Print the token stream of each file instead of checking it").Bool()
	denyWarnings = kingpin.Flag("deny-warnings", "Fail if any warning was emitted").Bool()
	watch        = kingpin.Flag("watch", "Watch files for changes and recompile automatically").Short('w').Bool()
	verbosity    = kingpin.Flag("verbose", "Increase log verbosity, can be repeated").Short('v').Counter()
	logFile      = kingpin.Flag("log-file", "Write logs to this file instead of stderr").String()
	files        = kingpin.Arg("files", "List of files to compile").ExistingFiles()

	cfg *config.Config
)

func main() {
	kingpin.Version(version)
	kingpin.Parse()

	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath, false)
	} else {
		cfg, err = config.Load(config.DefaultFileName, true)
	}
	if err != nil {
		kingpin.Fatalf("failed to load config: %s", err)
	}

	mergeFlags(cfg)

	if len(cfg.Sources) == 0 {
		kingpin.Fatalf("no input files")
	}

	var logPath *string
	if *logFile != "" {
		logPath = logFile
	}
	commonlog.Configure(cfg.Verbosity, logPath)

	color.NoColor = !useColor(cfg.Color)

	if *watch {
		err := watchFiles(cfg.Sources)
		if err != nil {
			kingpin.Fatalf("failed to watch files: %s", err)
		}
		return
	}

	if !compileAll(cfg.Sources) {
		os.Exit(1)
	}
}

func mergeFlags(cfg *config.Config) {
	if len(*files) > 0 {
		cfg.Sources = *files
	}
	if *colorMode != "" {
		cfg.Color = *colorMode
	}
	if *denyWarnings {
		cfg.DenyWarnings = true
	}
	if *verbosity > 0 {
		cfg.Verbosity = *verbosity
	}
}

func useColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	return term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == ""
}

// compileAll compiles every file in one session and reports whether the
// compilation succeeded.
func compileAll(paths []string) bool {
	sm := source.New()
	p := diagnostics.NewPrinter(os.Stderr, sm, !color.NoColor)
	sess := session.NewWithSourceMap(sm, p)

	for _, path := range paths {
		var err error

		if *dumpTokens {
			err = dumpFile(sess, path)
		} else {
			_, err = sess.Compile(path)
		}

		// the address space can't grow any further, the rest of the files
		// would fail the same way
		var loadErr *source.LoadError
		if errors.As(err, &loadErr) && loadErr.IsOverflow() {
			break
		}
	}

	p.Summary()

	return p.Errors == 0 && (!cfg.DenyWarnings || p.Warnings == 0)
}

func dumpFile(sess *session.Session[*diagnostics.Printer], path string) error {
	f, tks, err := sess.Tokens(path)
	if err != nil {
		return err
	}

	return dump.New(os.Stdout, sess.SourceMap).WriteFile(f, tks)
}
