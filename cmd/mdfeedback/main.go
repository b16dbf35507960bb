package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-mdfeedback/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches a command and maps its error to an exit code.
func runMain(args []string, env *Environment) int {
	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}

	if hasFlag(rest, "-v", "--verbose") {
		env.Logger = newLogger(env.Stderr, slog.LevelDebug)
	}
	setMaxProcs(env.Logger)

	if len(rest) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	var err error
	switch cmd := rest[0]; {
	case isCommand(cmd, "render"):
		err = runRender(ctx, rest[1:], env)
	case isCommand(cmd, "titles"):
		err = runTitles(rest[1:], env)
	case isCommand(cmd, "version", "--version"):
		fmt.Fprintf(env.Stdout, "mdfeedback %s\n", Version)
	case isCommand(cmd, "help", "-h", "--help"):
		runHelp(rest[1:], env)
	case looksLikeInput(cmd):
		// "mdfeedback docs/" is shorthand for "mdfeedback render docs/".
		err = runRender(ctx, rest, env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, "error:", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// setMaxProcs matches GOMAXPROCS to the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setMaxProcs(logger *slog.Logger) {
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}))
}

// isCommand reports whether arg is one of the command names.
func isCommand(arg string, names ...string) bool {
	for _, n := range names {
		if arg == n {
			return true
		}
	}
	return false
}

// looksLikeInput reports whether arg names a markdown file or a directory.
func looksLikeInput(arg string) bool {
	if fileutil.IsMarkdown(arg) {
		return true
	}
	return filepath.IsAbs(arg) || fileutil.DirExists(arg)
}

// hasFlag reports whether any of names appears before a "--" terminator.
func hasFlag(args []string, names ...string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if isCommand(a, names...) {
			return true
		}
	}
	return false
}
