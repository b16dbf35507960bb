package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdfeedback <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render markdown pages to HTML with feedback widgets")
	fmt.Fprintln(w, "  titles     List the page titles in the header registry")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdfeedback help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdfeedback render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render markdown pages to HTML. Pages whose title is in the header")
	fmt.Fprintln(w, "registry get a feedback component after each level-2 heading.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .html file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -r, --registry <path>     Header registry file (default: built-in)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --watch               Re-render when sources change")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Decoration:")
	fmt.Fprintln(w, "      --level <n>           Heading level to decorate (1-6, default: 2)")
	fmt.Fprintln(w, "      --wrapper-class <s>   Wrapper div class (default: \"flex items-center gap-2\")")
	fmt.Fprintln(w, "      --component <s>       Component name (default: Feedback)")
	fmt.Fprintln(w, "      --attribute <s>       Component attribute (default: heading)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --standalone          Write full HTML documents")
	fmt.Fprintln(w, "      --pdf                 Also write a PDF per page (headless Chrome)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --updated <s>         Last-updated date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>           Style name, CSS file, or inline CSS")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w, "      --no-style            Disable CSS styling")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDFEEDBACK_CONFIG, MDFEEDBACK_REGISTRY, MDFEEDBACK_STYLE, MDFEEDBACK_TIMEOUT,")
	fmt.Fprintln(w, "  MDFEEDBACK_WORKERS, MDFEEDBACK_INPUT_DIR, MDFEEDBACK_OUTPUT_DIR, MDFEEDBACK_UPDATED")
}

// printTitlesUsage prints usage for the titles command.
func printTitlesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdfeedback titles [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List the page titles that receive feedback widgets, one per line.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -r, --registry <path>     Header registry file (default: built-in)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "titles":
		printTitlesUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdfeedback version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdfeedback help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
