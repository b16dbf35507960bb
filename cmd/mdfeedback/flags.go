package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// decorationFlags overrides the heading decoration.
type decorationFlags struct {
	level        int
	wrapperClass string
	component    string
	attribute    string
}

// assetFlags holds asset-related flags (CSS, custom asset path).
type assetFlags struct {
	style     string // Name, path, or CSS content
	assetPath string // Override asset directory
	noStyle   bool   // Disable CSS styling
}

// outputFlags holds output mode flags.
type outputFlags struct {
	standalone bool // Full HTML document instead of a fragment
	pdf        bool // PDF alongside the HTML
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common     commonFlags
	output     string
	registry   string
	workers    int
	timeout    string
	updated    string
	watch      bool
	decoration decorationFlags
	assets     assetFlags
	outputMode outputFlags
}

// titlesFlags holds flags for the titles command.
type titlesFlags struct {
	common    commonFlags
	registry  string
	assetPath string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing and logs")
}

// addDecorationFlags adds heading decoration flags to a FlagSet.
func addDecorationFlags(fs *flag.FlagSet, f *decorationFlags) {
	fs.IntVar(&f.level, "level", 0, "heading level to decorate (1-6, default: 2)")
	fs.StringVar(&f.wrapperClass, "wrapper-class", "", "class of the wrapping div")
	fs.StringVar(&f.component, "component", "", "feedback component name (default: Feedback)")
	fs.StringVar(&f.attribute, "attribute", "", "component attribute for the heading text (default: heading)")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable CSS styling")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.standalone, "standalone", false, "write full HTML documents")
	fs.BoolVar(&f.pdf, "pdf", false, "also write a PDF per page")
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &renderFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVarP(&f.registry, "registry", "r", "", "header registry file")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.updated, "updated", "", "last-updated date: \"auto\", \"auto:FORMAT\", or literal")
	fs.BoolVar(&f.watch, "watch", false, "re-render when sources change")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addDecorationFlags(fs, &f.decoration)
	addAssetFlags(fs, &f.assets)
	addOutputFlags(fs, &f.outputMode)

	fs.Usage = func() { printRenderUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseTitlesFlags parses titles command flags.
func parseTitlesFlags(args []string, stderr io.Writer) (*titlesFlags, error) {
	fs := flag.NewFlagSet("titles", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &titlesFlags{}

	fs.StringVarP(&f.registry, "registry", "r", "", "header registry file")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printTitlesUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}
