// Package flags provides shared flag definitions for the CLI commands.
package flags

import "flag"

// AddPathFlag adds --path and -p flags for the file or directory to document.
func AddPathFlag(fs *flag.FlagSet) *string {
	path := fs.String("path", "", "file or directory to document")
	fs.StringVar(path, "p", "", "file or directory to document (shorthand)")
	return path
}

// AddLanguageFlag adds --language and -l flags for a language override.
func AddLanguageFlag(fs *flag.FlagSet) *string {
	lang := fs.String("language", "", "source language (default: detect from extension)")
	fs.StringVar(lang, "l", "", "source language (shorthand)")
	return lang
}

// AddOutputFlag adds --output and -o flags for the output format.
func AddOutputFlag(fs *flag.FlagSet) *string {
	output := fs.String("output", "", "output format: markdown, html or inline")
	fs.StringVar(output, "o", "", "output format (shorthand)")
	return output
}

// AddOutputFileFlag adds --output-file and -f flags for the destination file.
func AddOutputFileFlag(fs *flag.FlagSet) *string {
	file := fs.String("output-file", "", "write the exported document to this file")
	fs.StringVar(file, "f", "", "write the exported document to this file (shorthand)")
	return file
}

// AddConfigFlag adds --config and -c flags for an explicit config file.
func AddConfigFlag(fs *flag.FlagSet) *string {
	cfg := fs.String("config", "", "config file (default: codescribe.jsonc or codescribe.yaml)")
	fs.StringVar(cfg, "c", "", "config file (shorthand)")
	return cfg
}

// AddRecursiveFlag adds --recursive and -r flags for directory descent.
func AddRecursiveFlag(fs *flag.FlagSet) *bool {
	recursive := fs.Bool("recursive", false, "descend into subdirectories")
	fs.BoolVar(recursive, "r", false, "descend into subdirectories (shorthand)")
	return recursive
}

// AddQuietFlag adds --quiet and -q flags for quiet mode.
func AddQuietFlag(fs *flag.FlagSet) *bool {
	quiet := fs.Bool("quiet", false, "suppress non-essential output")
	fs.BoolVar(quiet, "q", false, "suppress non-essential output (shorthand)")
	return quiet
}

// AddVerboseFlag adds a --verbose flag for progress logging.
func AddVerboseFlag(fs *flag.FlagSet) *bool {
	return fs.Bool("verbose", false, "show progress information")
}

// AddDebugFlag adds a --debug flag for detailed logging.
func AddDebugFlag(fs *flag.FlagSet) *bool {
	return fs.Bool("debug", false, "show detailed debugging output")
}

// AddPortFlag adds --port and -p flags for the server port.
func AddPortFlag(fs *flag.FlagSet, defaultPort int) *int {
	port := fs.Int("port", defaultPort, "server port")
	fs.IntVar(port, "p", defaultPort, "server port (shorthand)")
	return port
}

// AddHostFlag adds a --host flag for the server bind address.
func AddHostFlag(fs *flag.FlagSet, defaultHost string) *string {
	return fs.String("host", defaultHost, "server bind address")
}
