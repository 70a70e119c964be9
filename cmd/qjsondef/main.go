// Command qjsondef reads QJSON from a file or stdin and writes canonical
// JSON to stdout, structured the way the teacher's cmd/mysqldef builds
// its CLI: go-flags for options, a --file/stdin input source, a
// --version short-circuit, and a non-zero exit with the diagnostic on
// stderr on failure.
package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/jessevdk/go-flags"
	"github.com/k0kubun/pp/v3"
	"golang.org/x/term"

	"github.com/k0kubun/qjsondef/internal/builder"
	"github.com/k0kubun/qjsondef/internal/lexer"
	"github.com/k0kubun/qjsondef/util"
	"github.com/k0kubun/qjsondef"
)

type options struct {
	File    string `long:"file" short:"f" description:"Read QJSON from the file, rather than stdin" value-name:"path" default:"-"`
	Options string `long:"options" description:"YAML file overriding operating limits (max_depth)" value-name:"path"`
	Debug   bool   `long:"debug" description:"Dump the outer token stream to stderr before building JSON"`
	Help    bool   `long:"help" description:"Show this help"`
	Version bool   `long:"version" description:"Show this version"`
}

// config is the shape of the --options YAML file: operating limits
// only, never engine grammar (SPEC_FULL.md's Configuration section).
type config struct {
	MaxDepth int `yaml:"max_depth"`
}

func parseOptions(args []string) *options {
	var opts options
	parser := flags.NewParser(&opts, flags.None)
	parser.Usage = "[options]"
	_, err := parser.ParseArgs(args)
	if err != nil {
		log.Fatal(err)
	}

	if opts.Help {
		parser.WriteHelp(os.Stdout)
		os.Exit(0)
	}

	return &opts
}

func main() {
	util.InitSlog()
	opts := parseOptions(os.Args[1:])

	if opts.Version {
		fmt.Println(qjson.Version())
		return
	}

	input, err := readInput(opts.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	maxDepth := builder.DefaultMaxDepth
	if opts.Options != "" {
		maxDepth = loadMaxDepth(opts.Options)
	}

	if opts.Debug {
		dumpTokens(input)
	}

	out, diag := builder.DecodeWithDepth(input, maxDepth)
	if diag != nil {
		msg := diag.Format(input)
		fmt.Fprintln(os.Stderr, highlight(msg))
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func readInput(file string) ([]byte, error) {
	if file == "" || file == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(file)
}

func loadMaxDepth(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("could not read options file", "path", path, "error", err)
		return builder.DefaultMaxDepth
	}
	var cfg config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		slog.Warn("could not parse options file", "path", path, "error", err)
		return builder.DefaultMaxDepth
	}
	if cfg.MaxDepth <= 0 {
		return builder.DefaultMaxDepth
	}
	return cfg.MaxDepth
}

type tokenLine struct {
	Tag string
	Col int
}

// dumpTokens pretty-prints the outer token stream, the same role
// pp.Println plays dumping a parsed AST in the teacher's MySQL parser
// during development — repurposed here as the --debug token trace.
func dumpTokens(input []byte) {
	tz := lexer.New(input)
	var raw []lexer.Token
	for {
		tok, _ := tz.Next()
		raw = append(raw, tok)
		if tok.Tag.String() == "EndOfInput" || tok.Tag.String() == "Error" {
			break
		}
	}
	lines := util.TransformSlice(raw, func(tok lexer.Token) tokenLine {
		return tokenLine{Tag: tok.Tag.String(), Col: tok.Pos.Column(input)}
	})
	pp.Fprintln(os.Stderr, lines)
	dumpTokenCounts(lines)
}

// dumpTokenCounts prints how many tokens of each tag appeared, in
// deterministic sorted-by-tag order rather than Go's randomized map
// iteration — the same role util.CanonicalMapIter plays producing
// consistent output in the teacher's DDL-generation helpers.
func dumpTokenCounts(lines []tokenLine) {
	counts := make(map[string]int)
	for _, l := range lines {
		counts[l.Tag]++
	}
	for tag, n := range util.CanonicalMapIter(counts) {
		fmt.Fprintf(os.Stderr, "  %s: %d\n", tag, n)
	}
}

// highlight wraps a diagnostic's trailing "at line L col C" suffix in
// ANSI color when stderr is a terminal, reusing x/term's
// terminal-detection half of the package the teacher uses for
// term.ReadPassword.
func highlight(msg string) string {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return msg
	}
	const red = "\x1b[31m"
	const reset = "\x1b[0m"
	i := strings.LastIndex(msg, " at line ")
	if i < 0 {
		return msg
	}
	return msg[:i+1] + red + msg[i+1:] + reset
}
