package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/muesli/reflow/wordwrap"
	"github.com/npillmayer/mdxjsx/expression"
	"github.com/npillmayer/mdxjsx/expression/ecma"
	"github.com/npillmayer/mdxjsx/markdown"
	"github.com/npillmayer/mdxjsx/syntax"
	"github.com/pterm/pterm"
	"github.com/spf13/pflag"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

// main() starts an interactive CLI ("MDX.REPL"), where users may enter MDX
// documents. MDX.REPL will parse each document and print out its tokens and
// its HTML rendering. It is intended as a sandbox for experiments with the
// JSX constructs and their diagnostics.
//
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	var (
		tlevel, initf string
		parse, inline bool
		width         int
	)
	flags := pflag.NewFlagSet("mdxrepl", pflag.ExitOnError)
	flags.StringVarP(&tlevel, "trace", "t", "Info", "Trace level [Debug|Info|Error]")
	flags.StringVar(&initf, "init", "", "Initial load")
	flags.BoolVar(&parse, "ecma", false, "Parse expressions in tags")
	flags.BoolVar(&inline, "inline", false, "Allow text after tags in flow position")
	flags.IntVarP(&width, "width", "w", 80, "Wrap HTML output at this width (0 does not wrap)")
	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	tracer().SetTraceLevel(tracing.LevelInfo) // will set the correct level later
	pterm.Info.Println("Welcome to MDX.REPL") // colored welcome message
	tracer().Infof("Trace level is %s", tlevel)
	//
	// set up the document parser
	p, err := makeParser(parse, inline)
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(2)
	}
	tracer().SetTraceLevel(traceLevel(tlevel)) // now set the user supplied level
	input := strings.TrimSpace(strings.Join(flags.Args(), " "))
	//
	// set up REPL
	repl, err := readline.New("mdx> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{parser: p, repl: repl, width: width}
	if input != "" {
		intp.Eval(unescape(input))
	}
	//
	// load an init file and start receiving documents
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.loadInitFile(initf)            // init file name provided by flag
	intp.REPL()                         // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// makeParser creates a document parser with the JSX constructs and flow
// expressions. Expressions are parsed by the reference parser if parse is
// set.
func makeParser(parse, inline bool) (*markdown.Parser, error) {
	opts := []syntax.Option{syntax.PreferInline(inline)}
	var bridge *expression.Bridge
	if parse {
		opts = append(opts, syntax.WithExpressionParser(ecma.New()), syntax.AttachExpressionResults(true))
		bridge = &expression.Bridge{Parser: ecma.New(), Options: expression.DefaultOptions}
	}
	ext, err := syntax.New(opts...)
	if err != nil {
		return nil, err
	}
	return markdown.NewParser(ext, markdown.WithFlowExpressions(bridge, parse)), nil
}

// Intp is our interpreter object
type Intp struct {
	parser *markdown.Parser
	repl   *readline.Instance
	width  int // of HTML output
}

// loadInitFile parses the content of a file as a single document.
func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	if err := intp.Eval(string(content)); err != nil {
		tracer().Errorf("Error in init file %s: %v", filename, err)
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		intp.Eval(unescape(line))
	}
	println("Good bye!")
}

// Eval parses a document and prints its token tree and HTML.
func (intp *Intp) Eval(doc string) error {
	tracer().Infof("----------------------- Parse & Tokens ---------------------------")
	root, err := intp.parser.Parse(doc)
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(leveledDocument(root))).Render()
	tracer().Infof("-------------------------- Output --------------------------------")
	html := markdown.RenderHTML(root)
	if intp.width > 0 {
		html = wordwrap.String(html, intp.width)
	}
	pterm.Info.Println(html)
	return nil
}

// unescape replaces `\n` and `\t` by line feed and tab.
func unescape(line string) string {
	return strings.NewReplacer(`\n`, "\n", `\t`, "\t").Replace(line)
}

// leveledDocument lists the blocks of a document, each followed by its
// tokens, nested by their enter and exit events.
func leveledDocument(doc *markdown.Node) pterm.LeveledList {
	ll := pterm.LeveledList{{Level: 0, Text: doc.Kind.String()}}
	return leveledBlocks(doc.Children, ll, 1)
}

func leveledBlocks(nodes []*markdown.Node, ll pterm.LeveledList, level int) pterm.LeveledList {
	for _, n := range nodes {
		label := fmt.Sprintf("%s %s", n.Kind, n.Span())
		if n.Construct != "" {
			label = fmt.Sprintf("%s %s %s", n.Kind, n.Construct, n.Span())
		}
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: label})
		ll = leveledBlocks(n.Children, ll, level+1)
		depth := level + 1
		for _, e := range n.Events {
			if !e.Enter {
				depth--
				continue
			}
			text := fmt.Sprintf("%s %q", e.Token.Name(), n.Text(e.Token))
			if e.Token.Estree != nil {
				text += " [estree]"
			}
			ll = append(ll, pterm.LeveledListItem{Level: depth, Text: text})
			depth++
		}
	}
	return ll
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
