package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/pasc-lang/pasc/backend"
	"github.com/pasc-lang/pasc/feedback"
	"github.com/pasc-lang/pasc/frontend"
	"github.com/pasc-lang/pasc/source"
	"github.com/urfave/cli"
)

var errorNoColor bool

func readSourceFiles(args []string) (files []*source.File) {
	var filenames []string

	// With no file arguments the source text comes from stdin
	if len(args) == 0 {
		buf, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Println(err.Error())
			return nil
		}

		return []*source.File{source.FromString("<stdin>", string(buf))}
	}

	for _, arg := range args {
		// Try to convert every argument to an absolute path, if not possible,
		// claim the file could not be found. If a path can be produced but has
		// the wrong extension, admit defeat for that argument. If both of these
		// tests are passed, add the absolute file to the `filenames` list
		if abs, err := filepath.Abs(arg); err == nil {
			if path.Ext(abs) == ".pas" {
				filenames = append(filenames, abs)
			} else {
				fmt.Printf("could not use '%s' with extension '%s'\n", abs, path.Ext(abs))
			}
		} else {
			fmt.Printf("could not find '%s'\n", arg)
		}
	}

	for _, filename := range filenames {
		buf, err := os.ReadFile(filename)

		// If any error is produced during the file read, print the error and
		// quit trying to process this filename
		if err != nil {
			fmt.Println(err.Error())
			continue
		}

		files = append(files, source.FromString(filename, string(buf)))
	}

	return files
}

// emitMessages renders a batch of diagnostics to stderr and reports whether
// there was anything to render
func emitMessages(msgs []feedback.Message, withColor bool) bool {
	for _, msg := range msgs {
		fmt.Fprintln(os.Stderr, msg.Make(withColor))
	}

	return len(msgs) > 0
}

// digest runs the frontend of the pipeline on one file: scan, parse, check.
// Lexical and syntactic errors stop the pipeline so the analysis is only
// non-nil when a tree was produced, though it may still be accompanied by
// semantic errors
func digest(file *source.File) (prog *frontend.ProgramNode, analysis *frontend.Analysis, msgs []feedback.Message) {
	prog, msgs = frontend.Parse(file)

	if prog == nil || feedback.HasErrors(msgs) {
		return nil, nil, msgs
	}

	analysis, semMsgs := frontend.Check(prog)
	msgs = append(msgs, semMsgs...)
	return prog, analysis, msgs
}

func dumpTokens(file *source.File) (failed bool) {
	toks, msgs := frontend.Scan(file)

	if emitMessages(msgs, !errorNoColor) {
		return true
	}

	fmt.Print(frontend.StringifyTokens(toks))
	return false
}

func dumpTree(file *source.File, withColor bool) (failed bool) {
	prog, msgs := frontend.Parse(file)

	if emitMessages(msgs, !errorNoColor) {
		return true
	}

	fmt.Print(frontend.StringifyTree(prog, withColor))
	return false
}

func translate(file *source.File) (failed bool) {
	prog, analysis, msgs := digest(file)

	if emitMessages(msgs, !errorNoColor) {
		return true
	}

	fmt.Print(backend.Translate(prog, analysis))
	return false
}

// pipeMode implements the stdin protocol: a mode number (0 = tokens,
// 1 = parse tree, 2 = C code) and a colorize number, then the source text
// until end of input. Output goes to stdout, diagnostics go to stderr
func pipeMode() error {
	reader := bufio.NewReader(os.Stdin)

	var mode, colorize int
	if _, err := fmt.Fscan(reader, &mode, &colorize); err != nil {
		return cli.NewExitError("could not read mode header from stdin", 1)
	}

	// Consume the line break that terminates the header
	if r, _, err := reader.ReadRune(); err == nil && r != '\n' {
		reader.UnreadRune()
	}

	buf, err := io.ReadAll(reader)
	if err != nil {
		return cli.NewExitError("could not read source from stdin", 1)
	}

	file := source.FromString("<stdin>", string(buf))

	var failed bool
	switch mode {
	case 0:
		toks, msgs := frontend.Scan(file)
		if failed = emitMessages(msgs, false); !failed {
			fmt.Print(frontend.StringifyTokens(toks))
		}
	case 1:
		prog, msgs := frontend.Parse(file)
		if failed = emitMessages(msgs, false); !failed {
			fmt.Print(frontend.StringifyTree(prog, colorize != 0))
		}
	default:
		prog, analysis, msgs := digest(file)
		if failed = emitMessages(msgs, false); !failed {
			fmt.Print(backend.Translate(prog, analysis))
		}
	}

	if failed {
		return cli.NewExitError("", 1)
	}

	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "pasc"
	app.Usage = "a Pascal dialect to C translator"

	noColorFlag := cli.BoolFlag{
		Name:        "no-color",
		Usage:       "hide colors in error and warning messages",
		Destination: &errorNoColor,
	}

	app.Commands = []cli.Command{
		{
			Name:    "tokens",
			Aliases: []string{"t"},
			Usage:   "Scan file(s) and dump the token stream",
			Flags: []cli.Flag{
				noColorFlag,
			},
			Action: func(c *cli.Context) error {
				var failed bool

				for _, f := range readSourceFiles(c.Args()) {
					failed = dumpTokens(f) || failed
				}

				if failed {
					return cli.NewExitError("", 1)
				}

				return nil
			},
		},
		{
			Name:    "tree",
			Aliases: []string{"p"},
			Usage:   "Parse file(s) and dump the syntax tree",
			Flags: []cli.Flag{
				noColorFlag,
			},
			Action: func(c *cli.Context) error {
				var failed bool

				for _, f := range readSourceFiles(c.Args()) {
					failed = dumpTree(f, !errorNoColor) || failed
				}

				if failed {
					return cli.NewExitError("", 1)
				}

				return nil
			},
		},
		{
			Name:    "translate",
			Aliases: []string{"c"},
			Usage:   "Translate file(s) to C and print the result",
			Flags: []cli.Flag{
				noColorFlag,
			},
			Action: func(c *cli.Context) error {
				var failed bool

				for _, f := range readSourceFiles(c.Args()) {
					failed = translate(f) || failed
				}

				if failed {
					return cli.NewExitError("", 1)
				}

				return nil
			},
		},
	}

	// Without a subcommand the driver speaks the stdin protocol used by
	// grading harnesses: a mode header followed by the source text
	app.Action = func(c *cli.Context) error {
		return pipeMode()
	}

	app.Run(os.Args)
}
