package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/peterh/liner"
	"github.com/ucci-lang/ucci/builtin"
	"github.com/ucci-lang/ucci/config"
	"github.com/ucci-lang/ucci/driver"
	"github.com/ucci-lang/ucci/eval"
	"github.com/ucci-lang/ucci/lexer"
	"github.com/ucci-lang/ucci/parser"
)

func main() {
	const (
		inputUsage = "input file path"
	)
	var (
		inputPath  string
		configPath string
		mode       Mode
	)
	flag.StringVar(&inputPath, "input", "", inputUsage)
	flag.StringVar(&inputPath, "i", "", inputUsage+" (shorthand)")
	flag.StringVar(&configPath, "config", "", "config file path (default: $XDG_CONFIG_HOME/"+config.RelPath+")")
	flag.BoolVar(&mode.DumpAST, "ast", false, "print the syntax tree instead of running")
	flag.BoolVar(&mode.Format, "fmt", false, "print the formatted source instead of running")
	flag.BoolVar(&mode.Timing, "time", false, "report how long the script ran")

	flag.Parse()

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	mode.Timing = mode.Timing || cfg.Timing

	if inputPath == "" {
		err := RunPrompt(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	} else {
		if err := RunFile(inputPath, cfg, mode); err != nil {
			report(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		found, ok := config.Find()
		if !ok {
			return config.Default(), nil
		}
		path = found
	}
	return config.Load(path)
}

type Mode struct {
	DumpAST bool
	Format  bool
	Timing  bool
}

// errWarned marks a run whose only problems were non-fatal runtime errors;
// they have already been printed.
var errWarned = errors.New("runtime errors were reported")

func report(w io.Writer, err error) {
	for _, err := range driver.Errors(err) {
		if errors.Is(err, errWarned) {
			continue
		}
		fmt.Fprintln(w, err)
	}
}

func newInterpreter(cfg config.Config) (*eval.Interpreter, error) {
	in := eval.NewInterpreter()
	builtin.Predefined(in)
	if err := cfg.Apply(in); err != nil {
		return nil, err
	}
	return in, nil
}

func RunPrompt(cfg config.Config) error {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	defer func() {
		if err := os.MkdirAll(filepath.Dir(cfg.History), os.ModePerm); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if f, err := os.Create(cfg.History); err == nil {
			defer f.Close()
			if _, err := line.WriteHistory(f); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
		line.Close()
	}()

	if f, err := os.Open(cfg.History); err == nil {
		defer f.Close()
		if _, err := line.ReadHistory(f); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	in, err := newInterpreter(cfg)
	if err != nil {
		return err
	}
	r := driver.NewPassRunner()
	r.AddPass(in)
	for {
		input, err := line.Prompt(cfg.Prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		line.AppendHistory(input)
		if err := runLine(r, in, input); err != nil {
			report(os.Stderr, err)
		}
	}
}

// runLine runs input as statements, or, failing that, evaluates it as a
// single expression and prints the result.
func runLine(r *driver.PassRunner, in *eval.Interpreter, input string) error {
	program, errDecls := driver.Parse(input)
	if errDecls == nil {
		_, err := r.Run(program)
		return err
	}

	tokens, err := lexer.Lex(input)
	if err != nil {
		return err
	}
	expr, errExpr := parser.NewParser(tokens).ParseExpr()
	if errExpr != nil {
		return errDecls
	}
	v, err := in.Evaluate(expr)
	if err != nil {
		return err
	}
	fmt.Fprintln(in.Stdout(), v)

	return nil
}

func RunFile(path string, cfg config.Config, mode Mode) error {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	in, err := newInterpreter(cfg)
	if err != nil {
		return err
	}

	r := driver.NewPassRunner()
	switch {
	case mode.DumpAST:
		r.AddPass(driver.Dump{W: os.Stdout})
	case mode.Format:
		r.AddPass(driver.Format{W: os.Stdout})
	default:
		r.AddPass(in)
	}

	start := time.Now()
	_, err = r.RunSource(string(bytes))
	if mode.Timing {
		fmt.Fprintf(os.Stderr, "Ran script in %v.\n", time.Since(start))
	}
	if err != nil {
		return err
	}
	if len(in.Warnings()) > 0 {
		return errWarned
	}

	return nil
}
