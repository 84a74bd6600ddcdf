// SPDX-License-Identifier: MIT

// Command dbus-console lexes D-Bus call arguments & talks to the bus from the terminal.
//
// Usage:
//
//	dbus-console [flags] tokens TEXT...
//	dbus-console [flags] decode TEXT
//	dbus-console [flags] names
//	dbus-console [flags] paths SERVICE
//	dbus-console [flags] methods SERVICE PATH
//	dbus-console [flags] call SERVICE PATH INTERFACE.METHOD [TEXT]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"gitlab.com/fisherprime/dbusconsole"
	"gitlab.com/fisherprime/dbusconsole/app"
	"gitlab.com/fisherprime/dbusconsole/config"
	"gitlab.com/fisherprime/dbusconsole/dbus"
	"gitlab.com/fisherprime/dbusconsole/lexer"
)

var (
	errUsage = errors.New("usage")
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "dbus-console:", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, argv []string, out io.Writer) (err error) {
	flags := pflag.NewFlagSet("dbus-console", pflag.ContinueOnError)
	configDir := flags.String("config", ".", "directory holding dbus-console.env")
	flags.String("bus", "", "bus to use: session or system")
	flags.Bool("debug", false, "enable debug logging")
	flags.Bool("filter-aliases", true, "hide unique connection names")
	if err = flags.Parse(argv); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	v := config.New()
	for key, name := range map[string]string{"BUS": "bus", "DEBUG": "debug", "FILTER_ALIASES": "filter-aliases"} {
		if flag := flags.Lookup(name); flag.Changed {
			if err = v.BindPFlag(key, flag); err != nil {
				return
			}
		}
	}

	cfg, err := config.Load(v, *configDir)
	if err != nil {
		return
	}
	logger, err := cfg.Logger()
	if err != nil {
		return
	}
	if cfg.Debug {
		logger.Debugf("config: %s", spew.Sdump(cfg))
	}

	args := flags.Args()
	if len(args) < 1 {
		return fmt.Errorf("%w: missing command", errUsage)
	}

	lexOpts := []lexer.Option{
		lexer.WithLogger(logger),
		lexer.WithDebug(cfg.Debug),
		lexer.WithPoolSize(cfg.PoolSize),
	}

	switch command, rest := args[0], args[1:]; command {
	case "tokens":
		return printTokens(ctx, out, lexer.New(lexOpts...), rest)
	case "decode":
		if len(rest) != 1 {
			return fmt.Errorf("%w: decode TEXT", errUsage)
		}
		return printDecoded(ctx, out, rest[0], lexOpts)
	case "names", "paths", "methods", "call":
		return busCommand(ctx, out, cfg, logger, lexOpts, command, rest)
	}

	return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
}

func printTokens(ctx context.Context, out io.Writer, l *lexer.Lexer, sources []string) error {
	if len(sources) < 1 {
		return fmt.Errorf("%w: tokens TEXT...", errUsage)
	}

	streams, err := l.TokenizeAll(ctx, sources)
	if err != nil {
		return describe(sources, err)
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for index, stream := range streams {
		if len(sources) > 1 {
			fmt.Fprintf(w, "# %s\n", sources[index])
		}
		for _, token := range stream {
			fmt.Fprintf(w, "%s\t%s\t%q\n", token.Kind, token.Span, token.Content)
		}
	}

	return w.Flush()
}

// printLevels lists object paths by depth.
func printLevels(ctx context.Context, out io.Writer, tree *dbus.ObjectTree) error {
	levels, err := tree.Levels(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for depth, level := range levels {
		for _, path := range level {
			fmt.Fprintf(w, "%d\t%s\n", depth, path)
		}
	}

	return w.Flush()
}

func printDecoded(ctx context.Context, out io.Writer, text string, opts []lexer.Option) error {
	args, err := dbusconsole.Deserialize(ctx, text, opts...)
	if err != nil {
		return describe([]string{text}, err)
	}

	canonical, err := dbusconsole.Serialize(ctx, args)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, canonical)
	spew.Fdump(out, args)

	return nil
}

func busCommand(ctx context.Context, out io.Writer, cfg config.Config, logger logrus.FieldLogger, lexOpts []lexer.Option, command string, args []string) (err error) {
	conn, err := dbus.Dial(cfg.Bus, dbus.WithLogger(logger), dbus.WithDebug(cfg.Debug))
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(ctx, cfg.CallTimeout)
	defer cancel()

	a := app.New(conn, app.WithLogger(logger), app.WithFilterAliases(cfg.FilterAliases), app.WithLexerOptions(lexOpts...))

	switch command {
	case "names":
		a.Dispatch(ctx, app.LoadBusNames{})
		if a.Err == nil {
			fmt.Fprintln(out, strings.Join(a.VisibleBusNames(), "\n"))
		}
	case "paths":
		if len(args) != 1 {
			return fmt.Errorf("%w: paths SERVICE", errUsage)
		}
		a.Dispatch(ctx, app.LoadPaths{Service: args[0]})
		if a.Err != nil {
			break
		}

		return printLevels(ctx, out, a.PathTree)
	case "methods":
		if len(args) != 2 {
			return fmt.Errorf("%w: methods SERVICE PATH", errUsage)
		}
		a.Dispatch(ctx, app.LoadMethods{Service: args[0], Path: args[1]})
		for _, method := range a.Methods {
			fmt.Fprintln(out, method)
		}
	case "call":
		if len(args) < 3 || len(args) > 4 {
			return fmt.Errorf("%w: call SERVICE PATH INTERFACE.METHOD [TEXT]", errUsage)
		}

		dot := strings.LastIndexByte(args[2], '.')
		if dot < 1 {
			return fmt.Errorf("%w: %q is not INTERFACE.METHOD", errUsage, args[2])
		}

		var text string
		if len(args) == 4 {
			text = args[3]
		}

		a.Dispatch(ctx, app.CallMethod{
			Service:   args[0],
			Path:      args[1],
			Interface: args[2][:dot],
			Method:    args[2][dot+1:],
			Args:      text,
		})
		if a.Err != nil {
			return describe([]string{text}, a.Err)
		}
		spew.Fdump(out, a.Reply)
	}

	return a.Err
}

// describe points at the offending span of a lexing or decoding error.
func describe(sources []string, err error) error {
	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) {
		return err
	}

	source := sources[0]

	var batchErr *lexer.BatchError
	if errors.As(err, &batchErr) && batchErr.Index < len(sources) {
		source = sources[batchErr.Index]
	}
	if lexErr.Span.End > len(source) {
		return err
	}

	// Columns are counted in runes.
	pad := utf8.RuneCountInString(source[:lexErr.Span.Start])
	width := utf8.RuneCountInString(source[lexErr.Span.Start:lexErr.Span.End])
	if width < 1 {
		width = 1
	}

	return fmt.Errorf("%w\n  %s\n  %s%s", err, source, strings.Repeat(" ", pad), strings.Repeat("^", width))
}
