// styledump loads stylesheet documents and prints every style's rules
// resolved against an environment picked on the command line. It is a
// debugging aid for stylesheet authors: warnings and degraded lookups are
// reported alongside the resolved values.
package main

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"stylist/expression"
	"stylist/stylesheet"
)

func main() {
	cmd := &cli.Command{
		Name:      "styledump",
		Usage:     "resolve and print stylesheet rules for a chosen device environment",
		ArgsUsage: "file.yaml...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "idiom", Value: "phone", Usage: "device idiom: phone, pad, tv, carplay, mac"},
			&cli.StringFlag{Name: "orientation", Value: "portrait", Usage: "orientation: portrait, landscape"},
			&cli.StringFlag{Name: "hsize", Value: "regular", Usage: "horizontal size class: compact, regular"},
			&cli.StringFlag{Name: "vsize", Value: "regular", Usage: "vertical size class: compact, regular"},
			&cli.BoolFlag{Name: "debug", Usage: "verbose logging"},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(_ context.Context, cmd *cli.Command) error {
	if cmd.NArg() == 0 {
		return fmt.Errorf("no stylesheet files given")
	}

	env, err := buildEnvironment(cmd)
	if err != nil {
		return err
	}

	log := newLogger(cmd.Bool("debug"))
	defer func() { _ = log.Sync() }()

	ev := expression.NewEvaluator(env, log)
	loader := stylesheet.NewLoader(ev, log)

	var errs error
	for _, path := range cmd.Args().Slice() {
		if err := dump(loader, ev, log, path); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", path, err))
		}
	}
	return errs
}

func buildEnvironment(cmd *cli.Command) (expression.Snapshot, error) {
	var (
		env expression.Snapshot
		err error
	)
	if env.Device, err = expression.ParseIdiom(cmd.String("idiom")); err != nil {
		return env, err
	}
	if env.Orient, err = expression.ParseOrientation(cmd.String("orientation")); err != nil {
		return env, err
	}
	if env.HSize, err = expression.ParseSizeClass(cmd.String("hsize")); err != nil {
		return env, err
	}
	if env.VSize, err = expression.ParseSizeClass(cmd.String("vsize")); err != nil {
		return env, err
	}
	return env, nil
}

func newLogger(debug bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func dump(loader *stylesheet.Loader, ev *expression.Evaluator, log *zap.Logger, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	sheet, err := loader.Load(data)
	if err != nil {
		return err
	}
	for _, w := range sheet.Warnings {
		log.Warn("Stylesheet warning", zap.String("file", path), zap.String("warning", w))
	}

	res := stylesheet.NewResolver(ev, log)
	for _, styleName := range slices.Sorted(maps.Keys(sheet.Styles)) {
		fmt.Printf("%s:\n", styleName)
		style := sheet.Styles[styleName]
		for _, ruleName := range slices.Sorted(maps.Keys(style)) {
			fmt.Printf("  %s: %s\n", ruleName, render(res, style[ruleName]))
		}
	}
	for _, d := range res.Diagnostics() {
		log.Warn("Degraded lookup", zap.String("file", path), zap.String("rule", d.Rule),
			zap.String("code", d.Code), zap.String("detail", d.Detail))
	}
	return nil
}

func render(res *stylesheet.Resolver, rule *stylesheet.Rule) string {
	switch rule.Kind {
	case stylesheet.KindBool:
		return strconv.FormatBool(res.Bool(rule, false))
	case stylesheet.KindNumber, stylesheet.KindExpression:
		return strconv.FormatFloat(res.Float(rule, 0), 'g', -1, 64)
	case stylesheet.KindString:
		return strconv.Quote(res.String(rule, ""))
	case stylesheet.KindFont:
		f := res.Font(rule, stylesheet.FontDescriptor{})
		if f.System {
			return fmt.Sprintf("font(system, %g)", f.Size)
		}
		return fmt.Sprintf("font(%s, %g)", f.Family, f.Size)
	case stylesheet.KindColor:
		return "#" + res.Color(rule, stylesheet.ColorDescriptor{}).Hex
	default:
		return "<undefined>"
	}
}
