package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/sugawarayuuta/jsonscan"
)

type scanCommand struct {
	opts *options
	file string
}

func addScanCommand(app *kingpin.Application, opts *options) {
	cmd := &scanCommand{opts: opts}
	scan := app.Command("scan", "List the tokens of a document with their positions.").Action(cmd.run)
	scan.Arg("file", "File to scan, - for stdin.").Default("-").StringVar(&cmd.file)
}

func (cmd *scanCommand) run(_ *kingpin.ParseContext) error {
	in, err := readInput(cmd.file)
	if err != nil {
		return err
	}
	scan := cmd.opts.decoder().Scanner
	buf := jsonscan.NewBuffer(string(in.data))
	out := tabwriter.NewWriter(cmd.opts.stdout, 0, 8, 1, ' ', 0)
	fmt.Fprintln(out, "POS\tEND\tKIND\tRAW")
	err = walk(&scan, buf, func(pos int, tok jsonscan.Token) error {
		raw := tok.Raw
		if tok.Kind == jsonscan.String {
			raw = jsonscan.EncodeString(raw, true)
		}
		_, err := fmt.Fprintf(out, "%d\t%d\t%s\t%s\n", pos, tok.End, tok.Kind, raw)
		return err
	})
	if flushErr := out.Flush(); err == nil {
		err = flushErr
	}
	return errors.Wrap(located(err, buf), in.name)
}

type checkCommand struct {
	opts  *options
	files []string
}

func addCheckCommand(app *kingpin.Application, opts *options) {
	cmd := &checkCommand{opts: opts}
	check := app.Command("check", "Report whether documents decode, and where they don't.").Action(cmd.run)
	check.Arg("file", "Files to check, - for stdin.").StringsVar(&cmd.files)
}

func (cmd *checkCommand) run(_ *kingpin.ParseContext) error {
	bad := 0
	dec := cmd.opts.decoder()
	ok := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed, color.Bold).SprintFunc()
	err := forEachInput(cmd.files, func(in input) error {
		_, err := dec.DecodeBytes(in.data)
		var synErr *jsonscan.SyntaxError
		switch {
		case err == nil:
			fmt.Fprintf(cmd.opts.stdout, "%s %s\n", ok("ok"), in.name)
		case errors.As(err, &synErr):
			bad++
			fmt.Fprintf(cmd.opts.stdout, "%s %s:%d:%d: %s\n", fail("error"), in.name, synErr.Line, synErr.Column, synErr.Msg)
			level.Debug(cmd.opts.logger).Log("msg", "check failed", "file", in.name, "kind", string(synErr.Kind), "err", err)
		default:
			return errors.Wrap(err, in.name)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if bad > 0 {
		return errors.Errorf("%d of the documents failed to decode", bad)
	}
	return nil
}

type statsCommand struct {
	opts  *options
	files []string
}

func addStatsCommand(app *kingpin.Application, opts *options) {
	cmd := &statsCommand{opts: opts}
	stats := app.Command("stats", "Count the tokens of documents by kind.").Action(cmd.run)
	stats.Arg("file", "Files to count, - for stdin.").StringsVar(&cmd.files)
}

type tokenStats struct {
	size   int
	runes  int
	total  int
	byKind map[jsonscan.Kind]int
}

func (cmd *statsCommand) run(_ *kingpin.ParseContext) error {
	scan := cmd.opts.decoder().Scanner
	bold := color.New(color.Bold)
	return forEachInput(cmd.files, func(in input) error {
		stats, err := countTokens(&scan, in.data)
		if err != nil {
			return errors.Wrap(err, in.name)
		}
		bold.Fprintf(cmd.opts.stdout, "%s\n", in.name)
		fmt.Fprintf(cmd.opts.stdout, "  size:   %s (%s code points)\n", humanize.Bytes(uint64(stats.size)), humanize.Comma(int64(stats.runes)))
		fmt.Fprintf(cmd.opts.stdout, "  tokens: %s\n", humanize.Comma(int64(stats.total)))
		kinds := make([]jsonscan.Kind, 0, len(stats.byKind))
		for kind := range stats.byKind {
			kinds = append(kinds, kind)
		}
		sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
		for _, kind := range kinds {
			fmt.Fprintf(cmd.opts.stdout, "    %-8s %s\n", kind, humanize.Comma(int64(stats.byKind[kind])))
		}
		return nil
	})
}

func countTokens(scan *jsonscan.Scanner, data []byte) (tokenStats, error) {
	buf := jsonscan.NewBuffer(string(data))
	stats := tokenStats{size: len(data), runes: len(buf), byKind: make(map[jsonscan.Kind]int)}
	err := walk(scan, buf, func(_ int, tok jsonscan.Token) error {
		stats.total++
		stats.byKind[tok.Kind]++
		return nil
	})
	if err != nil {
		return tokenStats{}, located(err, buf)
	}
	return stats, nil
}
