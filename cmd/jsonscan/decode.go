package main

import (
	"bufio"
	"bytes"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/sugawarayuuta/jsonscan"
)

type decodeCommand struct {
	opts      *options
	files     []string
	keepOrder bool
}

func addDecodeCommand(app *kingpin.Application, opts *options) {
	cmd := &decodeCommand{opts: opts}
	decode := app.Command("decode", "Decode documents and write them back compactly.").Action(cmd.run)
	decode.Flag("keep-order", "Keep object members in document order, duplicates included.").BoolVar(&cmd.keepOrder)
	decode.Arg("file", "Files to decode, - for stdin.").StringsVar(&cmd.files)
}

func (cmd *decodeCommand) run(_ *kingpin.ParseContext) error {
	dec := cmd.opts.decoder()
	if cmd.keepOrder {
		dec.ObjectPairsHook = func(pairs []jsonscan.Pair) (any, error) {
			return pairs, nil
		}
	}
	return forEachInput(cmd.files, func(in input) error {
		val, err := dec.DecodeBytes(in.data)
		if err != nil {
			return errors.Wrap(err, in.name)
		}
		out, err := jsonscan.Marshal(val, cmd.opts.encodeOptions())
		if err != nil {
			return errors.Wrap(err, in.name)
		}
		level.Debug(cmd.opts.logger).Log("msg", "decoded", "file", in.name, "in", len(in.data), "out", len(out))
		_, err = cmd.opts.stdout.Write(append(out, '\n'))
		return err
	})
}

type encodeCommand struct {
	opts  *options
	files []string
}

func addEncodeCommand(app *kingpin.Application, opts *options) {
	cmd := &encodeCommand{opts: opts}
	encode := app.Command("encode", "Quote every input line as a JSON string literal.").Action(cmd.run)
	encode.Arg("file", "Files to read lines from, - for stdin.").StringsVar(&cmd.files)
}

func (cmd *encodeCommand) run(_ *kingpin.ParseContext) error {
	out := bufio.NewWriter(cmd.opts.stdout)
	err := forEachInput(cmd.files, func(in input) error {
		lines := bufio.NewScanner(bytes.NewReader(in.data))
		lines.Buffer(nil, len(in.data)+1)
		var dst []byte
		for lines.Scan() {
			dst = jsonscan.AppendString(dst[:0], lines.Text(), cmd.opts.ascii)
			dst = append(dst, '\n')
			if _, err := out.Write(dst); err != nil {
				return err
			}
		}
		return errors.Wrap(lines.Err(), in.name)
	})
	if err != nil {
		return err
	}
	return out.Flush()
}
