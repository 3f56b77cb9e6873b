// Command jsonscan decodes, encodes and checks JSON documents with the
// jsonscan engine, reporting errors by line and column.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log/level"
)

func main() {
	opts := &options{logger: newLogger("info"), stdout: os.Stdout}
	if err := loadEnv(".env"); err != nil {
		level.Warn(opts.logger).Log("msg", "ignoring env file", "err", err)
	}

	app := kingpin.New("jsonscan", "Scan, decode and encode JSON with exact error positions.")
	app.HelpFlag.Short('h')
	registerFlags(app, opts)
	app.PreAction(func(_ *kingpin.ParseContext) error {
		opts.logger = newLogger(opts.logLevel)
		return nil
	})

	addDecodeCommand(app, opts)
	addEncodeCommand(app, opts)
	addScanCommand(app, opts)
	addCheckCommand(app, opts)
	addStatsCommand(app, opts)
	addServeCommand(app, opts)

	if _, err := app.Parse(os.Args[1:]); err != nil {
		exitWithErr(err)
	}
}

func exitWithErr(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}
