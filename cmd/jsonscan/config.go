package main

import (
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/sugawarayuuta/jsonscan"
)

// options are the flags shared by every command. Each can also be set
// through its JSONSCAN_* variable, which a .env file in the working
// directory may provide.
type options struct {
	logLevel string
	strict   bool
	ascii    bool
	allowNaN bool
	decimal  bool
	maxDepth int

	logger log.Logger
	stdout io.Writer
}

func registerFlags(app *kingpin.Application, opts *options) {
	app.Flag("log.level", "Only log messages with the given severity or above.").
		Envar("JSONSCAN_LOG_LEVEL").Default("info").EnumVar(&opts.logLevel, "debug", "info", "warn", "error")
	app.Flag("strict", "Reject raw control characters inside strings.").
		Envar("JSONSCAN_STRICT").Default("true").BoolVar(&opts.strict)
	app.Flag("ascii", "Escape every non-ASCII character on output.").
		Envar("JSONSCAN_ASCII").BoolVar(&opts.ascii)
	app.Flag("allow-nan", "Accept and write NaN, Infinity and -Infinity.").
		Envar("JSONSCAN_ALLOW_NAN").Default("true").BoolVar(&opts.allowNaN)
	app.Flag("decimal", "Decode non-integer numbers as arbitrary precision decimals.").
		Envar("JSONSCAN_DECIMAL").BoolVar(&opts.decimal)
	app.Flag("max-depth", "Maximum nesting of objects and arrays, 0 for no limit.").
		Envar("JSONSCAN_MAX_DEPTH").Default("0").IntVar(&opts.maxDepth)
}

// loadEnv loads the env files that exist. Variables already set win.
func loadEnv(files ...string) error {
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return errors.Wrapf(err, "loading %s", file)
		}
	}
	return nil
}

func newLogger(lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	var allow level.Option
	switch lvl {
	case "debug":
		allow = level.AllowDebug()
	case "warn":
		allow = level.AllowWarn()
	case "error":
		allow = level.AllowError()
	default:
		allow = level.AllowInfo()
	}
	return level.NewFilter(logger, allow)
}

func (opts *options) decoder() *jsonscan.Decoder {
	dec := jsonscan.NewDecoder()
	dec.Lenient = !opts.strict
	dec.MaxDepth = opts.maxDepth
	if opts.decimal {
		dec.Converters = jsonscan.DecimalConverters(false)
	}
	if !opts.allowNaN {
		dec.ParseConstant = func(name string) (any, error) {
			return nil, errors.Errorf("constant %s not allowed", name)
		}
	}
	return dec
}

func (opts *options) encodeOptions() jsonscan.EncodeOptions {
	return jsonscan.EncodeOptions{ASCIIOnly: opts.ascii, AllowNaN: opts.allowNaN}
}
