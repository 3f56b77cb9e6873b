package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log/level"
	gojson "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/pkg/errors"

	"github.com/sugawarayuuta/jsonscan"
)

type serveCommand struct {
	opts      *options
	listen    string
	bodyLimit int
}

func addServeCommand(app *kingpin.Application, opts *options) {
	cmd := &serveCommand{opts: opts}
	serve := app.Command("serve", "Serve scan, decode and encode over HTTP.").Action(cmd.run)
	serve.Flag("listen", "Address to listen on.").Envar("JSONSCAN_LISTEN").Default(":8080").StringVar(&cmd.listen)
	serve.Flag("body-limit", "Largest accepted request body in bytes.").Envar("JSONSCAN_BODY_LIMIT").Default("4194304").IntVar(&cmd.bodyLimit)
}

func (cmd *serveCommand) run(_ *kingpin.ParseContext) error {
	app := newServer(cmd.opts, cmd.bodyLimit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		level.Info(cmd.opts.logger).Log("msg", "shutting down")
		if err := app.Shutdown(); err != nil {
			level.Error(cmd.opts.logger).Log("msg", "shutdown failed", "err", err)
		}
	}()

	level.Info(cmd.opts.logger).Log("msg", "listening", "addr", cmd.listen)
	return errors.Wrap(app.Listen(cmd.listen), "serve")
}

// errorBody describes a document that failed to scan or decode.
type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Pos     int    `json:"pos"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

// tokenBody is the response of /v1/scan. Match is false when no value
// starts at the requested position.
type tokenBody struct {
	Match bool   `json:"match"`
	Kind  string `json:"kind,omitempty"`
	Raw   string `json:"raw,omitempty"`
	Pos   int    `json:"pos"`
	End   int    `json:"end"`
	Float bool   `json:"float,omitempty"`
}

type literalBody struct {
	Literal string `json:"literal"`
}

func newServer(opts *options, bodyLimit int) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "jsonscan",
		BodyLimit:             bodyLimit,
		JSONEncoder:           gojson.Marshal,
		JSONDecoder:           gojson.Unmarshal,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Post("/v1/scan", func(c *fiber.Ctx) error {
		return handleScan(c, opts)
	})
	app.Post("/v1/decode", func(c *fiber.Ctx) error {
		return handleDecode(c, opts)
	})
	app.Post("/v1/encode", func(c *fiber.Ctx) error {
		return handleEncode(c, opts)
	})
	return app
}

// handleScan scans the single token at ?pos= of the request body.
func handleScan(c *fiber.Ctx, opts *options) error {
	scan := opts.decoder().Scanner
	scan.Lenient = !c.QueryBool("strict", !scan.Lenient)
	pos := c.QueryInt("pos", 0)
	buf := jsonscan.NewBuffer(string(c.Body()))
	tok, ok, err := scan.Scan(buf, pos)
	if err != nil {
		return writeError(c, located(err, buf))
	}
	if !ok {
		return c.JSON(tokenBody{Pos: pos, End: pos})
	}
	return c.JSON(tokenBody{
		Match: true,
		Kind:  tok.Kind.String(),
		Raw:   tok.Raw,
		Pos:   pos,
		End:   tok.End,
		Float: tok.Float,
	})
}

// handleDecode decodes the request body and answers with it re-encoded.
func handleDecode(c *fiber.Ctx, opts *options) error {
	dec := opts.decoder()
	dec.Lenient = !c.QueryBool("strict", !dec.Lenient)
	if c.QueryBool("keep_order") {
		dec.ObjectPairsHook = func(pairs []jsonscan.Pair) (any, error) {
			return pairs, nil
		}
	}
	val, err := dec.DecodeBytes(c.Body())
	if err != nil {
		return writeError(c, err)
	}
	encOpts := opts.encodeOptions()
	encOpts.ASCIIOnly = c.QueryBool("ascii", encOpts.ASCIIOnly)
	out, err := jsonscan.Marshal(val, encOpts)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": err.Error()})
	}
	c.Type("json")
	return c.Send(out)
}

// handleEncode quotes the request body as one string literal.
func handleEncode(c *fiber.Ctx, opts *options) error {
	ascii := c.QueryBool("ascii", opts.ascii)
	return c.JSON(literalBody{Literal: jsonscan.EncodeString(string(c.Body()), ascii)})
}

func writeError(c *fiber.Ctx, err error) error {
	var synErr *jsonscan.SyntaxError
	if !errors.As(err, &synErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusBadRequest).JSON(errorBody{
		Kind:    string(synErr.Kind),
		Message: synErr.Msg,
		Pos:     synErr.Pos,
		Line:    synErr.Line,
		Column:  synErr.Column,
	})
}
