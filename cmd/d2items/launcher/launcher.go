package launcher

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/d2items/flags"
	"github.com/rony4d/d2items/integration"
	"github.com/rony4d/d2items/inter"
	"github.com/rony4d/d2items/sheet"
)

// Launch parses args and runs the selected command.
func Launch(args []string) error {
	return newApp(os.Stdout, os.Stderr).Run(args)
}

func newApp(out, errOut io.Writer) *cli.App {
	app := flags.NewApp("read and write bit-packed item records of character saves")
	app.Writer = out
	app.ErrWriter = errOut
	app.Commands = []cli.Command{
		decodeCommand,
		encodeCommand,
		listCommand,
		huffmanCommand,
	}
	return app
}

// session is what a command runs with: the merged config, the logger and the codec.
type session struct {
	cfg   Config
	log   *logrus.Logger
	codec *inter.Codec
	out   io.Writer
}

func newSession(ctx *cli.Context) (*session, error) {
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg.Log, ctx.App.ErrWriter)
	if err != nil {
		return nil, err
	}

	var book *sheet.Book
	if cfg.Tables.Dir == "" {
		book, err = sheet.Presets()
	} else {
		book, err = sheet.LoadDir(cfg.Tables.Dir)
	}
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"dir":    cfg.Tables.Dir,
		"tables": book.Names(),
	}).Debug("Tables loaded")

	codec, err := integration.NewCodec(book, cfg.Codec, log)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, log: log, codec: codec, out: ctx.App.Writer}, nil
}

// action adapts a command body to cli, reporting failures through the logger
// so that they reach its hooks.
func action(run func(s *session, ctx *cli.Context) error) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		s, err := newSession(ctx)
		if err != nil {
			return err
		}
		if err := run(s, ctx); err != nil {
			s.log.WithError(err).WithField("command", ctx.Command.Name).Error("Command failed")
			return err
		}
		return nil
	}
}
