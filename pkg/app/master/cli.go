package app

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/slimtoolkit/dfimage/pkg/app"
	"github.com/slimtoolkit/dfimage/pkg/app/master/command"
	"github.com/slimtoolkit/dfimage/pkg/app/master/command/dfimage"
	"github.com/slimtoolkit/dfimage/pkg/consts"
	v "github.com/slimtoolkit/dfimage/pkg/version"
)

// DFImage app CLI constants
const (
	AppName  = consts.AppName
	AppUsage = "reverse engineer the Dockerfile of your container images!"
)

var logLevels = map[string]log.Level{
	"trace": log.TraceLevel,
	"debug": log.DebugLevel,
	"info":  log.InfoLevel,
	"warn":  log.WarnLevel,
	"error": log.ErrorLevel,
	"fatal": log.FatalLevel,
	"panic": log.PanicLevel,
}

func newCLI() *cli.App {
	cliApp := cli.NewApp()
	cliApp.Version = v.Current()
	cliApp.Name = AppName
	cliApp.Usage = AppUsage
	cliApp.ArgsUsage = dfimage.ArgsUsage
	cliApp.HideHelpCommand = true

	cliApp.Flags = append(command.GlobalFlags(), command.ReverseFlags()...)
	cliApp.Before = configureLogging
	cliApp.Action = dfimage.Action

	return cliApp
}

func configureLogging(ctx *cli.Context) error {
	if ctx.Bool(command.FlagNoColor) {
		app.NoColor()
	}

	if ctx.Bool(command.FlagDebug) {
		log.SetLevel(log.DebugLevel)
	} else {
		if ctx.Bool(command.FlagVerbose) {
			log.SetLevel(log.InfoLevel)
		} else {
			logLevelName := ctx.String(command.FlagLogLevel)
			logLevel, found := logLevels[logLevelName]
			if !found {
				return fmt.Errorf("unknown log-level %q", logLevelName)
			}

			log.SetLevel(logLevel)
		}
	}

	//NOTE: stdout is reserved for the reverse engineered Dockerfile
	log.SetOutput(os.Stderr)
	if path := ctx.String(command.FlagLog); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		log.SetOutput(f)
	}

	logFormat := ctx.String(command.FlagLogFormat)
	switch logFormat {
	case "text":
		log.SetFormatter(&log.TextFormatter{DisableColors: true})
	case "json":
		log.SetFormatter(new(log.JSONFormatter))
	default:
		return fmt.Errorf("unknown log-format %q", logFormat)
	}

	return nil
}
