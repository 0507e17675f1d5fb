package command

import (
	"github.com/urfave/cli/v2"

	"github.com/slimtoolkit/dfimage/pkg/app/master/config"
)

/////////////////////////////////////////////////////////
//Flags
/////////////////////////////////////////////////////////

// Global flag names
const (
	FlagDebug        = "debug"
	FlagVerbose      = "verbose"
	FlagLogLevel     = "log-level"
	FlagLog          = "log"
	FlagLogFormat    = "log-format"
	FlagAPIVersion   = "crt-api-version"
	FlagUseTLS       = "tls"
	FlagVerifyTLS    = "tls-verify"
	FlagTLSCertPath  = "tls-cert-path"
	FlagHost         = "host"
	FlagNoColor      = "no-color"
	FlagOutputFormat = "output-format"
)

// Global flag usage info
const (
	FlagDebugUsage        = "enable debug logs"
	FlagVerboseUsage      = "enable info logs"
	FlagLogLevelUsage     = "set the logging level ('trace', 'debug', 'info', 'warn' (default), 'error', 'fatal', 'panic')"
	FlagLogUsage          = "log file to store logs"
	FlagLogFormatUsage    = "set the format used by logs ('text' (default), or 'json')"
	FlagOutputFormatUsage = "set the output format to use ('text' (default), or 'json')"
	FlagUseTLSUsage       = "use TLS"
	FlagVerifyTLSUsage    = "verify TLS"
	FlagTLSCertPathUsage  = "path to TLS cert files"
	FlagAPIVersionUsage   = "Container runtime API version"
	FlagHostUsage         = "Docker host address or socket (prefix with 'tcp://' or 'unix://')"
	FlagNoColorUsage      = "disable color output"
)

// Reverse engineering flag names
const (
	FlagOutput         = "output"
	FlagArchive        = "archive"
	FlagInspectWorkers = "inspect-workers"
)

// Reverse engineering flag usage info
const (
	FlagOutputUsage         = "save the reverse engineered Dockerfile to a file (or a directory) instead of printing it"
	FlagArchiveUsage        = "use the images from a 'docker save' archive instead of the Docker engine"
	FlagInspectWorkersUsage = "max number of concurrent image inspect calls when looking for the base image"
)

func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    FlagDebug,
			Usage:   FlagDebugUsage,
			EnvVars: []string{"DFIMAGE_DEBUG"},
		},
		&cli.BoolFlag{
			Name:    FlagVerbose,
			Usage:   FlagVerboseUsage,
			EnvVars: []string{"DFIMAGE_VERBOSE"},
		},
		&cli.StringFlag{
			Name:    FlagLogLevel,
			Value:   "warn",
			Usage:   FlagLogLevelUsage,
			EnvVars: []string{"DFIMAGE_LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:  FlagLog,
			Usage: FlagLogUsage,
		},
		&cli.StringFlag{
			Name:  FlagLogFormat,
			Value: "text",
			Usage: FlagLogFormatUsage,
		},
		&cli.StringFlag{
			Name:  FlagOutputFormat,
			Value: config.OutputFormatText,
			Usage: FlagOutputFormatUsage,
		},
		&cli.BoolFlag{
			Name:  FlagUseTLS,
			Value: true,
			Usage: FlagUseTLSUsage,
		},
		&cli.BoolFlag{
			Name:  FlagVerifyTLS,
			Value: true,
			Usage: FlagVerifyTLSUsage,
		},
		&cli.StringFlag{
			Name:  FlagTLSCertPath,
			Value: "",
			Usage: FlagTLSCertPathUsage,
		},
		&cli.StringFlag{
			Name:    FlagAPIVersion,
			Value:   "",
			Usage:   FlagAPIVersionUsage,
			EnvVars: []string{"DFIMAGE_CRT_API_VER"},
		},
		&cli.StringFlag{
			Name:  FlagHost,
			Value: "",
			Usage: FlagHostUsage,
		},
		&cli.BoolFlag{
			Name:    FlagNoColor,
			Usage:   FlagNoColorUsage,
			EnvVars: []string{"DFIMAGE_NO_COLOR"},
		},
	}
}

func ReverseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    FlagOutput,
			Aliases: []string{"o"},
			Usage:   FlagOutputUsage,
		},
		&cli.StringFlag{
			Name:    FlagArchive,
			Usage:   FlagArchiveUsage,
			EnvVars: []string{"DFIMAGE_ARCHIVE"},
		},
		&cli.IntFlag{
			Name:  FlagInspectWorkers,
			Value: config.DefaultInspectWorkers,
			Usage: FlagInspectWorkersUsage,
		},
	}
}
