package command

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/slimtoolkit/dfimage/pkg/app/master/config"
	"github.com/slimtoolkit/dfimage/pkg/docker/dockerclient"
)

func GlobalFlagValues(ctx *cli.Context) *GenericParams {
	values := GenericParams{
		NoColor:      ctx.Bool(FlagNoColor),
		Debug:        ctx.Bool(FlagDebug),
		Verbose:      ctx.Bool(FlagVerbose),
		LogLevel:     ctx.String(FlagLogLevel),
		LogFormat:    ctx.String(FlagLogFormat),
		OutputFormat: ctx.String(FlagOutputFormat),
		Log:          ctx.String(FlagLog),
	}

	values.ClientConfig = GetDockerClientConfig(ctx)

	return &values
}

func GetDockerClientConfig(ctx *cli.Context) *config.DockerClient {
	config := &config.DockerClient{
		APIVersion:  ctx.String(FlagAPIVersion),
		UseTLS:      ctx.Bool(FlagUseTLS),
		VerifyTLS:   ctx.Bool(FlagVerifyTLS),
		TLSCertPath: ctx.String(FlagTLSCertPath),
		Host:        ctx.String(FlagHost),
		Env:         map[string]string{},
	}

	getEnv := func(name string) {
		if value, exists := os.LookupEnv(name); exists {
			config.Env[name] = value
		}
	}

	for _, ev := range dockerclient.EnvVarNames {
		getEnv(ev)
	}

	return config
}

// ReverseFlagValues returns the reverse engineering options (the target is the only positional arg)
func ReverseFlagValues(ctx *cli.Context) *config.ReverseOptions {
	return &config.ReverseOptions{
		Target:         ctx.Args().First(),
		InspectWorkers: ctx.Int(FlagInspectWorkers),
		OutputFormat:   ctx.String(FlagOutputFormat),
		OutputFile:     ctx.String(FlagOutput),
		ArchivePath:    ctx.String(FlagArchive),
	}
}
