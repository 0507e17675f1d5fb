package dfimage

import (
	"github.com/urfave/cli/v2"

	"github.com/slimtoolkit/dfimage/pkg/app"
	"github.com/slimtoolkit/dfimage/pkg/app/master/command"
)

const (
	Name      = "dfimage"
	Usage     = "Reverse engineer the Dockerfile of a local container image"
	ArgsUsage = "<image_name|image_id>"
)

// Action runs the command for the only positional argument (image name or ID)
func Action(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		cli.ShowAppHelp(ctx)
		return cli.Exit("expected exactly one image name or image ID", command.ECCOther)
	}

	gcvalues := command.GlobalFlagValues(ctx)
	xc := app.NewExecutionContext(Name, !gcvalues.Verbose && !gcvalues.Debug)

	OnCommand(
		xc,
		gcvalues,
		command.ReverseFlagValues(ctx))

	return nil
}
