package dfimage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/slimtoolkit/dfimage/pkg/app"
	"github.com/slimtoolkit/dfimage/pkg/app/master/command"
	"github.com/slimtoolkit/dfimage/pkg/app/master/config"
	"github.com/slimtoolkit/dfimage/pkg/consts"
	"github.com/slimtoolkit/dfimage/pkg/docker/dockerclient"
	"github.com/slimtoolkit/dfimage/pkg/docker/dockerfile/reverse"
	"github.com/slimtoolkit/dfimage/pkg/docker/dockerutil"
	"github.com/slimtoolkit/dfimage/pkg/imagereader"
	"github.com/slimtoolkit/dfimage/pkg/util/fsutil"
	"github.com/slimtoolkit/dfimage/pkg/util/jsonutil"
	v "github.com/slimtoolkit/dfimage/pkg/version"
)

const appName = command.AppName

type ovars = app.OutVars

// OnCommand implements the Dockerfile reverse engineering command
func OnCommand(
	xc *app.ExecutionContext,
	gparams *command.GenericParams,
	opts *config.ReverseOptions) {
	logger := log.WithFields(log.Fields{"app": appName, "cmd": Name})

	xc.Out.State("started")
	xc.Out.Info("params",
		ovars{
			"target":  opts.Target,
			"archive": opts.ArchivePath,
			"output":  opts.OutputFile,
		})

	err := Execute(gparams, opts, os.Stdout)
	if err != nil {
		logger.WithError(err).Debug("reverse engineering failed")

		exitCode := command.ExitCode(err)
		errType := "dockerfile.reverse"
		if exitCode == command.ECCNoDockerConnectInfo {
			errType = "docker.connect"
			err = fmt.Errorf("missing Docker connection info (use --host or DOCKER_HOST)")
		}

		xc.Out.Error(errType, err.Error())
		xc.Out.State("exited",
			ovars{
				"exit.code": exitCode,
				"version":   v.Current(),
			})
		xc.Exit(exitCode)
		return
	}

	xc.Out.State("completed")
}

// Execute reverse engineers the target image Dockerfile and writes the result
// (to the output file if it's configured or to the 'stdout' writer otherwise)
func Execute(
	gparams *command.GenericParams,
	opts *config.ReverseOptions,
	stdout io.Writer) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	store, err := newImageStore(gparams.ClientConfig, opts.ArchivePath)
	if err != nil {
		return err
	}

	df, err := reverse.DockerfileFromImage(store, opts.Target,
		reverse.Options{InspectWorkers: opts.InspectWorkers})
	if err != nil {
		return err
	}

	return writeResult(df, opts, stdout)
}

func newImageStore(clientConfig *config.DockerClient, archivePath string) (reverse.ImageStore, error) {
	if archivePath != "" {
		store, err := imagereader.NewArchiveStore(archivePath)
		if err != nil {
			return nil, &reverse.StoreError{Op: "open archive", Err: err}
		}

		return store, nil
	}

	client, err := dockerclient.New(clientConfig)
	if err == dockerclient.ErrNoDockerInfo {
		return nil, err
	}

	if err != nil {
		return nil, &reverse.StoreError{Op: "connect", Err: err}
	}

	return dockerutil.NewImageStore(client)
}

func writeResult(df *reverse.Dockerfile, opts *config.ReverseOptions, stdout io.Writer) error {
	if opts.OutputFile == "" {
		if opts.OutputFormat == config.OutputFormatJSON {
			_, err := io.WriteString(stdout, jsonutil.ToPretty(df))
			return err
		}

		for _, line := range df.Lines {
			if _, err := fmt.Fprintln(stdout, line); err != nil {
				return err
			}
		}

		return nil
	}

	location := opts.OutputFile
	if fsutil.IsDirectory(location) {
		location = filepath.Join(location, consts.ReversedDockerfile)
	}

	if err := fsutil.CheckOutputLocation(location); err != nil {
		return err
	}

	log.Debugf("saving the reverse engineered Dockerfile to %s", location)
	if opts.OutputFormat == config.OutputFormatJSON {
		return os.WriteFile(location, []byte(jsonutil.ToPretty(df)), 0644)
	}

	return reverse.SaveDockerfileData(location, df.Lines)
}
