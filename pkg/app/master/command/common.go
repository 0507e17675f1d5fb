package command

import (
	"github.com/pkg/errors"

	"github.com/slimtoolkit/dfimage/pkg/app/master/config"
	"github.com/slimtoolkit/dfimage/pkg/consts"
	"github.com/slimtoolkit/dfimage/pkg/docker/dockerclient"
	"github.com/slimtoolkit/dfimage/pkg/docker/dockerfile/reverse"
)

const (
	AppName = consts.AppName
)

type GenericParams struct {
	NoColor      bool
	Debug        bool
	Verbose      bool
	LogLevel     string
	LogFormat    string
	OutputFormat string
	Log          string
	ClientConfig *config.DockerClient
}

// Exit codes
const (
	ECCOther = iota + 1
	ECCImageNotFound
	ECCStoreUnavailable
	ECCNoDockerConnectInfo
)

// ExitCode maps the command errors to the exit codes
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var nfErr *reverse.NotFoundError
	var storeErr *reverse.StoreError
	switch {
	case errors.Is(err, dockerclient.ErrNoDockerInfo):
		return ECCNoDockerConnectInfo
	case errors.As(err, &nfErr):
		return ECCImageNotFound
	case errors.As(err, &storeErr):
		return ECCStoreUnavailable
	default:
		return ECCOther
	}
}
