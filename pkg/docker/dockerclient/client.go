package dockerclient

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	docker "github.com/fsouza/go-dockerclient"
	log "github.com/sirupsen/logrus"

	"github.com/slimtoolkit/dfimage/pkg/app/master/config"
	"github.com/slimtoolkit/dfimage/pkg/util/fsutil"
	"github.com/slimtoolkit/dfimage/pkg/util/jsonutil"
)

const (
	EnvDockerAPIVer      = "DOCKER_API_VERSION"
	EnvDockerHost        = "DOCKER_HOST"
	EnvDockerTLSVerify   = "DOCKER_TLS_VERIFY"
	EnvDockerCertPath    = "DOCKER_CERT_PATH"
	UnixSocketPath       = "/var/run/docker.sock"
	UnixSocketAddr       = "unix:///var/run/docker.sock"
	unixUserSocketSuffix = ".docker/run/docker.sock"
)

var EnvVarNames = []string{
	EnvDockerHost,
	EnvDockerTLSVerify,
	EnvDockerCertPath,
	EnvDockerAPIVer,
}

var (
	ErrNoDockerInfo = errors.New("no docker info")
)

// EnvVars returns the Docker connection env vars that are set
func EnvVars() map[string]string {
	vars := map[string]string{}
	for _, name := range EnvVarNames {
		if value := os.Getenv(name); value != "" {
			vars[name] = value
		}
	}

	return vars
}

func UserDockerSocket() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, unixUserSocketSuffix)
}

type SocketInfo struct {
	Address       string `json:"address"`
	FilePath      string `json:"file_path"`
	FileType      string `json:"type"`
	FilePerms     string `json:"perms"`
	SymlinkTarget string `json:"symlink_target,omitempty"`
	CanRead       bool   `json:"can_read"`
	CanWrite      bool   `json:"can_write"`
}

func getSocketInfo(filePath string) (*SocketInfo, error) {
	info := &SocketInfo{
		FileType: "file",
		FilePath: filePath,
	}

	fi, err := os.Lstat(info.FilePath)
	if err != nil {
		log.Errorf("dockerclient.getSocketInfo.os.Lstat(%s): error - %v", filePath, err)
		return nil, err
	}

	info.FilePerms = fmt.Sprintf("%#o", fi.Mode().Perm())
	if fi.Mode()&os.ModeSymlink != 0 {
		info.FileType = "symlink"
		info.SymlinkTarget, err = os.Readlink(info.FilePath)
		if err != nil {
			log.Errorf("dockerclient.getSocketInfo.os.Readlink(%s): error - %v", filePath, err)
			return nil, err
		}
	}

	info.CanRead, err = fsutil.HasReadAccess(info.FilePath)
	if err != nil {
		return nil, err
	}

	info.CanWrite, err = fsutil.HasWriteAccess(info.FilePath)
	if err != nil {
		return nil, err
	}

	return info, nil
}

// GetUnixSocketAddr looks for the system and the user Docker sockets
func GetUnixSocketAddr() (*SocketInfo, error) {
	for _, socketPath := range []string{UnixSocketPath, UserDockerSocket()} {
		if _, err := os.Stat(socketPath); err != nil {
			continue
		}

		socketInfo, err := getSocketInfo(socketPath)
		if err != nil {
			return nil, err
		}

		socketInfo.Address = fmt.Sprintf("unix://%s", socketPath)
		log.Debugf("dockerclient.GetUnixSocketAddr(): found => %s", jsonutil.ToString(socketInfo))
		return socketInfo, nil
	}

	return nil, fmt.Errorf("docker socket not found")
}

func newTLSClient(host string, certPath string, verify bool, apiVersion string) (*docker.Client, error) {
	var ca []byte

	cert, err := os.ReadFile(filepath.Join(certPath, "cert.pem"))
	if err != nil {
		return nil, err
	}

	key, err := os.ReadFile(filepath.Join(certPath, "key.pem"))
	if err != nil {
		return nil, err
	}

	if verify {
		ca, err = os.ReadFile(filepath.Join(certPath, "ca.pem"))
		if err != nil {
			return nil, err
		}
	}

	return docker.NewVersionedTLSClientFromBytes(host, cert, key, ca, apiVersion)
}

func newClient(host string, apiVersion string) (*docker.Client, error) {
	client, err := docker.NewVersionedClient(host, apiVersion)
	if err != nil {
		return nil, err
	}

	if apiVersion == "" {
		client.SkipServerVersionCheck = true
	}

	return client, nil
}

// New creates a new Docker client instance
func New(config *config.DockerClient) (*docker.Client, error) {
	if config == nil {
		return nil, ErrNoDockerInfo
	}

	if config.Env == nil {
		config.Env = EnvVars()
	}

	if config.APIVersion == "" {
		config.APIVersion = config.Env[EnvDockerAPIVer]
	}

	var client *docker.Client
	var err error

	switch {
	case config.Host != "" && config.UseTLS && config.TLSCertPath != "":
		client, err = newTLSClient(config.Host, config.TLSCertPath, config.VerifyTLS, config.APIVersion)
		log.Debugf("dockerclient.New: new Docker client (TLS,verify=%v) [1]", config.VerifyTLS)

	case config.Host != "" && config.UseTLS:
		return nil, fmt.Errorf("missing TLS cert path for %s", config.Host)

	case config.Host != "" && !config.UseTLS:
		client, err = newClient(config.Host, config.APIVersion)
		log.Debug("dockerclient.New: new Docker client [2]")

	case config.Host == "" &&
		config.Env[EnvDockerTLSVerify] == "1" &&
		config.Env[EnvDockerCertPath] != "" &&
		config.Env[EnvDockerHost] != "":
		client, err = newTLSClient(config.Env[EnvDockerHost], config.Env[EnvDockerCertPath], config.VerifyTLS, config.APIVersion)
		log.Debug("dockerclient.New: new Docker client (env,TLS) [3]")

	case config.Host == "" && config.Env[EnvDockerHost] != "":
		client, err = newClient(config.Env[EnvDockerHost], config.APIVersion)
		log.Debug("dockerclient.New: new Docker client (env) [4]")

	case config.Host == "":
		socketInfo, serr := GetUnixSocketAddr()
		if serr != nil {
			log.Debugf("dockerclient.New: no docker socket - %v", serr)
			return nil, ErrNoDockerInfo
		}

		if !socketInfo.CanRead || !socketInfo.CanWrite {
			return nil, fmt.Errorf("insufficient socket permissions (can_read=%v can_write=%v)", socketInfo.CanRead, socketInfo.CanWrite)
		}

		config.Host = socketInfo.Address
		client, err = newClient(config.Host, config.APIVersion)
		log.Debug("dockerclient.New: new Docker client (default) [5]")

	default:
		return nil, ErrNoDockerInfo
	}

	if err != nil {
		return nil, err
	}

	return client, nil
}
