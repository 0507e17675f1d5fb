package config

import (
	"fmt"
	"strings"
)

// DockerClient provides Docker client parameters
type DockerClient struct {
	UseTLS      bool
	VerifyTLS   bool
	TLSCertPath string
	Host        string
	APIVersion  string
	Env         map[string]string
}

const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

const DefaultInspectWorkers = 4

// ReverseOptions provides the Dockerfile reverse engineering parameters
type ReverseOptions struct {
	//Target image reference or image ID prefix
	Target string
	//Max number of concurrent image inspect calls
	InspectWorkers int
	OutputFormat   string
	//Save the Dockerfile lines to this file instead of printing them
	OutputFile string
	//Use the images from a 'docker save' archive instead of the Docker engine
	ArchivePath string
}

// Validate checks and normalizes the options
func (ref *ReverseOptions) Validate() error {
	ref.Target = strings.TrimSpace(ref.Target)
	if ref.Target == "" {
		return fmt.Errorf("missing image name or ID")
	}

	switch ref.InspectWorkers {
	case 0:
		ref.InspectWorkers = DefaultInspectWorkers
	default:
		if ref.InspectWorkers < 0 {
			return fmt.Errorf("bad inspect worker count (%d)", ref.InspectWorkers)
		}
	}

	ref.OutputFormat = strings.ToLower(ref.OutputFormat)
	switch ref.OutputFormat {
	case "":
		ref.OutputFormat = OutputFormatText
	case OutputFormatText, OutputFormatJSON:
	default:
		return fmt.Errorf("unknown output format '%s'", ref.OutputFormat)
	}

	return nil
}
