package reverse

import (
	"bytes"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Dockerfile represents the reverse engineered Dockerfile info
type Dockerfile struct {
	Image        string             `json:"image"`
	ImageID      string             `json:"image_id"`
	BaseImage    string             `json:"base_image,omitempty"`
	Lines        []string           `json:"lines"`
	Instructions []*InstructionInfo `json:"instructions"`
}

// Options configure the Dockerfile reconstruction
type Options struct {
	//max number of concurrent layer inspect calls when indexing the local images
	InspectWorkers int
}

// DockerfileFromImage recreates the Dockerfile for the image matching the query
// (image ID prefix or repo tag) using the other local images to find its base image
func DockerfileFromImage(store ImageStore, query string, opts Options) (*Dockerfile, error) {
	logger := log.WithFields(log.Fields{
		"op":    "reverse.DockerfileFromImage",
		"query": query,
	})

	logger.Trace("call")
	defer logger.Trace("exit")

	images, err := store.ListImages()
	if err != nil {
		return nil, storeError("list images", err)
	}

	target, err := ResolveImage(query, images)
	if err != nil {
		return nil, err
	}

	logger.Debugf("target image: %s %v", target.ID, target.RepoTags)

	workers := opts.InspectWorkers
	if workers == 0 {
		workers = DefaultInspectWorkers
	}

	index, inspected := BuildLayerIndex(store, images, workers)
	logger.Debugf("layer index: %d images / %d top layers", len(images), len(index))

	for _, image := range inspected {
		if image.ID == target.ID {
			target.Layers = image.Layers
			break
		}
	}

	base, found := FindBase(target, index)
	if !found {
		logger.Debug("no local base image")
	}

	targetHistory, err := store.ImageHistory(target.HistoryRef())
	if err != nil {
		return nil, storeError("image history", err)
	}

	instructions := ReconstructInstructions(targetHistory, base, store.ImageHistory)

	out := &Dockerfile{
		Image:        target.HistoryRef(),
		ImageID:      target.ID,
		BaseImage:    base,
		Lines:        lines(instructions),
		Instructions: instructions,
	}

	log.Debugf("IMAGE INSTRUCTIONS:")
	for _, line := range out.Lines {
		log.Debug(line)
	}

	return out, nil
}

// SaveDockerfileData saves the Dockerfile information to a file
func SaveDockerfileData(location string, lines []string) error {
	var data bytes.Buffer
	data.WriteString(strings.Join(lines, "\n"))
	data.WriteString("\n")
	return os.WriteFile(location, data.Bytes(), 0644)
}
