package dockerutil

import (
	dockerapi "github.com/fsouza/go-dockerclient"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/slimtoolkit/dfimage/pkg/docker/dockerfile/reverse"
)

var (
	ErrBadParam = errors.New("bad parameter")
	ErrNotFound = errors.New("not found")
)

const noneRepoTag = "<none>:<none>"

// ImageStore provides the local Docker engine images
type ImageStore struct {
	client *dockerapi.Client
}

// NewImageStore creates a new image store using the Docker API client
func NewImageStore(client *dockerapi.Client) (*ImageStore, error) {
	if client == nil {
		return nil, ErrBadParam
	}

	return &ImageStore{client: client}, nil
}

// ListImages returns the top level local images
func (ref *ImageStore) ListImages() ([]reverse.Image, error) {
	logger := log.WithField("op", "dockerutil.ImageStore.ListImages")
	logger.Trace("call")
	defer logger.Trace("exit")

	imageList, err := ref.client.ListImages(dockerapi.ListImagesOptions{All: false})
	if err != nil {
		logger.WithError(err).Error("dockerapi.ListImages")
		return nil, errors.Wrap(err, "dockerapi.ListImages")
	}

	images := make([]reverse.Image, 0, len(imageList))
	for _, info := range imageList {
		image := reverse.Image{
			ID:      info.ID,
			Created: info.Created,
			Size:    info.Size,
		}

		for _, tag := range info.RepoTags {
			if tag == noneRepoTag {
				continue
			}

			image.RepoTags = append(image.RepoTags, tag)
		}

		images = append(images, image)
	}

	logger.Debugf("found %d images", len(images))
	return images, nil
}

// InspectLayers returns the RootFS layers for the image
func (ref *ImageStore) InspectLayers(imageID string) ([]string, error) {
	if imageID == "" {
		return nil, ErrBadParam
	}

	info, err := ref.client.InspectImage(imageID)
	if err != nil {
		if err == dockerapi.ErrNoSuchImage {
			return nil, ErrNotFound
		}

		return nil, errors.Wrapf(err, "dockerapi.InspectImage(%s)", imageID)
	}

	if info.RootFS == nil {
		return nil, nil
	}

	return info.RootFS.Layers, nil
}

// ImageHistory returns the image history records (newest first)
func (ref *ImageStore) ImageHistory(imageRef string) ([]reverse.HistoryEntry, error) {
	if imageRef == "" {
		return nil, ErrBadParam
	}

	records, err := ref.client.ImageHistory(imageRef)
	if err != nil {
		if err == dockerapi.ErrNoSuchImage {
			return nil, errors.Wrapf(ErrNotFound, "image history (%s)", imageRef)
		}

		return nil, errors.Wrapf(err, "dockerapi.ImageHistory(%s)", imageRef)
	}

	history := make([]reverse.HistoryEntry, 0, len(records))
	for _, record := range records {
		history = append(history, reverse.HistoryEntry{
			ID:        record.ID,
			Created:   record.Created,
			CreatedBy: record.CreatedBy,
			Tags:      record.Tags,
			Size:      record.Size,
			Comment:   record.Comment,
		})
	}

	return history, nil
}
