package imagereader

import (
	"archive/tar"
	"bytes"
	"io"
	"os"
	"slices"
	"sort"

	"github.com/google/go-containerregistry/pkg/v1"
	"github.com/google/go-containerregistry/pkg/v1/tarball"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/slimtoolkit/dfimage/pkg/docker/dockerfile/reverse"
	"github.com/slimtoolkit/dfimage/pkg/util/errutil"
	"github.com/slimtoolkit/dfimage/pkg/util/fsutil"
)

var (
	ErrBadArchive    = errors.New("bad image archive")
	ErrImageNotFound = errors.New("image not found in archive")
)

const missingHistoryID = "<missing>"

type archiveImage struct {
	info   reverse.Image
	config *v1.ConfigFile
	layers []int64
}

// ArchiveStore is a read-only image store backed by a 'docker save' tarball
type ArchiveStore struct {
	path   string
	images []*archiveImage
}

func fileOpener(path string) tarball.Opener {
	return func() (io.ReadCloser, error) {
		return os.Open(path)
	}
}

// NewArchiveStore loads the image metadata (manifest, configs and layer sizes) from the archive
func NewArchiveStore(path string) (*ArchiveStore, error) {
	logger := log.WithFields(log.Fields{
		"op":   "imagereader.NewArchiveStore",
		"path": path,
	})

	logger.Trace("call")
	defer logger.Trace("exit")

	if !fsutil.IsRegularFile(path) {
		return nil, errors.Wrapf(ErrBadArchive, "not a file - %s", path)
	}

	opener := fileOpener(path)
	manifest, err := tarball.LoadManifest(opener)
	if err != nil {
		logger.WithError(err).Debug("tarball.LoadManifest")
		return nil, errors.Wrap(ErrBadArchive, err.Error())
	}

	wanted := map[string]struct{}{}
	for _, desc := range manifest {
		wanted[desc.Config] = struct{}{}
	}

	configs, sizes, err := scanArchive(opener, wanted)
	if err != nil {
		return nil, errors.Wrap(err, "imagereader.NewArchiveStore")
	}

	store := &ArchiveStore{path: path}
	for _, desc := range manifest {
		raw, found := configs[desc.Config]
		if !found {
			return nil, errors.Wrapf(ErrBadArchive, "missing image config - %s", desc.Config)
		}

		image, err := newArchiveImage(desc, raw, sizes)
		if err != nil {
			return nil, err
		}

		logger.Debugf("image: %s %v (layers=%d)", image.info.ID, image.info.RepoTags, len(image.info.Layers))
		store.images = append(store.images, image)
	}

	//NOTE: same order as the engine image listing (newest first)
	sort.SliceStable(store.images, func(i, j int) bool {
		return store.images[i].info.Created > store.images[j].info.Created
	})

	return store, nil
}

func scanArchive(opener tarball.Opener, wanted map[string]struct{}) (map[string][]byte, map[string]int64, error) {
	rc, err := opener()
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		errutil.WarnOn(rc.Close())
	}()

	configs := map[string][]byte{}
	sizes := map[string]int64{}
	tr := tar.NewReader(rc)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, nil, errors.Wrap(ErrBadArchive, err.Error())
		}

		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		sizes[hdr.Name] = hdr.Size
		if _, found := wanted[hdr.Name]; !found {
			continue
		}

		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, nil, err
		}

		configs[hdr.Name] = data
	}

	return configs, sizes, nil
}

func newArchiveImage(desc tarball.Descriptor, raw []byte, sizes map[string]int64) (*archiveImage, error) {
	config, err := v1.ParseConfigFile(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrapf(ErrBadArchive, "bad image config (%s) - %v", desc.Config, err)
	}

	id, _, err := v1.SHA256(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	image := &archiveImage{
		info: reverse.Image{
			ID:       id.String(),
			RepoTags: slices.Clone(desc.RepoTags),
			Created:  config.Created.Unix(),
		},
		config: config,
	}

	for _, diffID := range config.RootFS.DiffIDs {
		image.info.Layers = append(image.info.Layers, diffID.String())
	}

	for _, layerPath := range desc.Layers {
		size := sizes[layerPath]
		image.layers = append(image.layers, size)
		image.info.Size += size
	}

	return image, nil
}

func (ref *ArchiveStore) find(imageRef string) *archiveImage {
	for _, image := range ref.images {
		if image.info.ID == imageRef ||
			reverse.CleanImageID(image.info.ID) == reverse.CleanImageID(imageRef) ||
			slices.Contains(image.info.RepoTags, imageRef) {
			return image
		}
	}

	return nil
}

// ListImages returns the archive images (without the layer info)
func (ref *ArchiveStore) ListImages() ([]reverse.Image, error) {
	images := make([]reverse.Image, 0, len(ref.images))
	for _, image := range ref.images {
		info := image.info
		info.Layers = nil
		images = append(images, info)
	}

	return images, nil
}

// InspectLayers returns the image layer diff IDs (base to top)
func (ref *ArchiveStore) InspectLayers(imageID string) ([]string, error) {
	image := ref.find(imageID)
	if image == nil {
		return nil, errors.Wrapf(ErrImageNotFound, "%s (%s)", imageID, ref.path)
	}

	return slices.Clone(image.info.Layers), nil
}

// ImageHistory returns the build history from the image config (newest first)
func (ref *ArchiveStore) ImageHistory(imageRef string) ([]reverse.HistoryEntry, error) {
	image := ref.find(imageRef)
	if image == nil {
		return nil, errors.Wrapf(ErrImageNotFound, "%s (%s)", imageRef, ref.path)
	}

	history := make([]reverse.HistoryEntry, 0, len(image.config.History))
	layerIdx := 0
	for _, record := range image.config.History {
		entry := reverse.HistoryEntry{
			ID:        missingHistoryID,
			Created:   record.Created.Unix(),
			CreatedBy: record.CreatedBy,
			Comment:   record.Comment,
		}

		if !record.EmptyLayer {
			if layerIdx < len(image.layers) {
				entry.Size = image.layers[layerIdx]
			}
			layerIdx++
		}

		if entry.Created < 0 {
			entry.Created = 0
		}

		history = append(history, entry)
	}

	slices.Reverse(history)
	if len(history) > 0 {
		history[0].ID = image.info.ID
		history[0].Tags = slices.Clone(image.info.RepoTags)
	}

	return history, nil
}
