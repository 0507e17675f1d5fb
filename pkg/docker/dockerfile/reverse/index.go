package reverse

import (
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const DefaultInspectWorkers = 4

// LayerIndex maps the top layer of the known images to their first repo tag
type LayerIndex map[string]string

// Owner returns the image reference that owns the given (top) layer
func (idx LayerIndex) Owner(layerID string) (string, bool) {
	ref, found := idx[layerID]
	return ref, found
}

// NewLayerIndex records the last layer of each image that has both layers and a repo tag.
// When two images report the same last layer the later one wins.
func NewLayerIndex(images []Image) LayerIndex {
	idx := LayerIndex{}
	for _, image := range images {
		if len(image.Layers) == 0 {
			log.Debugf("reverse.NewLayerIndex: skipping image with no layer info - %s", image.ID)
			continue
		}

		ref := image.Ref()
		if ref == "" {
			log.Debugf("reverse.NewLayerIndex: skipping untagged image - %s", image.ID)
			continue
		}

		idx[image.Layers[len(image.Layers)-1]] = ref
	}

	return idx
}

// InspectImages returns a copy of the image list with the layer info populated.
// Images that can't be inspected keep an empty layer list.
func InspectImages(store ImageStore, images []Image, workers int) []Image {
	logger := log.WithFields(log.Fields{
		"op":      "reverse.InspectImages",
		"images":  len(images),
		"workers": workers,
	})

	if workers < 1 {
		workers = 1
	}

	inspected := make([]Image, len(images))
	copy(inspected, images)

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range inspected {
		image := &inspected[i]
		g.Go(func() error {
			layers, err := store.InspectLayers(image.ID)
			if err != nil {
				logger.WithError(err).Debugf("no layer info for %s", image.ID)
				image.Layers = nil
				return nil
			}

			image.Layers = layers
			return nil
		})
	}

	_ = g.Wait()
	return inspected
}

// BuildLayerIndex inspects the images and creates the layer ownership index
func BuildLayerIndex(store ImageStore, images []Image, workers int) (LayerIndex, []Image) {
	inspected := InspectImages(store, images, workers)
	return NewLayerIndex(inspected), inspected
}
