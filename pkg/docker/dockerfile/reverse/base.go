package reverse

import (
	log "github.com/sirupsen/logrus"
)

// FindBase returns the oldest known ancestor of the target image.
// The layers are checked from the base layer up and the target itself is never returned.
func FindBase(target Image, index LayerIndex) (string, bool) {
	self := target.Ref()
	for i, layerID := range target.Layers {
		owner, found := index.Owner(layerID)
		if !found {
			continue
		}

		if owner == self {
			continue
		}

		log.Debugf("reverse.FindBase: %s -> base image %s (layer %d: %s)", target.ID, owner, i, layerID)
		return owner, true
	}

	return "", false
}
