package reverse

import (
	"slices"
	"strings"
)

const defaultTag = "latest"

// NormalizeRef adds the default tag to image references without one
func NormalizeRef(ref string) string {
	if ref == "" || strings.Contains(ref, "@") {
		return ref
	}

	//the registry host can have a port, so only a colon after the last slash is a tag separator
	if strings.LastIndex(ref, ":") > strings.LastIndex(ref, "/") {
		return ref
	}

	return ref + ":" + defaultTag
}

// ResolveImage finds the image matching the query (image ID prefix or repo tag).
// The candidates are checked in the listing order and the first match wins.
func ResolveImage(query string, images []Image) (Image, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Image{}, ErrEmptyQuery
	}

	repoTag := NormalizeRef(query)
	idPrefix := strings.ToLower(query)

	for _, image := range images {
		if strings.HasPrefix(strings.ToLower(CleanImageID(image.ID)), idPrefix) {
			return image, nil
		}

		if slices.Contains(image.RepoTags, repoTag) {
			return image, nil
		}
	}

	return Image{}, &NotFoundError{Query: repoTag}
}
