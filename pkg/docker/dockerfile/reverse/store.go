package reverse

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyQuery = errors.New("empty image reference")
)

// Image is the store's view of a local container image
type Image struct {
	ID       string   `json:"id"`
	RepoTags []string `json:"repo_tags,omitempty"`
	//RootFS layers (base to top); empty when the image wasn't inspected
	Layers  []string `json:"layers,omitempty"`
	Created int64    `json:"created,omitempty"`
	Size    int64    `json:"size,omitempty"`
}

// Ref returns the first repo tag of the image or an empty string for untagged images
func (ref *Image) Ref() string {
	if len(ref.RepoTags) == 0 {
		return ""
	}

	return ref.RepoTags[0]
}

// HistoryRef returns the reference used to query the image history
func (ref *Image) HistoryRef() string {
	if r := ref.Ref(); r != "" {
		return r
	}

	return ref.ID
}

// HistoryEntry is one build step from the image history (newest first)
type HistoryEntry struct {
	ID        string   `json:"id,omitempty"`
	Created   int64    `json:"created,omitempty"`
	CreatedBy string   `json:"created_by"`
	Tags      []string `json:"tags,omitempty"`
	Size      int64    `json:"size,omitempty"`
	Comment   string   `json:"comment,omitempty"`
}

// ImageStore provides read-only access to the local images
type ImageStore interface {
	ListImages() ([]Image, error)
	//InspectLayers returns the RootFS layer IDs (base to top)
	InspectLayers(imageID string) ([]string, error)
	//ImageHistory returns the image history (newest first)
	ImageHistory(imageRef string) ([]HistoryEntry, error)
}

// HistoryFunc looks up the history for an image reference
type HistoryFunc func(imageRef string) ([]HistoryEntry, error)

// NotFoundError is returned when the image reference doesn't match any local image
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("image '%s' not found - %s", e.Query, e.Hint())
}

// Hint returns the remediation info for the missing image
func (e *NotFoundError) Hint() string {
	return fmt.Sprintf("make sure you run 'docker pull %s' beforehand", e.Query)
}

// StoreError wraps the image store (transport/connection) failures
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("image store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeError(op string, err error) error {
	if err == nil {
		return nil
	}

	var se *StoreError
	if errors.As(err, &se) {
		return err
	}

	return &StoreError{Op: op, Err: err}
}

// CleanImageID removes the digest algorithm prefix from an image ID
func CleanImageID(id string) string {
	if idx := strings.Index(id, ":"); idx != -1 {
		return id[idx+1:]
	}

	return id
}
