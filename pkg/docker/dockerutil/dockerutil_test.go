package dockerutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dockerapi "github.com/fsouza/go-dockerclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slimtoolkit/dfimage/pkg/docker/dockerfile/reverse"
)

type fakeEngineImage struct {
	summary dockerapi.APIImages
	layers  []string
	history []dockerapi.ImageHistory
}

func newFakeEngine(t *testing.T, images []fakeEngineImage) *httptest.Server {
	byName := map[string]*fakeEngineImage{}
	for i := range images {
		image := &images[i]
		byName[image.summary.ID] = image
		for _, tag := range image.summary.RepoTags {
			byName[tag] = image
		}
	}

	writeJSON := func(w http.ResponseWriter, data interface{}) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(data))
	}

	handler := func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		switch {
		case path == "/images/json":
			var summaries []dockerapi.APIImages
			for _, image := range images {
				summaries = append(summaries, image.summary)
			}

			writeJSON(w, summaries)
		case strings.HasPrefix(path, "/images/") && strings.HasSuffix(path, "/history"):
			name := strings.TrimSuffix(strings.TrimPrefix(path, "/images/"), "/history")
			image, found := byName[name]
			if !found {
				http.Error(w, "no such image", http.StatusNotFound)
				return
			}

			writeJSON(w, image.history)
		case strings.HasPrefix(path, "/images/") && strings.HasSuffix(path, "/json"):
			name := strings.TrimSuffix(strings.TrimPrefix(path, "/images/"), "/json")
			image, found := byName[name]
			if !found {
				http.Error(w, "no such image", http.StatusNotFound)
				return
			}

			info := dockerapi.Image{
				ID:       image.summary.ID,
				RepoTags: image.summary.RepoTags,
			}
			if image.layers != nil {
				info.RootFS = &dockerapi.RootFS{Type: "layers", Layers: image.layers}
			}

			writeJSON(w, info)
		default:
			http.Error(w, "unexpected request", http.StatusInternalServerError)
		}
	}

	server := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(server.Close)
	return server
}

func newTestImageStore(t *testing.T, images []fakeEngineImage) *ImageStore {
	server := newFakeEngine(t, images)

	client, err := dockerapi.NewClient(server.URL)
	require.NoError(t, err)
	client.SkipServerVersionCheck = true

	store, err := NewImageStore(client)
	require.NoError(t, err)
	return store
}

func testEngineImages() []fakeEngineImage {
	return []fakeEngineImage{
		{
			summary: dockerapi.APIImages{ID: "sha256:base01", RepoTags: []string{"alpine:3.19"}},
			layers:  []string{"sha256:layer1"},
			history: []dockerapi.ImageHistory{
				{ID: "sha256:base01", CreatedBy: `/bin/sh -c #(nop)  CMD ["/bin/sh"]`, Tags: []string{"alpine:3.19"}},
				{ID: "<missing>", CreatedBy: "/bin/sh -c #(nop) ADD file:8a3f in / ", Size: 7340032},
			},
		},
		{
			summary: dockerapi.APIImages{ID: "sha256:app001", RepoTags: []string{"example/app:1.0"}},
			layers:  []string{"sha256:layer1", "sha256:layer2"},
			history: []dockerapi.ImageHistory{
				{ID: "sha256:app001", CreatedBy: "/bin/sh -c #(nop)  ENTRYPOINT [\"/app\"]", Tags: []string{"example/app:1.0"}},
				{ID: "<missing>", CreatedBy: "/bin/sh -c apk add --no-cache curl && rm -rf /tmp/*", Size: 2048, Created: 1700000000},
				{ID: "sha256:base01", CreatedBy: `/bin/sh -c #(nop)  CMD ["/bin/sh"]`, Tags: []string{"alpine:3.19"}},
				{ID: "<missing>", CreatedBy: "/bin/sh -c #(nop) ADD file:8a3f in / ", Size: 7340032},
			},
		},
		{
			summary: dockerapi.APIImages{ID: "sha256:dangling", RepoTags: []string{"<none>:<none>"}},
		},
	}
}

func TestImageStoreListImages(t *testing.T) {
	store := newTestImageStore(t, testEngineImages())

	images, err := store.ListImages()
	require.NoError(t, err)
	require.Len(t, images, 3)
	assert.Equal(t, "sha256:base01", images[0].ID)
	assert.Equal(t, []string{"alpine:3.19"}, images[0].RepoTags)
	assert.Empty(t, images[2].RepoTags)
}

func TestImageStoreInspectLayers(t *testing.T) {
	store := newTestImageStore(t, testEngineImages())

	layers, err := store.InspectLayers("sha256:app001")
	require.NoError(t, err)
	assert.Equal(t, []string{"sha256:layer1", "sha256:layer2"}, layers)

	layers, err = store.InspectLayers("sha256:dangling")
	require.NoError(t, err)
	assert.Empty(t, layers)

	_, err = store.InspectLayers("sha256:unknown")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.InspectLayers("")
	assert.ErrorIs(t, err, ErrBadParam)
}

func TestImageStoreImageHistory(t *testing.T) {
	store := newTestImageStore(t, testEngineImages())

	history, err := store.ImageHistory("example/app:1.0")
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, `/bin/sh -c #(nop)  ENTRYPOINT ["/app"]`, history[0].CreatedBy)
	assert.Equal(t, []string{"example/app:1.0"}, history[0].Tags)
	assert.Equal(t, int64(2048), history[1].Size)
	assert.Equal(t, int64(1700000000), history[1].Created)

	_, err = store.ImageHistory("unknown:latest")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestImageStoreDockerfile(t *testing.T) {
	store := newTestImageStore(t, testEngineImages())

	out, err := reverse.DockerfileFromImage(store, "example/app:1.0", reverse.Options{InspectWorkers: 2})
	require.NoError(t, err)
	assert.Equal(t, "alpine:3.19", out.BaseImage)
	assert.Equal(t, []string{
		"FROM alpine:3.19",
		"RUN /bin/sh -c apk add --no-cache curl \\\n    && rm -rf /tmp/*",
		`ENTRYPOINT ["/app"]`,
	}, out.Lines)
}

func TestImageStoreUnavailable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client, err := dockerapi.NewClient(server.URL)
	require.NoError(t, err)
	client.SkipServerVersionCheck = true

	store, err := NewImageStore(client)
	require.NoError(t, err)

	_, err = reverse.DockerfileFromImage(store, "example/app:1.0", reverse.Options{})
	var se *reverse.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "list images", se.Op)
}

func TestNewImageStoreNoClient(t *testing.T) {
	_, err := NewImageStore(nil)
	assert.ErrorIs(t, err, ErrBadParam)
}
