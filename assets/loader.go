package assets

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/richinsley/gomandelbulb/shader"

	// Decoders registered for image.Decode.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Builtin references served without touching the filesystem or network.
const (
	BuiltinVertex     = "builtin:vertex"
	BuiltinMandelbulb = "builtin:mandelbulb"
	BuiltinBayer      = "builtin:bayer"
)

// DefaultRefs loads the embedded shaders and the generated 8x8 dither.
func DefaultRefs() Refs {
	return Refs{
		Vertex:   BuiltinVertex,
		Fragment: BuiltinMandelbulb,
		Texture:  BuiltinBayer,
	}
}

type headerTransport struct {
	Transport http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", "https://github.com/richinsley/gomandelbulb")
	return t.Transport.RoundTrip(req)
}

// Loader fetches assets from builtin refs, local paths and http(s) URLs.
// Remote assets are cached on disk when CacheDir is set.
type Loader struct {
	Client   *http.Client
	CacheDir string
}

// NewLoader returns a loader caching under the user cache directory. Caching
// is disabled when useCache is false or no cache directory can be found.
func NewLoader(useCache bool) *Loader {
	l := &Loader{
		Client: &http.Client{
			Transport: &headerTransport{Transport: http.DefaultTransport},
		},
	}
	if useCache {
		dir, err := CacheDir("media")
		if err != nil {
			logger.Warningf("asset cache disabled: %v", err)
		} else {
			l.CacheDir = dir
		}
	}
	return l
}

// CacheDir returns (and creates) ~/.cache/gomandelbulb/<subdir>, honouring
// XDG_CACHE_HOME.
func CacheDir(subdir string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := homedir.Dir()
		if err != nil {
			return "", fmt.Errorf("failed to find home directory: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, "gomandelbulb", subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create cache directory at %s: %w", dir, err)
	}
	return dir, nil
}

// FetchText returns the text behind ref.
func (l *Loader) FetchText(ctx context.Context, ref string) (string, error) {
	switch ref {
	case BuiltinVertex:
		return shader.DefaultVertex(), nil
	case BuiltinMandelbulb:
		return shader.DefaultFragment(), nil
	}
	data, err := l.fetch(ctx, ref)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FetchImage decodes the image behind ref.
func (l *Loader) FetchImage(ctx context.Context, ref string) (image.Image, error) {
	if ref == BuiltinBayer {
		return bayerTexture(8)
	}
	data, err := l.fetch(ctx, ref)
	if err != nil {
		return nil, err
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", ref, err)
	}
	logger.Debugf("decoded %s image %s", format, ref)
	return img, nil
}

func isRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

func (l *Loader) fetch(ctx context.Context, ref string) ([]byte, error) {
	if ref == "" {
		return nil, fmt.Errorf("empty asset reference")
	}
	if !isRemote(ref) {
		path, err := homedir.Expand(ref)
		if err != nil {
			return nil, err
		}
		return os.ReadFile(path)
	}

	cachePath := ""
	if l.CacheDir != "" {
		sum := sha1.Sum([]byte(ref))
		cachePath = filepath.Join(l.CacheDir, hex.EncodeToString(sum[:8])+"-"+filepath.Base(ref))
		if data, err := os.ReadFile(cachePath); err == nil {
			logger.Debugf("using cached %s", cachePath)
			return data, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", ref, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to load %s, status code: %d", ref, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ref, err)
	}

	if cachePath != "" {
		if err := os.WriteFile(cachePath, data, 0644); err != nil {
			logger.Warningf("failed to save %s to cache: %v", ref, err)
		}
	}
	return data, nil
}
