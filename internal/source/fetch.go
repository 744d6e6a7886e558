package source

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
)

// MaxDownload caps the size of a remote source.
const MaxDownload = 64 << 20

// IsRemote reports whether ref is an http or https URL.
func IsRemote(ref string) bool {
	u, err := url.Parse(ref)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Open loads ref, which is either a local path or an http(s) URL. A
// remote source is downloaded to a temporary file first; the returned
// cleanup removes it and is never nil.
func Open(ctx context.Context, client *http.Client, ref string, backing color.Color) (*Image, func(), error) {
	if !IsRemote(ref) {
		img, err := Load(ref, backing)
		return img, func() {}, err
	}
	tmp, err := Fetch(ctx, client, ref)
	if err != nil {
		return nil, func() {}, err
	}
	cleanup := func() { os.Remove(tmp) }
	img, err := Load(tmp, backing)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return img, cleanup, nil
}

// Fetch downloads rawURL into a temporary file and returns its path.
func Fetch(ctx context.Context, client *http.Client, rawURL string) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrUnreadable, rawURL, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrUnreadable, rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s: bad status: %s", ErrUnreadable, rawURL, resp.Status)
	}

	out, err := os.CreateTemp("", "iconforge-*"+remoteExt(req.URL))
	if err != nil {
		return "", err
	}
	n, err := io.Copy(out, io.LimitReader(resp.Body, MaxDownload+1))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > MaxDownload {
		err = fmt.Errorf("larger than %d bytes", MaxDownload)
	}
	if err != nil {
		os.Remove(out.Name())
		return "", fmt.Errorf("%w: %s: %w", ErrUnreadable, rawURL, err)
	}
	return out.Name(), nil
}

func remoteExt(u *url.URL) string {
	ext := strings.ToLower(path.Ext(u.Path))
	if len(ext) > 6 || strings.ContainsAny(ext, `/\*`) {
		return ""
	}
	return ext
}
