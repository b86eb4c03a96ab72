// Package storage implements the media store behind the admin upload flow:
// a bucket directory on disk with one folder per purpose, uuid filenames and
// stable public URLs.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	// Register the WebP decoder so uploads can be validated and measured.
	_ "golang.org/x/image/webp"
)

// MaxUploadSize caps uploads at 5 MiB.
const MaxUploadSize = 5 << 20

var (
	ErrBucketMissing  = errors.New("storage bucket missing")
	ErrFileType       = errors.New("only JPEG, PNG, WebP and GIF images are allowed")
	ErrFileTooLarge   = errors.New("file size exceeds the 5 MiB limit")
	ErrNotAnImage     = errors.New("file content is not a decodable image")
	ErrObjectNotFound = errors.New("stored object not found")
)

var extByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Availability is the result kind of a capability probe.
type Availability int

const (
	Available Availability = iota
	Unavailable
)

// Capability reports whether the bucket can take uploads. Callers switch on
// State and, when Unavailable, show Reason and fall back to external URLs.
type Capability struct {
	State  Availability
	Reason string
}

// MediaStore stores uploaded media under root/bucket/{folder}/{file} and
// issues URLs under publicPrefix. Images wider than maxWidth are downscaled
// before storing; zero disables that.
type MediaStore struct {
	root         string
	bucket       string
	publicPrefix string
	urlPath      string
	maxWidth     int
}

// NewMediaStore creates a store. baseURL and urlPath combine into the public
// prefix, e.g. https://studio.example + /media.
func NewMediaStore(root, bucket, baseURL, urlPath string, maxWidth int) *MediaStore {
	urlPath = "/" + strings.Trim(urlPath, "/")
	return &MediaStore{
		root:         root,
		bucket:       bucket,
		publicPrefix: strings.TrimRight(baseURL, "/") + urlPath,
		urlPath:      urlPath,
		maxWidth:     maxWidth,
	}
}

// Probe checks whether the bucket exists without touching its contents.
func (s *MediaStore) Probe() Capability {
	info, err := os.Stat(s.bucketDir())
	if err != nil {
		if os.IsNotExist(err) {
			return Capability{State: Unavailable, Reason: fmt.Sprintf("bucket %q not found", s.bucket)}
		}
		return Capability{State: Unavailable, Reason: err.Error()}
	}
	if !info.IsDir() {
		return Capability{State: Unavailable, Reason: fmt.Sprintf("bucket %q is not a directory", s.bucket)}
	}
	return Capability{State: Available}
}

// EnsureBucket creates the bucket directory. Used at bootstrap; the upload
// path itself never creates the bucket, only folders inside it.
func (s *MediaStore) EnsureBucket() error {
	return os.MkdirAll(s.bucketDir(), 0o755)
}

// Upload validates and stores one file, returning its public URL. A missing
// bucket surfaces as ErrBucketMissing so callers can switch the form into
// external-URL mode instead of retrying.
func (s *MediaStore) Upload(r io.Reader, contentType string, size int64, folder string) (string, error) {
	mediaType := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	ext, ok := extByType[mediaType]
	if !ok {
		return "", ErrFileType
	}
	if size > MaxUploadSize {
		return "", ErrFileTooLarge
	}

	if probe := s.Probe(); probe.State != Available {
		return "", ErrBucketMissing
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return "", err
	}
	if len(data) > MaxUploadSize {
		return "", ErrFileTooLarge
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", ErrNotAnImage
	}

	// Downscale oversized stills. GIFs keep their frames and WebP has no
	// encoder here, so both are stored as received.
	if s.maxWidth > 0 && cfg.Width > s.maxWidth && (format == "jpeg" || format == "png") {
		resized, err := s.downscale(data, format)
		if err != nil {
			return "", err
		}
		data = resized
	}

	folder = strings.Trim(path.Clean("/"+folder), "/")
	if folder == "" || folder == "." {
		folder = "uploads"
	}

	name := uuid.NewString() + ext
	dir := filepath.Join(s.bucketDir(), filepath.FromSlash(folder))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", err
	}

	return s.publicPrefix + "/" + folder + "/" + name, nil
}

// Delete removes an object the store issued. URLs outside the store's public
// prefix were never ours and are a deliberate no-op.
func (s *MediaStore) Delete(rawURL string) error {
	rel, ours := s.relPath(rawURL)
	if !ours {
		return nil
	}

	target := filepath.Join(s.bucketDir(), filepath.FromSlash(rel))
	if !strings.HasPrefix(target, s.bucketDir()+string(filepath.Separator)) {
		return nil
	}

	if err := os.Remove(target); err != nil {
		if os.IsNotExist(err) {
			return ErrObjectNotFound
		}
		return err
	}
	return nil
}

func (s *MediaStore) bucketDir() string {
	return filepath.Join(s.root, s.bucket)
}

func (s *MediaStore) relPath(rawURL string) (string, bool) {
	var p string
	switch {
	case strings.HasPrefix(rawURL, s.publicPrefix+"/"):
		p = strings.TrimPrefix(rawURL, s.publicPrefix+"/")
	case strings.HasPrefix(rawURL, s.urlPath+"/"):
		p = strings.TrimPrefix(rawURL, s.urlPath+"/")
	default:
		return "", false
	}

	p = strings.Trim(path.Clean("/"+p), "/")
	if p == "" || p == "." {
		return "", false
	}
	return p, true
}

func (s *MediaStore) downscale(data []byte, format string) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrNotAnImage
	}

	resized := imaging.Resize(img, s.maxWidth, 0, imaging.Lanczos)

	var out bytes.Buffer
	switch format {
	case "jpeg":
		err = imaging.Encode(&out, resized, imaging.JPEG, imaging.JPEGQuality(90))
	case "png":
		err = imaging.Encode(&out, resized, imaging.PNG)
	default:
		return data, nil
	}
	if err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
