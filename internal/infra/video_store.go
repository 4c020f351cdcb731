package infra

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	allowedVideoExtensions = []string{".mp4", ".mov", ".m4v", ".webm", ".avi"}
	allowedVideoMIMEs      = []string{"video/mp4", "video/quicktime", "video/x-m4v", "video/webm", "video/avi", "video/x-msvideo", "application/octet-stream"}

	unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9_\-]`)
)

// ErrNotAVideo is returned by Save when the upload is not a supported video.
var ErrNotAVideo = errors.New("file is not a supported video")

// VideoStore saves uploaded videos under <root>/videos.
type VideoStore struct {
	dir string
}

func NewVideoStore(root string) (*VideoStore, error) {
	dir := filepath.Join(root, "videos")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &VideoStore{dir: dir}, nil
}

// Save checks the extension and sniffed content type, then writes the upload
// as <uuid>-<safe name><ext> and returns its path.
func (v *VideoStore) Save(originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !contains(allowedVideoExtensions, ext) {
		return "", fmt.Errorf("%w: extension %q", ErrNotAVideo, ext)
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	head = head[:n]
	if mime := http.DetectContentType(head); !contains(allowedVideoMIMEs, mime) {
		return "", fmt.Errorf("%w: detected %s", ErrNotAVideo, mime)
	}

	path := filepath.Join(v.dir, uuid.NewString()+"-"+safeFilename(originalName)+ext)
	out, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(out, io.MultiReader(bytes.NewReader(head), r)); err != nil {
		out.Close()
		os.Remove(path)
		return "", err
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

func safeFilename(name string) string {
	name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	if len(name) > 64 {
		name = name[:64]
	}
	if name == "" {
		name = "video"
	}
	return name
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
