// Package media persists base64 data-URI images (recipe pictures, avatars)
// to local disk and hands back the relative path stored on the entity.
package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotDataURI   = errors.New("image must be a base64 data URI")
	ErrEmptyPayload = errors.New("image payload is empty")
)

// dataURIRe matches "data:image/<subtype>;base64," prefixes.
var dataURIRe = regexp.MustCompile(`^data:image/(png|jpeg|jpg|gif|webp);base64,`)

type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// SaveDataURI decodes a base64 data URI and writes it under the media dir.
// Returns the relative path ("media/<name>.<ext>") to store on the entity.
func (s *Store) SaveDataURI(uri string) (string, error) {
	match := dataURIRe.FindStringSubmatch(uri)
	if match == nil {
		return "", ErrNotDataURI
	}

	payload := strings.TrimPrefix(uri, match[0])
	if payload == "" {
		return "", ErrEmptyPayload
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	ext := match[1]
	if ext == "jpg" {
		ext = "jpeg"
	}
	name := fmt.Sprintf("%s.%s", uuid.New().String(), ext)

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	return "media/" + name, nil
}

// Remove deletes a stored image by its relative path. A missing file is not an
// error, the entity reference is what matters.
func (s *Store) Remove(relPath string) error {
	name := filepath.Base(relPath)
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}

// IsDataURI reports whether the string looks like a base64 image data URI.
func IsDataURI(s string) bool {
	return dataURIRe.MatchString(s)
}
