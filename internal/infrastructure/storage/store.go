package storage

import (
	"errors"
	"net/url"
	"path"
	"strings"
)

// ErrArtifactExists is returned when a path was already written. Artifacts are immutable.
var ErrArtifactExists = errors.New("artifact already exists")

var errInvalidPath = errors.New("invalid artifact path")

// cleanObjectPath rejects absolute paths and parent traversal.
func cleanObjectPath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" || strings.HasPrefix(p, "/") {
		return "", errInvalidPath
	}
	cleaned := path.Clean(p)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", errInvalidPath
	}
	return cleaned, nil
}

func joinURL(base, objectPath string) string {
	segments := strings.Split(objectPath, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.TrimRight(base, "/") + "/" + strings.Join(segments, "/")
}
