package renderer

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// StyleResolver maps a <style src="..."/> path to the URL the page links.
// An error leaves the path as written and is logged.
type StyleResolver func(src string) (string, error)

// PublicStyles resolves stylesheets that exist under one of dirs of fsys
// (typically "public" then the intake root) to a root-relative URL.
func PublicStyles(fsys fs.FS, dirs ...string) StyleResolver {
	return func(src string) (string, error) {
		rel := path.Clean(strings.TrimPrefix(src, "/"))
		if !fs.ValidPath(rel) {
			return "", fmt.Errorf("%w: %s", ErrStyleNotFound, src)
		}
		for _, dir := range dirs {
			info, err := fs.Stat(fsys, path.Join(dir, rel))
			if err == nil && !info.IsDir() {
				return "/" + rel, nil
			}
		}
		return "", fmt.Errorf("%w: %s (searched %s)", ErrStyleNotFound, src, strings.Join(dirs, ", "))
	}
}
