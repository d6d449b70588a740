package display

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

const (
	DefaultRoot = "adapter-intake"
	DefaultDir  = "display"
	DefaultExt  = ".hyr"
)

// Entry is a discovered template.
type Entry struct {
	// Key is the path under the display directory without extension.
	Key string
	// Path is the full path inside the file system.
	Path string
	// App is the application directory the template belongs to.
	App string
}

// Finder searches templates in a file system.
type Finder struct {
	fsys fs.FS
	root string
	dir  string
	ext  string
}

// Option configures a Finder.
type Option func(*Finder)

// WithRoot sets the intake directory (default "adapter-intake").
func WithRoot(root string) Option {
	return func(f *Finder) {
		f.root = strings.Trim(root, "/")
	}
}

// WithDir sets the per-app template directory (default "display").
func WithDir(dir string) Option {
	return func(f *Finder) {
		f.dir = strings.Trim(dir, "/")
	}
}

// WithExt sets the template file extension (default ".hyr").
func WithExt(ext string) Option {
	return func(f *Finder) {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		f.ext = ext
	}
}

// NewFinder creates a Finder over fsys.
func NewFinder(fsys fs.FS, opts ...Option) *Finder {
	f := &Finder{fsys: fsys, root: DefaultRoot, dir: DefaultDir, ext: DefaultExt}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FS returns the underlying file system.
func (f *Finder) FS() fs.FS { return f.fsys }

// Ext returns the template file extension.
func (f *Finder) Ext() string { return f.ext }

// Key converts a template reference to its logical name.
func (f *Finder) Key(name string) string {
	return strings.TrimPrefix(strings.TrimSuffix(strings.TrimSpace(name), f.ext), "/")
}

// Find returns the path of the first template matching name.
func (f *Finder) Find(name string) (string, error) {
	key := f.Key(name)
	if key == "" {
		return "", fmt.Errorf("%w: empty name", ErrTemplateNotFound)
	}

	entries, err := f.List()
	if err != nil {
		return "", err
	}
	suffix := "/" + key
	for _, e := range entries {
		if e.Key == key || strings.HasSuffix(e.Key, suffix) {
			return e.Path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, key)
}

// Read returns the source of the template matching name.
func (f *Finder) Read(name string) (string, string, error) {
	p, err := f.Find(name)
	if err != nil {
		return "", "", err
	}
	data, err := fs.ReadFile(f.fsys, p)
	if err != nil {
		return "", "", fmt.Errorf("display: read %s: %w", p, err)
	}
	return p, string(data), nil
}

// List returns every template sorted by path.
func (f *Finder) List() ([]Entry, error) {
	apps, err := fs.ReadDir(f.fsys, f.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("display: read %s: %w", f.root, err)
	}

	var entries []Entry
	for _, app := range apps {
		if !app.IsDir() {
			continue
		}
		base := path.Join(f.root, app.Name(), f.dir)
		err := fs.WalkDir(f.fsys, base, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return fs.SkipDir
				}
				return err
			}
			if d.IsDir() || path.Ext(p) != f.ext {
				return nil
			}
			entries = append(entries, Entry{
				Key:  strings.TrimSuffix(strings.TrimPrefix(p, base+"/"), f.ext),
				Path: p,
				App:  app.Name(),
			})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("display: walk %s: %w", base, err)
		}
	}

	slices.SortFunc(entries, func(a, b Entry) int { return strings.Compare(a.Path, b.Path) })
	return entries, nil
}

// Dirs returns the display directories that exist, for file watching.
func (f *Finder) Dirs() ([]string, error) {
	apps, err := fs.ReadDir(f.fsys, f.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("display: read %s: %w", f.root, err)
	}

	var dirs []string
	for _, app := range apps {
		if !app.IsDir() {
			continue
		}
		base := path.Join(f.root, app.Name(), f.dir)
		_ = fs.WalkDir(f.fsys, base, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return fs.SkipDir
			}
			if d.IsDir() {
				dirs = append(dirs, p)
			}
			return nil
		})
	}
	return dirs, nil
}
