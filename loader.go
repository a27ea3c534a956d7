package ludo

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// texture is a decoded image shared by every Sprite loaded from the same path.
type texture struct {
	path  string
	image *ebiten.Image
	refs  int
}

// Loader turns asset paths into sprites. Decoded textures are cached by path
// and reference counted: each Sprite from Load holds one reference, and the
// texture is deallocated when the last one is released.
//
// Load, Poll and Release must be called from the frame thread. The watcher
// goroutine started by Watch only queues paths for Poll.
type Loader struct {
	fsys  fs.FS
	cache map[string]*texture

	watcher *fsnotify.Watcher
	root    string
	done    chan struct{}

	mu      sync.Mutex
	pending []string
}

// NewLoader returns a loader reading from fsys.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{
		fsys:  fsys,
		cache: make(map[string]*texture),
	}
}

// Load returns a new sprite for the image at name. Supported formats are PNG,
// JPEG, GIF, BMP and WebP. Errors wrap ErrResource.
func (l *Loader) Load(name string) (*Sprite, error) {
	name = path.Clean(name)
	tex, ok := l.cache[name]
	if !ok {
		img, err := l.decode(name)
		if err != nil {
			return nil, err
		}
		tex = &texture{path: name, image: img}
		l.cache[name] = tex
		logger.Debug("texture loaded", "path", name, "size", img.Bounds().Size())
	}
	tex.refs++
	return &Sprite{Transparency: 1, tex: tex, loader: l}, nil
}

// MustLoad is like Load but panics on error. Intended for startup code where
// a missing asset is fatal.
func (l *Loader) MustLoad(name string) *Sprite {
	s, err := l.Load(name)
	if err != nil {
		panic(err)
	}
	return s
}

func (l *Loader) decode(name string) (*ebiten.Image, error) {
	f, err := l.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrResource, name, err)
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrResource, name, err)
	}
	logger.Debug("decoded", "path", name, "format", format)
	return ebiten.NewImageFromImage(img), nil
}

// Cached returns the number of textures currently held.
func (l *Loader) Cached() int {
	return len(l.cache)
}

// Refs returns the number of live sprites sharing the texture at name.
func (l *Loader) Refs(name string) int {
	if tex, ok := l.cache[path.Clean(name)]; ok {
		return tex.refs
	}
	return 0
}

// release drops one reference to tex, deallocating it at zero.
func (l *Loader) release(tex *texture) {
	tex.refs--
	if tex.refs > 0 {
		return
	}
	if l.cache[tex.path] == tex {
		delete(l.cache, tex.path)
	}
	if tex.image != nil {
		tex.image.Deallocate()
		tex.image = nil
	}
	logger.Debug("texture released", "path", tex.path)
}

// --- Hot reload ---

// Watch starts watching dir and all of its subdirectories for changes and
// queues modified files for reload. Directories created later are watched as
// they appear. dir must be the directory fsys was created from (for example
// os.DirFS(dir)) so that watched paths map onto loader paths.
func (l *Loader) Watch(dir string) error {
	if l.watcher != nil {
		return errors.New("ludo: loader already watching")
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	if err := watchRecursive(w, dir); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	l.watcher = w
	l.root = dir
	l.done = make(chan struct{})
	go l.watch(w, l.done)
	logger.Info("watching assets", "dir", dir)
	return nil
}

func (l *Loader) watch(w *fsnotify.Watcher, done chan struct{}) {
	defer close(done)
	for {
		select {
		case e, ok := <-w.Events:
			if !ok {
				return
			}
			if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
				continue
			}
			if e.Has(fsnotify.Create) {
				if fi, err := os.Stat(e.Name); err == nil && fi.IsDir() {
					if err := watchRecursive(w, e.Name); err != nil {
						logger.Warn("asset watcher", "dir", e.Name, "err", err)
					}
					continue
				}
			}
			rel, err := filepath.Rel(l.root, e.Name)
			if err != nil {
				continue
			}
			l.queueReload(filepath.ToSlash(rel))
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Warn("asset watcher", "err", err)
		}
	}
}

// watchRecursive adds dir and every directory below it to w.
func watchRecursive(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.Add(p)
	})
}

// queueReload records that name changed on disk.
func (l *Loader) queueReload(name string) {
	l.mu.Lock()
	l.pending = append(l.pending, path.Clean(name))
	l.mu.Unlock()
}

// Poll re-decodes every cached texture whose file changed since the last
// call. Sprites keep their identity and pick up the new image. Returns the
// number of textures reloaded. A file that fails to decode keeps its old
// image.
func (l *Loader) Poll() int {
	l.mu.Lock()
	pending := l.pending
	l.pending = nil
	l.mu.Unlock()
	if len(pending) == 0 {
		return 0
	}

	reloaded := 0
	seen := make(map[string]bool, len(pending))
	for _, name := range pending {
		if seen[name] {
			continue
		}
		seen[name] = true
		tex, ok := l.cache[name]
		if !ok {
			continue
		}
		img, err := l.decode(name)
		if err != nil {
			logger.Warn("reload failed", "path", name, "err", err)
			continue
		}
		if tex.image != nil {
			tex.image.Deallocate()
		}
		tex.image = img
		reloaded++
		logger.Info("texture reloaded", "path", name)
	}
	return reloaded
}

// Close stops the watcher, if any.
func (l *Loader) Close() error {
	if l.watcher == nil {
		return nil
	}
	err := l.watcher.Close()
	<-l.done
	l.watcher = nil
	return err
}
