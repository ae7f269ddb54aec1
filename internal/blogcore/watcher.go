package blogcore

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceDelay = 100 * time.Millisecond

// Watch starts watching the seed file for changes. The store reloads itself
// (after debouncing) whenever the file is rewritten, then invokes onChange
// if non-nil.
func (c *Core) Watch(onChange func()) error {
	c.mu.Lock()
	if c.watching {
		c.mu.Unlock()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		c.mu.Unlock()
		return err
	}

	// Watch the containing directory rather than the file itself: editors
	// and atomic writes replace the file, which drops a direct watch.
	if err := watcher.Add(filepath.Dir(c.path)); err != nil {
		watcher.Close()
		c.mu.Unlock()
		return err
	}

	c.watching = true
	c.done = make(chan struct{})
	c.onChange = onChange
	c.mu.Unlock()

	go c.watchLoop(watcher)

	return nil
}

// Unwatch stops watching the seed file.
func (c *Core) Unwatch() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.watching {
		return nil
	}

	close(c.done)
	c.watching = false
	c.onChange = nil

	return nil
}

// watchLoop processes filesystem events with debouncing.
func (c *Core) watchLoop(watcher *fsnotify.Watcher) {
	defer watcher.Close()

	var debounceTimer *time.Timer

	for {
		select {
		case <-c.done:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != filepath.Clean(c.path) {
				continue
			}

			relevant := event.Op&fsnotify.Create != 0 ||
				event.Op&fsnotify.Write != 0 ||
				event.Op&fsnotify.Rename != 0

			if !relevant {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, c.reload)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			c.logWarn("watcher: %v", err)
		}
	}
}

// reload re-reads the seed file after a change. A file that fails to parse
// leaves the previous state in place.
func (c *Core) reload() {
	c.mu.Lock()

	if !c.watching {
		c.mu.Unlock()
		return
	}

	err := c.loadFromFile()
	callback := c.onChange
	c.mu.Unlock()

	if err != nil {
		c.logWarn("reloading %s: %v", c.path, err)
		return
	}

	if callback != nil {
		callback()
	}
}
