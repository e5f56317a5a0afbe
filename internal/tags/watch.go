package tags

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/oukeidos/lorakit/internal/dataset"
	"github.com/oukeidos/lorakit/internal/logger"
)

// WatchDebounce is how long Watch waits for a burst of caption events to
// settle before calling onChange.
var WatchDebounce = 300 * time.Millisecond

const captionOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watch calls onChange after caption files in dir are created, written,
// removed or renamed. Events are coalesced so a batch rewrite triggers one
// call. Watch blocks until ctx is done.
func Watch(ctx context.Context, dir string, onChange func()) error {
	if err := dataset.RequireDir(dir); err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}

	timer := time.NewTimer(WatchDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&captionOps == 0 || !dataset.IsCaption(event.Name) {
				continue
			}
			timer.Reset(WatchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Caption watcher error", "dir", dir, "error", err)
		case <-timer.C:
			onChange()
		}
	}
}
