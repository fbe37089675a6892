package gui

import (
	"context"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"codeberg.org/snonux/editaudio/internal/logging"
	"codeberg.org/snonux/editaudio/internal/store"
)

// configWatcher reloads the store when the config file is edited outside
// the window, e.g. by "editaudio set --save" in a terminal
type configWatcher struct {
	v       *viper.Viper
	stopped atomic.Bool
}

// watchConfig calls reload on the fyne event loop with the store read from
// path after every change. Broken edits are logged and skipped.
func watchConfig(path string, reload func(*store.Store)) *configWatcher {
	log := logging.NewLogger(context.Background()).WithField("config", path)

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		log.Debugf("config not readable yet: %v", err)
	}

	w := &configWatcher{v: v}
	v.OnConfigChange(func(e fsnotify.Event) {
		if w.stopped.Load() {
			return
		}
		log.Debugf("config changed: %s", e.Op)

		loaded, err := store.Load(v)
		if err != nil {
			log.Warnf("ignoring config change: %v", err)
			return
		}
		fyne.Do(func() { reload(loaded) })
	})
	v.WatchConfig()

	return w
}

// Stop ignores further changes. viper keeps its watcher until exit.
func (w *configWatcher) Stop() {
	w.stopped.Store(true)
}
