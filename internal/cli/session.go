package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"codeberg.org/snonux/editaudio/internal/anki"
	"codeberg.org/snonux/editaudio/internal/audio"
	"codeberg.org/snonux/editaudio/internal/processor"
	"codeberg.org/snonux/editaudio/internal/store"
)

const (
	// launchFailures is the number of failed launches in a row after which an
	// editor is not tried again until launchCooldown passed
	launchFailures = 3
	launchCooldown = 30 * time.Second
)

// newLauncher creates the launcher used to start the editor
var newLauncher = func() audio.Launcher {
	return audio.NewBreakerLauncher(audio.NewExecLauncher(), launchFailures, launchCooldown)
}

// session holds what a command works with. The collection is only opened by
// commands that read cards or decks.
type session struct {
	store      *store.Store
	collection *anki.Collection
	processor  *processor.Processor
}

func openSession(ctx context.Context, withCollection bool) (*session, error) {
	st, err := store.Load(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", ConfigFile(), err)
	}

	s := &session{store: st}
	if !withCollection {
		return s, nil
	}

	path := CollectionPath()
	col, err := anki.OpenCollection(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open collection %s (is Anki's path set with --collection?): %w", path, err)
	}

	s.collection = col
	s.processor = processor.NewProcessor(col, st, newLauncher(), MediaDir())
	return s, nil
}

func (s *session) Close() {
	if s.collection != nil {
		s.collection.Close()
	}
}
