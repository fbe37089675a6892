package gui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/editaudio/internal"
	"codeberg.org/snonux/editaudio/internal/anki"
	"codeberg.org/snonux/editaudio/internal/audio"
	"codeberg.org/snonux/editaudio/internal/criteria"
	"codeberg.org/snonux/editaudio/internal/logging"
	"codeberg.org/snonux/editaudio/internal/processor"
	"codeberg.org/snonux/editaudio/internal/store"
)

// Config holds what the settings window works with
type Config struct {
	Collection *anki.Collection
	Processor  *processor.Processor
	ConfigFile string   // written on editor changes and when "Save config" is ticked
	App        fyne.App // created with app.NewWithID when nil
}

// Application is the settings window: per-deck criteria, the editor path
// and a card section to try the criteria on a card
type Application struct {
	app     fyne.App
	window  fyne.Window
	config  *Config
	store   *store.Store
	watcher *configWatcher

	// Criteria section
	deckSelect      *widget.Select
	fieldsLabel     *widget.Label
	criteriaEntry   *widget.Entry
	regexCheck      *widget.Check
	editorLabel     *widget.Label
	saveCheck       *widget.Check
	changeEditorBtn *ttwidget.Button
	helpBtn         *ttwidget.Button
	okBtn           *ttwidget.Button
	cancelBtn       *ttwidget.Button

	// Card section
	cardEntry  *widget.Entry
	sideRadio  *widget.RadioGroup
	previewBtn *ttwidget.Button
	openBtn    *ttwidget.Button
	clipList   *ClipList

	statusLabel *widget.Label
	logViewer   *LogViewer
	prevLogOut  io.Writer
}

// New creates the settings window
func New(config *Config) *Application {
	fyneApp := config.App
	if fyneApp == nil {
		fyneApp = app.NewWithID("org.codeberg.snonux.editaudio")
	}
	fyneApp.SetIcon(GetAppIcon())

	a := &Application{
		app:    fyneApp,
		config: config,
		store:  config.Processor.Store(),
	}

	a.setupUI()
	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("editaudio v%s - Open audio in editor", internal.Version))
	a.window.SetIcon(GetAppIcon())
	a.window.Resize(fyne.NewSize(640, 600))

	// Criteria section
	a.deckSelect = widget.NewSelect(a.config.Collection.DeckChoices(), a.onSelectDeck)
	a.deckSelect.PlaceHolder = "Choose a deck"

	a.fieldsLabel = widget.NewLabel("")
	a.fieldsLabel.Wrapping = fyne.TextWrapWord

	a.criteriaEntry = widget.NewEntry()
	a.criteriaEntry.SetPlaceHolder("Front,Back   or   1,2:1   or a regex")
	a.criteriaEntry.OnSubmitted = func(string) { a.onApply() }

	a.regexCheck = widget.NewCheck("By regex", nil)
	a.saveCheck = widget.NewCheck("Save config", nil)

	a.editorLabel = widget.NewLabel(a.store.EditorPath())
	a.editorLabel.Truncation = fyne.TextTruncateEllipsis

	a.changeEditorBtn = ttwidget.NewButtonWithIcon("Change", theme.FolderOpenIcon(), a.onChangeEditor)
	a.helpBtn = ttwidget.NewButtonWithIcon("", theme.HelpIcon(), a.onShowHelp)
	a.okBtn = ttwidget.NewButtonWithIcon("OK", theme.ConfirmIcon(), a.onApply)
	a.okBtn.Importance = widget.HighImportance
	a.cancelBtn = ttwidget.NewButtonWithIcon("Cancel", theme.CancelIcon(), a.onCancel)

	criteriaForm := widget.NewForm(
		widget.NewFormItem("Deck", a.deckSelect),
		widget.NewFormItem("Fields", a.fieldsLabel),
		widget.NewFormItem("Criteria", container.NewBorder(nil, nil, nil, a.regexCheck, a.criteriaEntry)),
		widget.NewFormItem("Editor", container.NewBorder(nil, nil, nil, a.changeEditorBtn, a.editorLabel)),
	)
	criteriaButtons := container.NewHBox(a.helpBtn, a.saveCheck, layout.NewSpacer(), a.cancelBtn, a.okBtn)

	// Card section
	a.cardEntry = widget.NewEntry()
	a.cardEntry.SetPlaceHolder("Card ID")
	a.sideRadio = widget.NewRadioGroup([]string{anki.Front.String(), anki.Back.String()}, nil)
	a.sideRadio.Horizontal = true
	a.sideRadio.SetSelected(anki.Front.String())

	a.previewBtn = ttwidget.NewButtonWithIcon("", theme.SearchIcon(), a.onPreview)
	a.openBtn = ttwidget.NewButtonWithIcon("Open", theme.MediaPlayIcon(), a.onOpen)
	a.clipList = NewClipList()

	cardRow := container.NewBorder(nil, nil, nil,
		container.NewHBox(a.sideRadio, a.previewBtn, a.openBtn),
		a.cardEntry,
	)

	a.statusLabel = widget.NewLabel("Ready")
	a.logViewer = NewLogViewer()

	content := container.NewBorder(
		container.NewVBox(
			widget.NewCard("Criteria", "", container.NewVBox(criteriaForm, criteriaButtons)),
			widget.NewCard("Card", "", container.NewVBox(cardRow, a.clipList)),
		),
		a.statusLabel,
		nil, nil,
		a.logViewer,
	)

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))

	a.changeEditorBtn.SetToolTip("Choose another sound editor")
	a.helpBtn.SetToolTip("How to write criteria")
	a.okBtn.SetToolTip("Apply the criteria to the deck")
	a.cancelBtn.SetToolTip("Close without applying")
	a.previewBtn.SetToolTip("Show which audio would be opened")
	a.openBtn.SetToolTip("Open the selected audio in the editor")

	// Route log output into the log viewer as well
	a.prevLogOut = logging.Output()
	logging.SetOutput(io.MultiWriter(a.prevLogOut, a.logViewer))

	a.window.SetOnClosed(func() {
		if a.watcher != nil {
			a.watcher.Stop()
		}
		logging.SetOutput(a.prevLogOut)
	})

	// Preselect the current deck
	if choices := a.deckSelect.Options; len(choices) > 0 {
		a.deckSelect.SetSelected(choices[0])
	}
}

// Run starts watching the config file and shows the window
func (a *Application) Run() {
	if a.config.ConfigFile != "" {
		a.watcher = watchConfig(a.config.ConfigFile, a.onConfigChanged)
	}
	a.window.ShowAndRun()
}

// onSelectDeck shows the fields and the criteria of the chosen deck
func (a *Application) onSelectDeck(deck string) {
	if deck == "" {
		return
	}

	names, err := a.config.Collection.FieldNames(context.Background(), deck)
	if err != nil {
		a.fieldsLabel.SetText("")
		logging.NewLogger(context.Background()).Warnf("no fields for deck %s: %v", deck, err)
	} else {
		a.fieldsLabel.SetText(strings.Join(names, ", "))
	}

	c := a.store.CriteriaFor(deck)
	a.criteriaEntry.SetText(c.String())
	a.regexCheck.SetChecked(c.IsRegex())
}

// onApply stores the criteria of the selected deck, writing the config file
// when "Save config" is ticked. Invalid input leaves the store untouched.
func (a *Application) onApply() {
	deck := a.deckSelect.Selected
	if deck == "" {
		dialog.ShowInformation("No deck", "Choose a deck first.", a.window)
		return
	}

	c, err := criteria.Parse(a.criteriaEntry.Text, a.regexCheck.Checked)
	if err != nil {
		dialog.ShowError(fmt.Errorf("Your input has an invalid form. Press the help button for the accepted forms.\n%w", err), a.window)
		return
	}

	a.store.Set(deck, c)
	if !a.saveCheck.Checked {
		a.updateStatus(fmt.Sprintf("%s: %s %s (not saved)", deck, c.Mode, c))
		return
	}

	if err := store.SaveFile(a.store, a.config.ConfigFile); err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.updateStatus(fmt.Sprintf("%s: %s %s saved to %s", deck, c.Mode, c, a.config.ConfigFile))
}

// onCancel discards the entry and closes the window
func (a *Application) onCancel() {
	a.window.Close()
}

// onChangeEditor lets the user pick another editor. On macOS editors are
// .app bundles, which are directories.
func (a *Application) onChangeEditor() {
	if runtime.GOOS == "darwin" {
		d := dialog.NewFolderOpen(func(dir fyne.ListableURI, err error) {
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			if dir != nil {
				a.setEditor(dir.Path())
			}
		}, a.window)
		d.Show()
		return
	}

	d := dialog.NewFileOpen(func(file fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if file != nil {
			defer file.Close()
			a.setEditor(file.URI().Path())
		}
	}, a.window)
	d.Show()
}

// setEditor stores the editor and writes it to the config file right away,
// whatever "Save config" says
func (a *Application) setEditor(path string) {
	a.store.SetEditorPath(path)
	a.editorLabel.SetText(path)

	if a.config.ConfigFile == "" {
		a.updateStatus("Editor set to " + path + " (not saved)")
		return
	}
	if err := store.SaveFile(a.store, a.config.ConfigFile); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save editor: %w", err), a.window)
		return
	}
	a.updateStatus(fmt.Sprintf("Editor set to %s, saved to %s", path, a.config.ConfigFile))
}

func (a *Application) onShowHelp() {
	label := widget.NewLabel(criteria.HelpText)
	label.TextStyle = fyne.TextStyle{Monospace: true}
	dialog.NewCustom("Criteria", "Close", container.NewScroll(label), a.window).Show()
}

// cardInput reads the card section
func (a *Application) cardInput() (int64, anki.Side, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(a.cardEntry.Text), 10, 64)
	if err != nil {
		return 0, anki.Front, fmt.Errorf("invalid card ID %q", a.cardEntry.Text)
	}
	side, err := anki.ParseSide(a.sideRadio.Selected)
	if err != nil {
		return 0, anki.Front, err
	}
	return id, side, nil
}

func (a *Application) onPreview() {
	id, side, err := a.cardInput()
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	sel, clips, err := a.config.Processor.ListAudios(context.Background(), id, side)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.clipList.SetClips(clips)
	a.updateStatus(fmt.Sprintf("Card %d (%s): %s %s", id, sel.Card.Deck, sel.Criteria.Mode, sel.Criteria))
}

func (a *Application) onOpen() {
	id, side, err := a.cardInput()
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	sel, err := a.config.Processor.OpenAudios(context.Background(), id, side)

	var launchErr *processor.LaunchError
	var missing *audio.MissingMediaError
	switch {
	case errors.As(err, &launchErr):
		dialog.ShowConfirm("Cannot open editor",
			fmt.Sprintf("Cannot open %s. Choose another editor?", launchErr.Editor),
			func(ok bool) {
				if ok {
					a.onChangeEditor()
				}
			}, a.window)
	case errors.As(err, &missing):
		dialog.ShowError(fmt.Errorf("File %s does not exist. Nothing was opened.", missing.Name), a.window)
	case errors.Is(err, processor.ErrNothingToOpen):
		dialog.ShowInformation("Nothing to open", "The criteria select no audio on this side of the card.", a.window)
	case err != nil:
		dialog.ShowError(err, a.window)
	default:
		a.updateStatus(fmt.Sprintf("Opened %d file(s) in %s", len(sel.Names), a.store.EditorPath()))
	}
}

// onConfigChanged reloads the store after the config file changed on disk.
// It runs on the fyne event loop.
func (a *Application) onConfigChanged(loaded *store.Store) {
	a.store.Replace(loaded)
	a.editorLabel.SetText(a.store.EditorPath())
	if deck := a.deckSelect.Selected; deck != "" {
		a.onSelectDeck(deck)
	}
	a.updateStatus("Config reloaded")
}

func (a *Application) updateStatus(message string) {
	a.statusLabel.SetText(message)
	logging.NewLogger(context.Background()).Infof("%s", message)
}
