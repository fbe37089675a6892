package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/editaudio/internal/anki"
	"codeberg.org/snonux/editaudio/internal/archive"
	"codeberg.org/snonux/editaudio/internal/audio"
	"codeberg.org/snonux/editaudio/internal/batch"
	"codeberg.org/snonux/editaudio/internal/criteria"
	"codeberg.org/snonux/editaudio/internal/gui"
	"codeberg.org/snonux/editaudio/internal/processor"
	"codeberg.org/snonux/editaudio/internal/store"
)

func newOpenCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open the selected audio of a card in the editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			side, err := anki.ParseSide(flags.Side)
			if err != nil {
				return err
			}

			s, err := openSession(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer s.Close()

			sel, err := s.processor.OpenAudios(cmd.Context(), flags.CardID, side)
			var launchErr *processor.LaunchError
			if errors.As(err, &launchErr) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Cannot open %s. Choose another editor (editaudio editor PATH).\n", launchErr.Editor)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Opened %d file(s) in %s\n", len(sel.Names), s.store.EditorPath())
			return nil
		},
	}
	addCardFlags(cmd, flags)
	return cmd
}

func newListCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show which audio of a card would be opened",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			side, err := anki.ParseSide(flags.Side)
			if err != nil {
				return err
			}

			s, err := openSession(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer s.Close()

			sel, clips, err := s.processor.ListAudios(cmd.Context(), flags.CardID, side)
			if err != nil {
				return err
			}

			printSelection(cmd.OutOrStdout(), sel, clips)
			return nil
		},
	}
	addCardFlags(cmd, flags)
	return cmd
}

func printSelection(out io.Writer, sel *processor.Selection, clips []processor.Clip) {
	source := "configured"
	switch {
	case sel.Defaulted:
		source = "default"
	case sel.Deck != sel.Card.Deck:
		source = fmt.Sprintf("configured for %s", sel.Deck)
	}
	fmt.Fprintf(out, "Card %d (%s), deck %q, %s side\n", sel.Card.ID, sel.Card.Note.NoteType, sel.Card.Deck, sel.Side)
	fmt.Fprintf(out, "Criteria (%s): %s %s\n", source, sel.Criteria.Mode, sel.Criteria)

	if len(clips) == 0 {
		fmt.Fprintln(out, "No audio selected")
		return
	}

	for i, clip := range clips {
		fmt.Fprintf(out, "%2d. %s\n", i+1, audio.FormatReference(clip.Name))
		if clip.Missing {
			fmt.Fprintf(out, "    missing: %s\n", clip.Path)
			continue
		}
		fmt.Fprintf(out, "    %s\n", clip.Path)
		if !clip.Tags.Empty() {
			fmt.Fprintf(out, "    %s\n", clip.Tags)
		}
	}
}

func newSetCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set DECK CRITERIA",
		Short: "Set the criteria of a deck",
		Long: `Set the criteria of a deck. Without --save the criteria is only checked
and shown; with --save it is written to the config file.

` + criteria.HelpText,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			deck, text := args[0], args[1]

			c, err := criteria.Parse(text, flags.Regex)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Your input has an invalid form. See 'editaudio help-criteria' for the accepted forms.")
				return err
			}

			s, err := openSession(cmd.Context(), false)
			if err != nil {
				return err
			}
			s.store.Set(deck, c)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s %s\n", deck, c.Mode, c)
			if !flags.Save {
				fmt.Fprintln(out, "Not saved, use --save to write the config file")
				return nil
			}

			if err := store.SaveFile(s.store, ConfigFile()); err != nil {
				return err
			}
			fmt.Fprintf(out, "Saved to %s\n", ConfigFile())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&flags.Regex, "regex", "r", false, "Treat CRITERIA as a regular expression")
	cmd.Flags().BoolVar(&flags.Save, "save", false, "Write the criteria to the config file")
	return cmd
}

func newImportCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Set the criteria of many decks from a file",
		Long: `Set the criteria of many decks from a file with one deck per line:

  Spanish = 1,2:1
  Spanish::Verbs = Text,Extra
  HTML ~ <div id="editable">.*?</div>

Lines with "~" hold a regex. If any line is invalid nothing is changed.
With --save the previous config file is copied to an archive directory
before it is overwritten.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := batch.ReadCriteriaFile(args[0])
			if err != nil {
				return err
			}

			s, err := openSession(cmd.Context(), false)
			if err != nil {
				return err
			}
			if err := batch.Apply(entries, s.store); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Your input has an invalid form. See 'editaudio help-criteria' for the accepted forms.")
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range entries {
				c, _ := s.store.Get(e.Deck)
				fmt.Fprintf(out, "%s: %s %s\n", e.Deck, c.Mode, c)
			}
			if !flags.Save {
				fmt.Fprintln(out, "Not saved, use --save to write the config file")
				return nil
			}

			backup, err := archive.BackupFile(ConfigFile())
			if err != nil {
				return err
			}
			if backup != "" {
				fmt.Fprintf(out, "Previous config archived to %s\n", backup)
			}
			if err := store.SaveFile(s.store, ConfigFile()); err != nil {
				return err
			}
			fmt.Fprintf(out, "Saved %d deck(s) to %s\n", len(entries), ConfigFile())
			return nil
		},
	}
	cmd.Flags().BoolVar(&flags.Save, "save", false, "Write the criteria to the config file")
	return cmd
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [DECK]",
		Short: "Show the configured criteria and editor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), false)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				c, ok := s.store.Get(args[0])
				if !ok {
					fmt.Fprintf(out, "%s: %s %s (default)\n", args[0], criteria.Default().Mode, criteria.Default())
					return nil
				}
				fmt.Fprintf(out, "%s: %s %s\n", args[0], c.Mode, c)
				return nil
			}

			fmt.Fprintf(out, "Editor: %s\n", s.store.EditorPath())
			decks := s.store.Decks()
			if len(decks) == 0 {
				fmt.Fprintln(out, "No deck criteria configured")
				return nil
			}
			for _, deck := range decks {
				c, _ := s.store.Get(deck)
				fmt.Fprintf(out, "%s: %s %s\n", deck, c.Mode, c)
			}
			return nil
		},
	}
}

func newDecksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decks",
		Short: "List the decks of the collection, current deck first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer s.Close()

			for _, deck := range s.collection.DeckChoices() {
				fmt.Fprintln(cmd.OutOrStdout(), deck)
			}
			return nil
		},
	}
}

func newFieldsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fields DECK",
		Short: "List the field names used by the cards of a deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer s.Close()

			names, err := s.collection.FieldNames(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newEditorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "editor PATH",
		Short: "Set the sound editor and save it to the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), false)
			if err != nil {
				return err
			}

			s.store.SetEditorPath(args[0])
			if err := s.store.Validate(); err != nil {
				return err
			}
			if err := store.SaveFile(s.store, ConfigFile()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Editor set to %s\n", args[0])
			return nil
		},
	}
}

func newGUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the settings window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer s.Close()

			app := gui.New(&gui.Config{
				Collection: s.collection,
				Processor:  s.processor,
				ConfigFile: ConfigFile(),
			})
			app.Run()
			return nil
		},
	}
}

func newHelpCriteriaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "help-criteria",
		Short: "Explain the criteria forms",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), criteria.HelpText)
		},
	}
}
