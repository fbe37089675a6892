package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/editaudio/internal"
	"codeberg.org/snonux/editaudio/internal/logging"
)

// Config keys not owned by the store
const (
	keyCollectionPath  = "collection.path"
	keyCollectionMedia = "collection.media"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "editaudio",
		Short: "Open the audio of Anki cards in a sound editor",
		Long: `editaudio opens the audio clips of an Anki card in an external sound
editor (Audacity by default). Which clips are opened is chosen per deck
by field names, by position on the front and back side, or by regex.

Examples:
  editaudio open --card 1718000000000          # open the front side audio
  editaudio open --card 1718000000000 --side back
  editaudio set "Spanish" "1,2:1" --save       # positions 1 and 2 on the front, 1 on the back
  editaudio set "Spanish" "Word,Audio" --save  # audio of the Word and Audio fields
  editaudio gui                                # settings window`,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			InitConfig(flags.CfgFile)
			logging.Configure(cmd.ErrOrStderr(), flags.Verbose)
			if used := viper.ConfigFileUsed(); used != "" {
				logging.NewLogger(context.Background()).Debugf("using config file %s", used)
			}
			return nil
		},
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	rootCmd.AddCommand(
		newOpenCommand(flags),
		newListCommand(flags),
		newSetCommand(flags),
		newImportCommand(flags),
		newShowCommand(),
		newDecksCommand(),
		newFieldsCommand(),
		newEditorCommand(),
		newGUICommand(),
		newHelpCriteriaCommand(),
	)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.editaudio.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.CollectionPath, "collection", "", "Anki collection file (default is the first profile's collection.anki2)")
	cmd.PersistentFlags().StringVar(&flags.MediaDir, "media", "", "Anki media folder (default is collection.media next to the collection)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

// addCardFlags adds the flags selecting a card side
func addCardFlags(cmd *cobra.Command, flags *Flags) {
	cmd.Flags().Int64Var(&flags.CardID, "card", 0, "Card ID (shown in the Anki browser card info)")
	cmd.Flags().StringVarP(&flags.Side, "side", "s", flags.Side, "Card side: front or back")
	_ = cmd.MarkFlagRequired("card")
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag(keyCollectionPath, cmd.PersistentFlags().Lookup("collection"))
	viper.BindPFlag(keyCollectionMedia, cmd.PersistentFlags().Lookup("media"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
	}

	viper.SetDefault("editor.path", internal.DefaultEditorPath(runtime.GOOS))
	if home != "" {
		viper.SetDefault(keyCollectionPath, internal.DefaultCollectionPath(runtime.GOOS, home))
	}

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else if home != "" {
		// Search config in home directory with name ".editaudio" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".editaudio")
	}

	// Environment variables, e.g. EDITAUDIO_EDITOR_PATH
	viper.SetEnvPrefix("EDITAUDIO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// A missing config file is fine, defaults apply
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	}
}

// ConfigFile returns the config file that is written on save
func ConfigFile() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".editaudio.yaml"
	}
	return filepath.Join(home, ".editaudio.yaml")
}

// CollectionPath returns the configured collection file
func CollectionPath() string {
	return internal.ExpandHome(viper.GetString(keyCollectionPath))
}

// MediaDir returns the configured media folder, or the folder Anki keeps
// next to the collection
func MediaDir() string {
	if dir := viper.GetString(keyCollectionMedia); dir != "" {
		return internal.ExpandHome(dir)
	}
	return internal.DefaultMediaDir(CollectionPath())
}
