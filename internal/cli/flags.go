package cli

// Flags holds all command-line flag values
type Flags struct {
	// Global flags
	CfgFile        string
	Verbose        bool
	CollectionPath string
	MediaDir       string

	// Card flags of open and list
	CardID int64
	Side   string

	// set flags
	Regex bool
	Save  bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Side: "front",
	}
}
