package criteria

// HelpText describes the three criteria forms for the CLI and the settings
// window
const HelpText = `Choose which audio clips of a card are opened, per deck.

By field:   Front,Back
            Opens the audio of the listed fields, in that order.

By number:  1,2:1
            Left of the colon are the positions on the front side, right of
            it the positions on the back side. 1,2:1 opens the first and
            second audio of the front, and the first audio of the back.
            Either side may be empty (":2" opens nothing on the front).

By regex:   <div id="editable">.*?</div>   (tick "By regex" / --regex)
            Opens the audio found inside every match of the expression,
            e.g. only the audio wrapped in <div id="editable">.

Decks without criteria open the first audio of each side (1:1).`
