package styles

// Completion glyphs for the fancy report.
var (
	IconDone    = "\u2714"
	IconPending = "\u2718"
)

// ASCII fallbacks used when the output is not an interactive terminal.
var (
	IconDoneASCII    = "[OK]"
	IconPendingASCII = "[  ]"
)
