package pprint

import (
	"fmt"
	"io"
)

// PrintBanner prints the greet banner with version and tagline.
func PrintBanner(w io.Writer, version, buildDate string) {
	lines := []string{
		StylePrimary.Render("   ___  ___  ___  ___  _____"),
		StylePrimary.Render("  / __|| _ \\| __|| __||_   _|"),
		StyleAccent.Render(" | (_ ||   /| _| | _|   | |"),
		StyleMuted.Render("  \\___||_|_\\|___||___|  |_|"),
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	fmt.Fprintln(w)

	versionStr := StyleAccent.Render("  " + version)
	if buildDate != "" {
		versionStr += StyleMuted.Render("  built " + buildDate)
	}
	fmt.Fprintln(w, StyleMuted.Render("  Friendly greetings from the terminal"))
	fmt.Fprintln(w, versionStr)
	fmt.Fprintln(w)
}
