package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// configureColor sets up fatih/color for output written to w according to
// the --color mode.
func configureColor(mode string, w io.Writer) error {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "auto":
		color.NoColor = os.Getenv("NO_COLOR") != "" || !isTerminal(w)
	default:
		return fmt.Errorf("invalid --color value %q: want auto, always or never", mode)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

var (
	diffHeader = color.New(color.Bold)
	diffHunk   = color.New(color.FgCyan)
	diffAdd    = color.New(color.FgGreen)
	diffDel    = color.New(color.FgRed)
)

// writeDiff prints a unified diff, coloring each line by its kind.
func writeDiff(w io.Writer, diff string) {
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		text, nl := strings.CutSuffix(line, "\n")

		var c *color.Color
		switch {
		case strings.HasPrefix(text, "--- "), strings.HasPrefix(text, "+++ "):
			c = diffHeader
		case strings.HasPrefix(text, "@@"):
			c = diffHunk
		case strings.HasPrefix(text, "+"):
			c = diffAdd
		case strings.HasPrefix(text, "-"):
			c = diffDel
		}
		if c != nil {
			c.Fprint(w, text)
		} else {
			io.WriteString(w, text)
		}
		if nl {
			io.WriteString(w, "\n")
		}
	}
}
