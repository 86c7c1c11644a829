package log

import (
	"os"

	"github.com/mattn/go-isatty"
)

const colorReset = "\033[0m"

func Color(l LogLevel) string {
	switch l {
	case Debug:
		return "\033[34m"
	case Info:
		return "\033[32m"
	case Warn:
		return "\033[33m"
	case Error:
		return "\033[31m"
	case Fatal:
		return "\033[35m"
	default:
		return colorReset
	}
}

// terminalSupportsColor reports whether f is an interactive terminal. Escape
// sequences are never written when stderr is redirected or a log file shares
// the writer.
func terminalSupportsColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
