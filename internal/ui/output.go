package ui

import "fmt"

// Unicode symbols for status indicators
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
)

// Check returns a success message with checkmark symbol
func Check(msg string) string {
	return fmt.Sprintf("%s %s", SymbolSuccess, msg)
}

// Checkf returns a formatted success message with checkmark symbol
func Checkf(format string, args ...interface{}) string {
	return Check(fmt.Sprintf(format, args...))
}

// Error returns an error message with X symbol
func Error(msg string) string {
	return fmt.Sprintf("%s %s", SymbolError, msg)
}

// Errorf returns a formatted error message with X symbol
func Errorf(format string, args ...interface{}) string {
	return Error(fmt.Sprintf(format, args...))
}

// Warning returns a warning message with warning symbol
func Warning(msg string) string {
	return fmt.Sprintf("%s %s", SymbolWarning, msg)
}

// Warningf returns a formatted warning message with warning symbol
func Warningf(format string, args ...interface{}) string {
	return Warning(fmt.Sprintf(format, args...))
}

// Info returns an info message with info symbol
func Info(msg string) string {
	return fmt.Sprintf("%s %s", SymbolInfo, msg)
}

// Infof returns a formatted info message with info symbol
func Infof(format string, args ...interface{}) string {
	return Info(fmt.Sprintf(format, args...))
}

// Header returns a styled section header
func Header(msg string) string {
	return Bold.Render(msg)
}

// ItemPath returns an accent-styled project path
func ItemPath(path string) string {
	return Accent.Render(path)
}

// TypeBadge returns a muted item-type label
func TypeBadge(typeName string) string {
	return Muted.Render("[" + typeName + "]")
}

// Hint returns muted hint text
func Hint(msg string) string {
	return Muted.Render(msg)
}

// Count returns a styled count badge (e.g., "(3 items)")
func Count(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("(%d %s)", n, singular)
	}
	return fmt.Sprintf("(%d %s)", n, plural)
}

// MissingVanillaCounts returns a count string like "(3 missing, 2 vanilla)"
// for check output.
func MissingVanillaCounts(missing, vanilla int) string {
	if missing > 0 && vanilla > 0 {
		return fmt.Sprintf("(%d missing, %d vanilla)", missing, vanilla)
	} else if missing > 0 {
		return fmt.Sprintf("(%d missing)", missing)
	}
	return fmt.Sprintf("(%d vanilla)", vanilla)
}
