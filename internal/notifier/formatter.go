package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// FormatAlert formats an alert for Telegram's HTML parse mode.
func FormatAlert(text string, at time.Time) string {
	var b strings.Builder
	b.WriteString("⚠️ <b>TickerBoard</b>")
	b.WriteString(fmt.Sprintf(" | %s\n\n", at.Format("2006-01-02 15:04")))
	b.WriteString(html.EscapeString(text))
	return b.String()
}
