package contact

import (
	"regexp"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

var (
	markdownSpecial = regexp.MustCompile("[_*\\[\\]()~`>#+\\-=|{}.!]")
	chatIDSeparator = regexp.MustCompile(`[,\s]+`)

	moscow = loadMoscow()
)

func loadMoscow() *time.Location {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		log.Warnf("load Europe/Moscow location: %s, using fixed UTC+3", err)
		return time.FixedZone("MSK", 3*60*60)
	}
	return loc
}

// EscapeMarkdown backslash-escapes the characters Telegram Markdown treats specially.
func EscapeMarkdown(text string) string {
	return markdownSpecial.ReplaceAllString(text, `\${0}`)
}

// ParseChatIDs splits a chat id list separated by commas or whitespace.
func ParseChatIDs(raw string) []string {
	var ids []string
	for _, id := range chatIDSeparator.Split(raw, -1) {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Request is a callback request left on the site.
type Request struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Comment string `json:"comment"`
}

// FormatMessage renders the request as a Telegram Markdown message stamped with Moscow time.
func FormatMessage(req Request, at time.Time) string {
	var sb strings.Builder
	sb.WriteString("🏠 *Новая заявка с сайта Pach Group*\n\n")
	sb.WriteString("👤 *Имя:* " + EscapeMarkdown(req.Name) + "\n")
	sb.WriteString("📞 *Телефон:* " + EscapeMarkdown(req.Phone) + "\n")
	if req.Comment != "" {
		sb.WriteString("💬 *Комментарий:* " + EscapeMarkdown(req.Comment) + "\n")
	}
	sb.WriteString("\n📅 _" + at.In(moscow).Format("02.01.2006, 15:04:05") + "_")
	return sb.String()
}
