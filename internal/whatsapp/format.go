package whatsapp

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/user/vida-loka-life/internal/game"
	"github.com/user/vida-loka-life/internal/types"
)

// MessageFormatter handles formatting game messages for WhatsApp
type MessageFormatter struct{}

// NewMessageFormatter creates a new message formatter
func NewMessageFormatter() *MessageFormatter {
	return &MessageFormatter{}
}

// FormatStatus renders the protagonist's stats
func (mf *MessageFormatter) FormatStatus(c *types.Character) string {
	var b strings.Builder

	state := "alive"
	if !c.Alive {
		state = "deceased"
	}
	fmt.Fprintf(&b, "📊 *%s*, %d years old (%s)\n\n", c.Name, c.Age, state)
	fmt.Fprintf(&b, "❤️ Health: %d/100\n", c.Stats.Health)
	fmt.Fprintf(&b, "😊 Happiness: %d/100\n", c.Stats.Happiness)
	fmt.Fprintf(&b, "🧠 Smarts: %d/100\n", c.Stats.Smarts)
	fmt.Fprintf(&b, "✨ Looks: %d/100\n", c.Stats.Looks)
	fmt.Fprintf(&b, "🏅 Social standing: %d/100\n", c.Stats.SocialStanding)
	fmt.Fprintf(&b, "💰 Wealth: $%s\n\n", humanize.Comma(int64(c.Stats.Wealth)))

	fmt.Fprintf(&b, "🎓 Education: %s", label(string(c.Education)))
	if c.Education.InSchool() {
		fmt.Fprintf(&b, " (GPA %s)", game.FormatGPA(c.GPA))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "💞 Status: %s\n", label(string(c.RelationshipStatus)))
	fmt.Fprintf(&b, "👥 People: %d (%d living)", len(c.Relationships), len(c.Relationships.Living()))

	return b.String()
}

// FormatPeople lists relationships numbered from 1, the numbering used by /act
func (mf *MessageFormatter) FormatPeople(graph types.Graph) string {
	if len(graph) == 0 {
		return "Nobody is in your life yet. Try /meet friend."
	}

	var b strings.Builder
	b.WriteString("👥 *PEOPLE IN YOUR LIFE*\n")
	for i, r := range graph {
		fmt.Fprintf(&b, "\n%d. %s, %s, %d", i+1, r.Name, label(string(r.Type)), r.Age)
		if !r.Alive {
			b.WriteString(" ✝️")
			continue
		}
		fmt.Fprintf(&b, " | level %d, trust %d", r.Stats.Level, r.Stats.Trust)
		if r.Type.Romantic() {
			fmt.Fprintf(&b, ", love %d", r.Stats.Love)
		}
		fmt.Fprintf(&b, " | %s", r.Mood)
		if last := r.History.Recent(1); len(last) > 0 {
			fmt.Fprintf(&b, "\n   last: %s", last[0].Description)
		}
	}
	return b.String()
}

// FormatActions renders the action menu
func (mf *MessageFormatter) FormatActions(actions []*types.Action) string {
	var b strings.Builder
	b.WriteString("🎬 *ACTIONS*\n")
	for _, a := range actions {
		fmt.Fprintf(&b, "\n• *%s*: %s", a.ID, a.Description)
		if a.Cost > 0 {
			fmt.Fprintf(&b, " ($%s)", humanize.Comma(int64(a.Cost)))
		}
	}
	b.WriteString("\n\nUse /act [person number] [action]")
	return b.String()
}

// FormatAction renders the result of an action
func (mf *MessageFormatter) FormatAction(res types.ActionResult) string {
	if res.Err != nil {
		return fmt.Sprintf("🚫 %s", res.Message)
	}
	icon := "✅"
	if !res.Success {
		icon = "❌"
	}
	return icon + " " + res.Message + formatEffects(res.Effects)
}

// FormatEvent renders a life event and its choices lettered A, B, C...
func (mf *MessageFormatter) FormatEvent(event *types.LifeEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "⚡ *%s*\n%s\n", event.Title, event.Description)
	for i, choice := range event.Choices {
		fmt.Fprintf(&b, "\n%c. %s", 'A'+i, choice.Text)
	}
	b.WriteString("\n\nAnswer with /choose [letter]")
	return b.String()
}

// FormatYear renders everything that happened during a yearly advance
func (mf *MessageFormatter) FormatYear(res types.YearResult) string {
	var b strings.Builder
	c := res.Character

	if c.Alive {
		fmt.Fprintf(&b, "🎂 Happy %s birthday, %s!", humanize.Ordinal(c.Age), c.Name)
	} else {
		fmt.Fprintf(&b, "🕯️ %s has died at age %d.", c.Name, c.Age)
	}
	for _, line := range res.News {
		fmt.Fprintf(&b, "\n• %s", line)
	}
	if res.FiredEvent != nil {
		b.WriteString("\n\n")
		b.WriteString(mf.FormatEvent(res.FiredEvent))
	}
	return b.String()
}

// FormatChoice renders the result of answering an event
func (mf *MessageFormatter) FormatChoice(res types.ChoiceResult) string {
	if res.Err != nil {
		return fmt.Sprintf("🚫 %s", res.Message)
	}
	return "📝 " + res.Message + formatEffects(res.Effects)
}

// FormatDiscover renders the result of meeting someone
func (mf *MessageFormatter) FormatDiscover(res types.DiscoverResult) string {
	if res.Err != nil {
		return fmt.Sprintf("🚫 %s", res.Message)
	}
	return "🤝 " + res.Message
}

func formatEffects(fx types.Effects) string {
	if fx.Empty() {
		return ""
	}

	var parts []string
	for _, e := range fx.Character {
		parts = append(parts, fmt.Sprintf("%s %+d", label(string(e.Stat)), e.Delta))
	}
	for _, e := range fx.Relationship {
		parts = append(parts, fmt.Sprintf("%s %+d", e.Stat, e.Delta))
	}
	return "\n(" + strings.Join(parts, ", ") + ")"
}

// label turns snake_case identifiers into readable words
func label(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}
