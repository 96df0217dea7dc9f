package whatsapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/user/vida-loka-life/internal/types"
)

func TestFormatPeopleShowsLastInteraction(t *testing.T) {
	mf := NewMessageFormatter()
	c := testCharacter()
	c.Relationships[0].History.Append(types.Interaction{Type: "conversation", Description: "You chatted with Maria Souza."})
	c.Relationships[0].History.Append(types.Interaction{Type: "compliment", Description: "Maria Souza loved the compliment."})

	out := mf.FormatPeople(c.Relationships)
	assert.Contains(t, out, "1. Maria Souza, parent, 45 | level 80, trust 70 | happy\n   last: Maria Souza loved the compliment.")
	assert.NotContains(t, out, "You chatted with")

	assert.Contains(t, mf.FormatPeople(nil), "Nobody is in your life yet")
}
