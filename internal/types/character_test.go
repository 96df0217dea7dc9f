package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagsStaySortedAndUnique(t *testing.T) {
	c := &Character{}
	c.SetFlag("married")
	c.SetFlag("scholarship")
	c.SetFlag("dropout")
	c.SetFlag("married")

	assert.Equal(t, []string{"dropout", "married", "scholarship"}, c.Flags)
	assert.True(t, c.HasFlag("married"))
	assert.False(t, c.HasFlag("divorced"))

	c.ClearFlag("married")
	c.ClearFlag("divorced")
	assert.Equal(t, []string{"dropout", "scholarship"}, c.Flags)
}

func TestSkills(t *testing.T) {
	c := &Character{}
	assert.Zero(t, c.Skill("robotics"))

	c.SetSkill("robotics", 1)
	c.SetSkill("robotics", 3)
	c.SetSkill("chess", 2)
	assert.Equal(t, 3, c.Skill("robotics"))
	assert.Equal(t, 2, c.Skill("chess"))
	assert.Equal(t, []string{"chess:2", "robotics:3"}, c.Flags)
}

func TestAddRelationshipAssignsIDs(t *testing.T) {
	c := &Character{NextRelationshipID: 4}
	r := c.AddRelationship(&Relationship{Name: "Rui", Type: Friend})

	assert.Equal(t, "rel-5", r.ID)
	assert.Equal(t, 5, c.NextRelationshipID)
	require.Len(t, c.Relationships, 1)
	assert.Same(t, r, c.Relationships[0])
}

func TestCharacterCloneIsIndependent(t *testing.T) {
	c := &Character{Name: "Ana", Flags: []string{"a"}}
	c.AddRelationship(&Relationship{Name: "Rui", Type: Friend, Alive: true})

	cp := c.Clone()
	cp.Stats.Health = 10
	cp.SetFlag("b")
	cp.Relationships[0].Stats.Trust = 50
	cp.AddRelationship(&Relationship{Name: "Bia", Type: Friend})

	assert.Zero(t, c.Stats.Health)
	assert.Equal(t, []string{"a"}, c.Flags)
	assert.Zero(t, c.Relationships[0].Stats.Trust)
	assert.Len(t, c.Relationships, 1)
	assert.Equal(t, 1, c.NextRelationshipID)
}

func TestEducationInSchool(t *testing.T) {
	assert.True(t, EducationElementary.InSchool())
	assert.True(t, EducationUniversity.InSchool())
	assert.False(t, EducationNone.InSchool())
	assert.False(t, EducationHighSchoolGraduate.InSchool())
}

func TestErrDeceasedIsRequirementFailure(t *testing.T) {
	assert.True(t, errors.Is(ErrDeceased, ErrRequirementNotMet))
	assert.False(t, errors.Is(ErrRequirementNotMet, ErrDeceased))
}
