package types

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// RelationshipStatus is the protagonist's romantic standing.
type RelationshipStatus string

const (
	StatusSingle  RelationshipStatus = "single"
	StatusDating  RelationshipStatus = "dating"
	StatusEngaged RelationshipStatus = "engaged"
	StatusMarried RelationshipStatus = "married"
)

// Education is the protagonist's schooling stage.
type Education string

const (
	EducationNone               Education = "none"
	EducationElementary         Education = "elementary"
	EducationMiddleSchool       Education = "middle_school"
	EducationHighSchool         Education = "high_school"
	EducationHighSchoolGraduate Education = "high_school_graduate"
	EducationUniversity         Education = "university"
	EducationUniversityGraduate Education = "university_graduate"
)

// InSchool reports whether e is a stage with a running GPA.
func (e Education) InSchool() bool {
	switch e {
	case EducationElementary, EducationMiddleSchool, EducationHighSchool, EducationUniversity:
		return true
	}
	return false
}

// Character is the protagonist.
type Character struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Age                int                `json:"age"`
	Alive              bool               `json:"alive"`
	Stats              Stats              `json:"stats"`
	Relationships      Graph              `json:"relationships"`
	Flags              []string           `json:"flags"`
	RelationshipStatus RelationshipStatus `json:"relationship_status"`
	Education          Education          `json:"education"`
	GPA                float64            `json:"gpa"`
	NextRelationshipID int                `json:"next_relationship_id"`
}

// Clone returns a deep copy so callers can mutate it without touching c.
func (c *Character) Clone() *Character {
	cp := *c
	cp.Relationships = c.Relationships.Clone()
	cp.Flags = slices.Clone(c.Flags)
	return &cp
}

// AddRelationship assigns r a fresh id and appends it to the graph.
// Ids come from a monotonic counter and are never reused.
func (c *Character) AddRelationship(r *Relationship) *Relationship {
	c.NextRelationshipID++
	r.ID = fmt.Sprintf("rel-%d", c.NextRelationshipID)
	c.Relationships = append(c.Relationships, r)
	return r
}

// HasFlag reports whether flag is set.
func (c *Character) HasFlag(flag string) bool {
	_, found := slices.BinarySearch(c.Flags, flag)
	return found
}

// SetFlag adds flag, keeping Flags sorted and unique.
func (c *Character) SetFlag(flag string) {
	i, found := slices.BinarySearch(c.Flags, flag)
	if found {
		return
	}
	c.Flags = slices.Insert(c.Flags, i, flag)
}

// ClearFlag removes flag if present.
func (c *Character) ClearFlag(flag string) {
	if i, found := slices.BinarySearch(c.Flags, flag); found {
		c.Flags = slices.Delete(c.Flags, i, i+1)
	}
}

// Skill returns the level of a skill encoded as a "name:value" flag, or 0.
func (c *Character) Skill(name string) int {
	prefix := name + ":"
	for _, f := range c.Flags {
		if v, ok := strings.CutPrefix(f, prefix); ok {
			n, err := strconv.Atoi(v)
			if err == nil {
				return n
			}
		}
	}
	return 0
}

// SetSkill replaces any previous level of the named skill.
func (c *Character) SetSkill(name string, level int) {
	prefix := name + ":"
	c.Flags = slices.DeleteFunc(c.Flags, func(f string) bool {
		return strings.HasPrefix(f, prefix)
	})
	c.SetFlag(prefix + strconv.Itoa(level))
}
