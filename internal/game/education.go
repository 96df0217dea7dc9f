package game

import (
	"fmt"

	"github.com/user/vida-loka-life/internal/types"
)

// EducationPolicy moves the protagonist through school once a year.
// Progress mutates c and returns a news line when the stage changed.
type EducationPolicy interface {
	Progress(c *types.Character) (news string, changed bool)
}

// MaxGPA is the top of the grade scale.
const MaxGPA = 4.0

// step is one rung of the schooling ladder.
type step struct {
	from  types.Education
	to    types.Education
	age   int
	label string
}

var ladder = []step{
	{types.EducationNone, types.EducationElementary, 6, "You started elementary school."},
	{types.EducationElementary, types.EducationMiddleSchool, 11, "You moved up to middle school."},
	{types.EducationMiddleSchool, types.EducationHighSchool, 14, "You started high school."},
	{types.EducationHighSchool, types.EducationHighSchoolGraduate, 18, "You graduated from high school!"},
	{types.EducationUniversity, types.EducationUniversityGraduate, 22, "You graduated from university!"},
}

// AgeEducation advances schooling purely on age thresholds. University is
// only entered through an event choice.
type AgeEducation struct{}

// Progress implements EducationPolicy.
func (AgeEducation) Progress(c *types.Character) (string, bool) {
	news, changed := "", false
	for _, s := range ladder {
		if c.Education == s.from && c.Age >= s.age {
			c.Education = s.to
			news, changed = s.label, true
			break
		}
	}
	if c.Education.InSchool() {
		c.GPA = GPA(c.Stats.Smarts)
	}
	return news, changed
}

// GPA maps smarts onto the 0-4 grade scale.
func GPA(smarts int) float64 {
	return float64(Clamp(smarts, StatMin, StatMax)) * MaxGPA / StatMax
}

// FormatGPA renders a GPA for display.
func FormatGPA(gpa float64) string {
	return fmt.Sprintf("%.2f", gpa)
}
