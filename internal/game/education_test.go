package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/user/vida-loka-life/internal/types"
)

func TestAgeEducationLadder(t *testing.T) {
	tests := []struct {
		age     int
		from    types.Education
		want    types.Education
		changed bool
	}{
		{5, types.EducationNone, types.EducationNone, false},
		{6, types.EducationNone, types.EducationElementary, true},
		{11, types.EducationElementary, types.EducationMiddleSchool, true},
		{14, types.EducationMiddleSchool, types.EducationHighSchool, true},
		{17, types.EducationHighSchool, types.EducationHighSchool, false},
		{18, types.EducationHighSchool, types.EducationHighSchoolGraduate, true},
		{30, types.EducationHighSchoolGraduate, types.EducationHighSchoolGraduate, false},
		{22, types.EducationUniversity, types.EducationUniversityGraduate, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			c := newCharacter(tt.age)
			c.Education = tt.from

			news, changed := AgeEducation{}.Progress(c)
			assert.Equal(t, tt.want, c.Education)
			assert.Equal(t, tt.changed, changed)
			if changed {
				assert.NotEmpty(t, news)
			}
		})
	}
}

func TestProgressUpdatesGPA(t *testing.T) {
	c := newCharacter(12)
	c.Education = types.EducationMiddleSchool
	c.Stats.Smarts = 75

	AgeEducation{}.Progress(c)
	assert.InDelta(t, 3.0, c.GPA, 1e-9)
	assert.Equal(t, "3.00", FormatGPA(c.GPA))
}

func TestGPA(t *testing.T) {
	assert.InDelta(t, 0.0, GPA(0), 1e-9)
	assert.InDelta(t, MaxGPA, GPA(100), 1e-9)
	assert.InDelta(t, MaxGPA, GPA(140), 1e-9)
	assert.InDelta(t, 2.0, GPA(50), 1e-9)
}
