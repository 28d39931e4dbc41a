package matching

import (
	"fmt"
	"testing"

	"edu-counsel-go/internal/model"

	"github.com/stretchr/testify/assert"
)

func program(title, location string, budget int) model.Program {
	return model.Program{ProgramTitle: title, Location: location, Budget: budget}
}

func titles(programs []model.Program) []string {
	out := make([]string, 0, len(programs))
	for _, p := range programs {
		out = append(out, p.ProgramTitle)
	}
	return out
}

func TestFilterMatchesLocationFieldAndBudget(t *testing.T) {
	programs := []model.Program{
		program("MSc Computer Science", "Toronto, Canada", 14000),
		program("MSc Computer Science", "Berlin, Germany", 30000),
		program("MBA", "Toronto, Canada", 20000),
	}
	criteria := Criteria{
		Locations:     []string{"Canada"},
		FieldsOfStudy: []string{"Computer Science"},
		Budget:        15000,
	}

	result := Filter(programs, criteria)

	assert.Equal(t, []string{"MSc Computer Science"}, titles(result))
	assert.Equal(t, "Toronto, Canada", result[0].Location)
}

func TestFilterLocationIsCaseInsensitiveAndBidirectional(t *testing.T) {
	programs := []model.Program{
		program("BSc Physics", "melbourne", 0),
		program("BSc Physics", "Sydney", 0),
	}

	// 偏好比项目地点更具体时也应命中（双向子串）
	result := Filter(programs, Criteria{Locations: []string{"Melbourne, Australia"}})

	assert.Len(t, result, 1)
	assert.Equal(t, "melbourne", result[0].Location)
}

func TestFilterStageYieldingEmptySetIsSkipped(t *testing.T) {
	programs := []model.Program{
		program("BA History", "London", 9000),
		program("BA Philosophy", "London", 8000),
	}
	criteria := Criteria{
		Locations:     []string{"Mars"},
		FieldsOfStudy: nil,
		Budget:        10000,
	}

	// 地点阶段会清空候选集，应被放弃；预算阶段继续生效
	result := Filter(programs, criteria)

	assert.Equal(t, []string{"BA History", "BA Philosophy"}, titles(result))
}

func TestFilterNeverEmptiesNonEmptyInput(t *testing.T) {
	programs := []model.Program{
		program("LLB Law", "Paris", 50000),
	}
	criteria := Criteria{
		Locations:     []string{"Tokyo"},
		FieldsOfStudy: []string{"Medicine"},
		Budget:        100,
	}

	result := Filter(programs, criteria)

	assert.Equal(t, []string{"LLB Law"}, titles(result))
}

func TestFilterEmptyCriteriaReturnsAllInOrder(t *testing.T) {
	programs := []model.Program{
		program("A", "X", 1),
		program("B", "Y", 2),
		program("C", "Z", 3),
	}

	result := Filter(programs, Criteria{})

	assert.Equal(t, []string{"A", "B", "C"}, titles(result))
}

func TestFilterCapsCandidatesPreservingOrder(t *testing.T) {
	programs := make([]model.Program, 0, MaxCandidates+10)
	for i := 0; i < MaxCandidates+10; i++ {
		programs = append(programs, program(fmt.Sprintf("Program %03d", i), "Oslo", 1000))
	}

	result := Filter(programs, Criteria{Locations: []string{"Oslo"}})

	assert.Len(t, result, MaxCandidates)
	assert.Equal(t, "Program 000", result[0].ProgramTitle)
	assert.Equal(t, fmt.Sprintf("Program %03d", MaxCandidates-1), result[MaxCandidates-1].ProgramTitle)
}

func TestFilterEmptyProgramLocationNeverMatches(t *testing.T) {
	programs := []model.Program{
		program("No Location", "", 100),
		program("With Location", "Rome", 100),
	}

	result := Filter(programs, Criteria{Locations: []string{"Rome"}})

	assert.Equal(t, []string{"With Location"}, titles(result))
}

func TestCriteriaFrom(t *testing.T) {
	student := &model.Student{
		PreferredLocations:     []string{"Canada"},
		PreferredFieldsOfStudy: []string{"Computer Science"},
		Budget:                 15000,
	}

	criteria := CriteriaFrom(student)

	assert.Equal(t, []string{"Canada"}, criteria.Locations)
	assert.Equal(t, []string{"Computer Science"}, criteria.FieldsOfStudy)
	assert.Equal(t, 15000, criteria.Budget)
}
