package prompt

import (
	"strings"
	"testing"

	"edu-counsel-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStudent() *model.Student {
	return &model.Student{
		Name:  "Ada",
		Email: "ada@example.com",
		EducationalQualifications: []model.Qualification{
			{Qualification: "High School Diploma", Grade: "A", YearOfCompletion: 2022},
		},
		PreferredLocations:     []string{"Canada", "Germany"},
		PreferredProgram:       model.LevelPostgraduate,
		PreferredFieldsOfStudy: []string{"Computer Science"},
		Budget:                 15000,
	}
}

func samplePrograms() []model.Program {
	return []model.Program{
		{
			ProgramTitle:    "MSc Computer Science",
			Institution:     "University of Toronto",
			Location:        "Toronto, Canada",
			Duration:        "2 years",
			Budget:          14000,
			DeliveryMode:    "on-campus",
			ProgramOverview: "Research-oriented graduate program.",
		},
	}
}

func TestAssembleIsDeterministic(t *testing.T) {
	student := sampleStudent()
	programs := samplePrograms()
	history := []model.ConversationTurn{
		{Role: model.RoleUser, Content: "Hello"},
		{Role: model.RoleAssistant, Content: "Hi, how can I help?"},
	}

	first := Assemble(student, programs, history, "Which program fits me?", 10)
	second := Assemble(student, programs, history, "Which program fits me?", 10)

	assert.Equal(t, first, second)
}

func TestAssembleStructure(t *testing.T) {
	messages := Assemble(sampleStudent(), samplePrograms(), nil, "Which program fits me?", 10)

	require.Len(t, messages, 2)
	assert.Equal(t, model.RoleSystem, messages[0].Role)
	assert.Equal(t, model.RoleUser, messages[1].Role)
	assert.Equal(t, "Which program fits me?", messages[1].Content)

	sys := messages[0].Content
	assert.Contains(t, sys, "ONLY recommend programs from the candidate list")
	assert.Contains(t, sys, "Name: Ada")
	assert.Contains(t, sys, "- High School Diploma (grade A, 2022)")
	assert.Contains(t, sys, "Preferred Locations: Canada, Germany")
	assert.Contains(t, sys, "Budget: $15000")
	assert.Contains(t, sys, "1. MSc Computer Science - University of Toronto (Toronto, Canada)")
	assert.Contains(t, sys, "Duration: 2 years, Cost: $14000, Delivery: on-campus")
	assert.Contains(t, sys, "Research-oriented graduate program.")
}

func TestAssembleEmptyProfileUsesPlaceholders(t *testing.T) {
	student := &model.Student{Name: "Bob", Email: "bob@example.com"}

	messages := Assemble(student, nil, nil, "hi", 10)

	sys := messages[0].Content
	assert.Contains(t, sys, "Educational Qualifications: Not specified")
	assert.Contains(t, sys, "Preferred Program: Not specified")
	assert.Contains(t, sys, "Special Requirements: None")
	assert.Contains(t, sys, "(no matching programs found)")
}

func TestAssembleTrimsHistoryToWindow(t *testing.T) {
	var history []model.ConversationTurn
	for i := 0; i < 15; i++ {
		history = append(history, model.ConversationTurn{
			Role:    model.RoleUser,
			Content: "message-" + strings.Repeat("x", i+1),
		})
	}

	messages := Assemble(sampleStudent(), nil, history, "latest", 10)

	sys := messages[0].Content
	// 只保留最近 10 条：前 5 条被裁掉
	assert.NotContains(t, sys, "message-x\n")
	assert.Contains(t, sys, "message-"+strings.Repeat("x", 15))
	assert.Contains(t, sys, "Recent Conversation History:")
	// 当前消息只出现在最后的 user 消息中，不进入历史
	assert.NotContains(t, sys, "latest")
}

func TestAssembleCapitalizesRoles(t *testing.T) {
	history := []model.ConversationTurn{
		{Role: model.RoleUser, Content: "hello"},
		{Role: model.RoleAssistant, Content: "hi"},
	}

	messages := Assemble(sampleStudent(), nil, history, "next", 10)

	sys := messages[0].Content
	assert.Contains(t, sys, "1. User: hello")
	assert.Contains(t, sys, "2. Assistant: hi")
}
