package service

import (
	"testing"

	"edu-counsel-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestStudentCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		student *model.Student
		wantErr error
	}{
		{
			name:    "invalid preferred level",
			student: &model.Student{Name: "Ada", Email: "ada@example.com", PreferredProgram: "diploma"},
			wantErr: ErrInvalidProgramLevel,
		},
		{
			name:    "negative budget",
			student: &model.Student{Name: "Ada", Email: "ada@example.com", Budget: -1},
			wantErr: ErrNegativeBudget,
		},
		{
			name:    "valid with level",
			student: &model.Student{Name: "Ada", Email: "ada@example.com", PreferredProgram: model.LevelPostgraduate, Budget: 15000},
		},
		{
			name:    "valid without level",
			student: &model.Student{Name: "Bob", Email: "bob@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeStudentRepo()
			svc := NewStudentService(repo)

			created, err := svc.Create(tt.student)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				// 校验失败不得产生任何持久化
				assert.Empty(t, repo.students)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, created.ID)
			assert.Contains(t, repo.students, created.ID)
		})
	}
}

func TestStudentCreateThenGetRoundTrip(t *testing.T) {
	repo := newFakeStudentRepo()
	svc := NewStudentService(repo)

	created, err := svc.Create(&model.Student{Name: "Ada", Email: "ada@example.com", Budget: 15000})
	require.NoError(t, err)

	got, err := svc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, 15000, got.Budget)
}

func TestStudentGetByIDUnknownReturnsNotFound(t *testing.T) {
	svc := NewStudentService(newFakeStudentRepo())

	_, err := svc.GetByID("missing")

	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStudentUpdatePartialLeavesOtherFieldsIntact(t *testing.T) {
	student := &model.Student{
		ID:                     "student-1",
		Name:                   "Ada",
		Email:                  "ada@example.com",
		PreferredProgram:       model.LevelUndergraduate,
		PreferredLocations:     []string{"Canada"},
		PreferredFieldsOfStudy: []string{"Computer Science"},
		Budget:                 15000,
	}
	repo := newFakeStudentRepo(student)
	svc := NewStudentService(repo)

	budget := 20000
	updated, err := svc.Update("student-1", &model.StudentUpdate{Budget: &budget})

	require.NoError(t, err)
	assert.Equal(t, 20000, updated.Budget)
	// 请求中未出现的字段保持原值
	assert.Equal(t, "Ada", updated.Name)
	assert.Equal(t, model.LevelUndergraduate, updated.PreferredProgram)
	assert.Equal(t, []string{"Canada"}, updated.PreferredLocations)
	assert.Equal(t, []string{"Computer Science"}, updated.PreferredFieldsOfStudy)
}

func TestStudentUpdateValidation(t *testing.T) {
	tests := []struct {
		name    string
		update  *model.StudentUpdate
		wantErr error
	}{
		{name: "invalid level", update: &model.StudentUpdate{PreferredProgram: strPtr("masterclass")}, wantErr: ErrInvalidProgramLevel},
		{name: "negative budget", update: &model.StudentUpdate{Budget: intPtr(-100)}, wantErr: ErrNegativeBudget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeStudentRepo(testStudent())
			svc := NewStudentService(repo)

			_, err := svc.Update("student-1", tt.update)

			require.ErrorIs(t, err, tt.wantErr)
			// 被拒绝的更新不得落库
			assert.Equal(t, 15000, repo.students["student-1"].Budget)
			assert.Empty(t, repo.students["student-1"].PreferredProgram)
		})
	}
}

func TestStudentUpdateUnknownReturnsNotFound(t *testing.T) {
	svc := NewStudentService(newFakeStudentRepo())

	budget := 1000
	_, err := svc.Update("missing", &model.StudentUpdate{Budget: &budget})

	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStudentUpdateEmptyIsNoOp(t *testing.T) {
	repo := newFakeStudentRepo(testStudent())
	svc := NewStudentService(repo)

	updated, err := svc.Update("student-1", &model.StudentUpdate{})

	require.NoError(t, err)
	assert.Equal(t, "Ada", updated.Name)
	assert.Equal(t, 15000, updated.Budget)
}

func TestStudentGetConversationUnknownReturnsNotFound(t *testing.T) {
	svc := NewStudentService(newFakeStudentRepo())

	_, err := svc.GetConversation("missing")

	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStudentGetConversationReturnsFullLog(t *testing.T) {
	repo := newFakeStudentRepo(testStudent())
	repo.turns = []model.ConversationTurn{
		{StudentID: "student-1", Role: model.RoleUser, Content: "hi"},
		{StudentID: "student-1", Role: model.RoleAssistant, Content: "hello"},
		{StudentID: "other", Role: model.RoleUser, Content: "not mine"},
	}
	svc := NewStudentService(repo)

	turns, err := svc.GetConversation("student-1")

	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "hi", turns[0].Content)
	assert.Equal(t, "hello", turns[1].Content)
}
