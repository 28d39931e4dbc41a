package service

import (
	"testing"

	"edu-counsel-go/internal/config"
	"edu-counsel-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memProgramRepo 是 ProgramRepository 的有状态内存实现。
type memProgramRepo struct {
	programs map[string]*model.Program
}

func newMemProgramRepo(programs ...*model.Program) *memProgramRepo {
	repo := &memProgramRepo{programs: map[string]*model.Program{}}
	for _, p := range programs {
		repo.programs[p.ID] = p
	}
	return repo
}

func (r *memProgramRepo) Create(program *model.Program) error {
	_ = program.BeforeCreate(nil)
	r.programs[program.ID] = program
	return nil
}

func (r *memProgramRepo) FindByID(programID string) (*model.Program, error) {
	program, ok := r.programs[programID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return program, nil
}

func (r *memProgramRepo) FindAll() ([]model.Program, error) {
	var out []model.Program
	for _, p := range r.programs {
		out = append(out, *p)
	}
	return out, nil
}

func (r *memProgramRepo) Update(program *model.Program) error {
	r.programs[program.ID] = program
	return nil
}

func (r *memProgramRepo) Delete(programID string) error {
	delete(r.programs, programID)
	return nil
}

func newProgramServiceForTest(repo *memProgramRepo) ProgramService {
	return NewProgramService(repo, config.MinIOConfig{BucketName: "test-bucket"})
}

func TestProgramCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		program *model.Program
		wantErr error
	}{
		{
			name:    "invalid program type",
			program: &model.Program{ProgramTitle: "MSc CS", ProgramType: "bootcamp"},
			wantErr: ErrInvalidProgramLevel,
		},
		{
			name:    "negative budget",
			program: &model.Program{ProgramTitle: "MSc CS", Budget: -500},
			wantErr: ErrNegativeBudget,
		},
		{
			name:    "valid with type",
			program: &model.Program{ProgramTitle: "MSc CS", ProgramType: model.LevelPostgraduate, Budget: 14000},
		},
		{
			name:    "valid without type",
			program: &model.Program{ProgramTitle: "Open Course"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemProgramRepo()
			svc := newProgramServiceForTest(repo)

			created, err := svc.Create(tt.program)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				// 校验失败不得产生任何持久化
				assert.Empty(t, repo.programs)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, created.ID)
			assert.Contains(t, repo.programs, created.ID)
		})
	}
}

func TestProgramCreateThenGetRoundTrip(t *testing.T) {
	repo := newMemProgramRepo()
	svc := newProgramServiceForTest(repo)

	created, err := svc.Create(&model.Program{
		ProgramTitle: "MSc Computer Science",
		Institution:  "University of Toronto",
		Budget:       14000,
	})
	require.NoError(t, err)

	got, err := svc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "MSc Computer Science", got.ProgramTitle)
	assert.Equal(t, "University of Toronto", got.Institution)
}

func TestProgramUpdatePartialLeavesOtherFieldsIntact(t *testing.T) {
	repo := newMemProgramRepo(&model.Program{
		ID:           "program-1",
		ProgramTitle: "MSc CS",
		Institution:  "UofT",
		Location:     "Toronto, Canada",
		Budget:       14000,
	})
	svc := newProgramServiceForTest(repo)

	budget := 16000
	updated, err := svc.Update("program-1", &model.ProgramUpdate{Budget: &budget})

	require.NoError(t, err)
	assert.Equal(t, 16000, updated.Budget)
	assert.Equal(t, "MSc CS", updated.ProgramTitle)
	assert.Equal(t, "UofT", updated.Institution)
	assert.Equal(t, "Toronto, Canada", updated.Location)
}

func TestProgramUpdateValidation(t *testing.T) {
	tests := []struct {
		name    string
		update  *model.ProgramUpdate
		wantErr error
	}{
		{name: "invalid type", update: &model.ProgramUpdate{ProgramType: strPtr("certificate")}, wantErr: ErrInvalidProgramLevel},
		{name: "negative budget", update: &model.ProgramUpdate{Budget: intPtr(-1)}, wantErr: ErrNegativeBudget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemProgramRepo(&model.Program{ID: "program-1", ProgramTitle: "MSc CS", Budget: 14000})
			svc := newProgramServiceForTest(repo)

			_, err := svc.Update("program-1", tt.update)

			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 14000, repo.programs["program-1"].Budget)
			assert.Empty(t, repo.programs["program-1"].ProgramType)
		})
	}
}

func TestProgramUpdateUnknownReturnsNotFound(t *testing.T) {
	svc := newProgramServiceForTest(newMemProgramRepo())

	budget := 1000
	_, err := svc.Update("missing", &model.ProgramUpdate{Budget: &budget})

	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProgramDelete(t *testing.T) {
	repo := newMemProgramRepo(&model.Program{ID: "program-1", ProgramTitle: "MSc CS"})
	svc := newProgramServiceForTest(repo)

	require.NoError(t, svc.Delete("program-1"))
	assert.Empty(t, repo.programs)

	err := svc.Delete("program-1")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProgramBrochureURLWithoutBrochure(t *testing.T) {
	repo := newMemProgramRepo(&model.Program{ID: "program-1", ProgramTitle: "MSc CS"})
	svc := newProgramServiceForTest(repo)

	_, err := svc.BrochureURL("program-1")

	require.ErrorIs(t, err, ErrNoBrochure)
}
