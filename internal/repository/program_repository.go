package repository

import (
	"edu-counsel-go/internal/model"

	"gorm.io/gorm"
)

// ProgramRepository 接口定义了项目数据的持久化操作。
type ProgramRepository interface {
	Create(program *model.Program) error
	FindByID(programID string) (*model.Program, error)
	FindAll() ([]model.Program, error)
	Update(program *model.Program) error
	Delete(programID string) error
}

type programRepository struct {
	db *gorm.DB
}

// NewProgramRepository 创建一个新的 ProgramRepository 实例。
func NewProgramRepository(db *gorm.DB) ProgramRepository {
	return &programRepository{db: db}
}

func (r *programRepository) Create(program *model.Program) error {
	return r.db.Create(program).Error
}

// FindByID 根据 ID 查找项目，未找到时返回 gorm.ErrRecordNotFound。
func (r *programRepository) FindByID(programID string) (*model.Program, error) {
	var program model.Program
	err := r.db.Where("id = ?", programID).First(&program).Error
	if err != nil {
		return nil, err
	}
	return &program, nil
}

// FindAll 检索全部项目记录。对话管线每次请求都重新拉取，不做进程内缓存。
func (r *programRepository) FindAll() ([]model.Program, error) {
	var programs []model.Program
	err := r.db.Find(&programs).Error
	return programs, err
}

func (r *programRepository) Update(program *model.Program) error {
	return r.db.Save(program).Error
}

func (r *programRepository) Delete(programID string) error {
	return r.db.Where("id = ?", programID).Delete(&model.Program{}).Error
}
