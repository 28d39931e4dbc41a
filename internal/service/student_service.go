package service

import (
	"errors"

	"edu-counsel-go/internal/model"
	"edu-counsel-go/internal/repository"
)

// 输入在任何外部调用之前被拒绝时返回的校验错误。
var (
	ErrInvalidProgramLevel = errors.New("preferred program must be one of: undergraduate, postgraduate, phd")
	ErrNegativeBudget      = errors.New("budget must be non-negative")
)

// StudentService 接口定义了学生档案相关的业务操作。
type StudentService interface {
	Create(student *model.Student) (*model.Student, error)
	GetByID(studentID string) (*model.Student, error)
	Update(studentID string, update *model.StudentUpdate) (*model.Student, error)
	GetConversation(studentID string) ([]model.ConversationTurn, error)
}

type studentService struct {
	studentRepo repository.StudentRepository
}

// NewStudentService 创建一个新的 StudentService 实例。
func NewStudentService(studentRepo repository.StudentRepository) StudentService {
	return &studentService{studentRepo: studentRepo}
}

// Create 校验并创建学生档案。新档案的对话记录为空。
func (s *studentService) Create(student *model.Student) (*model.Student, error) {
	if student.PreferredProgram != "" && !model.IsValidProgramLevel(student.PreferredProgram) {
		return nil, ErrInvalidProgramLevel
	}
	if student.Budget < 0 {
		return nil, ErrNegativeBudget
	}
	if err := s.studentRepo.Create(student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *studentService) GetByID(studentID string) (*model.Student, error) {
	return s.studentRepo.FindByID(studentID)
}

// Update 应用一次部分更新，只覆盖请求中出现的字段。
func (s *studentService) Update(studentID string, update *model.StudentUpdate) (*model.Student, error) {
	student, err := s.studentRepo.FindByID(studentID)
	if err != nil {
		return nil, err
	}
	if update.Empty() {
		return student, nil
	}
	if update.PreferredProgram != nil && !model.IsValidProgramLevel(*update.PreferredProgram) {
		return nil, ErrInvalidProgramLevel
	}
	if update.Budget != nil && *update.Budget < 0 {
		return nil, ErrNegativeBudget
	}
	update.Apply(student)
	if err := s.studentRepo.Update(student); err != nil {
		return nil, err
	}
	return student, nil
}

// GetConversation 返回学生的完整对话记录（权威来源：数据库）。
func (s *studentService) GetConversation(studentID string) ([]model.ConversationTurn, error) {
	if _, err := s.studentRepo.FindByID(studentID); err != nil {
		return nil, err
	}
	return s.studentRepo.ListTurns(studentID, 0)
}
