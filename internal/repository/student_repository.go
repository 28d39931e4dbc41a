// Package repository 定义了与数据库进行数据交换的接口和实现。
package repository

import (
	"edu-counsel-go/internal/model"

	"gorm.io/gorm"
)

// StudentRepository 接口定义了学生数据的持久化操作。
// 对话记录通过 AppendTurn 追加到 conversation_turns 表，权威记录在数据库中。
type StudentRepository interface {
	Create(student *model.Student) error
	FindByID(studentID string) (*model.Student, error)
	FindAll() ([]model.Student, error)
	Update(student *model.Student) error
	AppendTurn(turn *model.ConversationTurn) error
	// ListTurns 按插入顺序返回对话记录；limit > 0 时只返回最近的 limit 条。
	ListTurns(studentID string, limit int) ([]model.ConversationTurn, error)
}

// studentRepository 是 StudentRepository 接口的 GORM 实现。
type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository 创建一个新的 StudentRepository 实例。
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

// Create 在数据库中创建一个新的学生记录。
func (r *studentRepository) Create(student *model.Student) error {
	return r.db.Create(student).Error
}

// FindByID 根据 ID 查找学生，未找到时返回 gorm.ErrRecordNotFound。
func (r *studentRepository) FindByID(studentID string) (*model.Student, error) {
	var student model.Student
	err := r.db.Where("id = ?", studentID).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// FindAll 从数据库中检索所有学生记录。
func (r *studentRepository) FindAll() ([]model.Student, error) {
	var students []model.Student
	err := r.db.Find(&students).Error
	return students, err
}

// Update 更新数据库中一个已存在的学生记录。
func (r *studentRepository) Update(student *model.Student) error {
	return r.db.Save(student).Error
}

// AppendTurn 向对话记录追加一条消息。记录只追加，从不修改或删除。
func (r *studentRepository) AppendTurn(turn *model.ConversationTurn) error {
	return r.db.Create(turn).Error
}

// ListTurns 按插入顺序（id 递增）返回一个学生的对话记录。
func (r *studentRepository) ListTurns(studentID string, limit int) ([]model.ConversationTurn, error) {
	var turns []model.ConversationTurn
	query := r.db.Where("student_id = ?", studentID)
	if limit > 0 {
		// 先按 id 倒序取最近 limit 条，再反转回插入顺序
		err := query.Order("id DESC").Limit(limit).Find(&turns).Error
		if err != nil {
			return nil, err
		}
		for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
			turns[i], turns[j] = turns[j], turns[i]
		}
		return turns, nil
	}
	err := query.Order("id ASC").Find(&turns).Error
	return turns, err
}
