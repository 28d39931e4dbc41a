// Package model 定义了与数据库表对应的 Go 结构体。
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 学生偏好的项目层级，取值固定为以下三种。
const (
	LevelUndergraduate = "undergraduate"
	LevelPostgraduate  = "postgraduate"
	LevelPhD           = "phd"
)

// IsValidProgramLevel 判断项目层级取值是否合法。
func IsValidProgramLevel(level string) bool {
	switch level {
	case LevelUndergraduate, LevelPostgraduate, LevelPhD:
		return true
	}
	return false
}

// Qualification 表示一条学历记录。
type Qualification struct {
	Qualification    string `json:"qualification"`
	Grade            string `json:"grade"`
	YearOfCompletion int    `json:"year_of_completion"`
}

// Student 对应于数据库中的 'students' 表。
// 列表类字段以 JSON 序列化存储；对话记录在独立的 conversation_turns 表中，
// 只追加、不修改。
type Student struct {
	ID                        string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name                      string          `gorm:"type:varchar(255);not null" json:"name"`
	Email                     string          `gorm:"type:varchar(255)" json:"email"`
	EducationalQualifications []Qualification `gorm:"serializer:json;type:text" json:"educational_qualifications"`
	PreferredLocations        []string        `gorm:"serializer:json;type:text" json:"preferred_location"`
	PreferredProgram          string          `gorm:"type:varchar(32)" json:"preferred_program"`
	PreferredFieldsOfStudy    []string        `gorm:"serializer:json;type:text" json:"preferred_field_of_study"`
	Budget                    int             `gorm:"not null;default:0" json:"budget"`
	SpecialRequirements       []string        `gorm:"serializer:json;type:text" json:"special_requirements"`
	CreatedAt                 time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                 time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Student) TableName() string {
	return "students"
}

// BeforeCreate 在插入前生成 uuid 主键。
func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// StudentUpdate 描述一次部分更新，nil 字段保持原值。
type StudentUpdate struct {
	Name                      *string          `json:"name"`
	Email                     *string          `json:"email"`
	EducationalQualifications *[]Qualification `json:"educational_qualifications"`
	PreferredLocations        *[]string        `json:"preferred_location"`
	PreferredProgram          *string          `json:"preferred_program"`
	PreferredFieldsOfStudy    *[]string        `json:"preferred_field_of_study"`
	Budget                    *int             `json:"budget"`
	SpecialRequirements       *[]string        `json:"special_requirements"`
}

// Apply 将非 nil 字段覆盖到学生记录上。
func (u *StudentUpdate) Apply(s *Student) {
	if u.Name != nil {
		s.Name = *u.Name
	}
	if u.Email != nil {
		s.Email = *u.Email
	}
	if u.EducationalQualifications != nil {
		s.EducationalQualifications = *u.EducationalQualifications
	}
	if u.PreferredLocations != nil {
		s.PreferredLocations = *u.PreferredLocations
	}
	if u.PreferredProgram != nil {
		s.PreferredProgram = *u.PreferredProgram
	}
	if u.PreferredFieldsOfStudy != nil {
		s.PreferredFieldsOfStudy = *u.PreferredFieldsOfStudy
	}
	if u.Budget != nil {
		s.Budget = *u.Budget
	}
	if u.SpecialRequirements != nil {
		s.SpecialRequirements = *u.SpecialRequirements
	}
}

// Empty 判断本次更新是否没有任何字段。
func (u *StudentUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.EducationalQualifications == nil &&
		u.PreferredLocations == nil && u.PreferredProgram == nil &&
		u.PreferredFieldsOfStudy == nil && u.Budget == nil && u.SpecialRequirements == nil
}
