package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Module 表示课程体系中的一个模块，学分可以缺省。
type Module struct {
	Name    string `json:"name"`
	Credits int    `json:"credits,omitempty"`
}

// Curriculum 表示项目的课程体系。
type Curriculum struct {
	Description string   `json:"description"`
	Modules     []Module `json:"modules"`
}

// Requirements 表示项目的申请要求。
type Requirements struct {
	Academic []string `json:"academic_requirements"`
	Other    []string `json:"other_requirements"`
}

// Program 对应于数据库中的 'programs' 表。
// 对话管线只读取项目数据；写入只发生在项目管理接口中。
type Program struct {
	ID              string       `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProgramTitle    string       `gorm:"type:varchar(255);not null" json:"program_title"`
	Institution     string       `gorm:"type:varchar(255);not null" json:"institution"`
	ProgramOverview string       `gorm:"type:text" json:"program_overview"`
	Location        string       `gorm:"type:varchar(255)" json:"location"`
	ProgramType     string       `gorm:"type:varchar(32)" json:"program_type"`
	FieldOfStudy    string       `gorm:"type:varchar(255)" json:"field_of_study"`
	Budget          int          `gorm:"not null;default:0" json:"budget"`
	Duration        string       `gorm:"type:varchar(64)" json:"duration"`
	DeliveryMode    string       `gorm:"type:varchar(64)" json:"delivery_mode"`
	Curriculum      Curriculum   `gorm:"serializer:json;type:text" json:"curriculum"`
	Requirements    Requirements `gorm:"serializer:json;type:text" json:"requirements"`
	BrochurePath    string       `gorm:"type:varchar(512)" json:"brochure_path,omitempty"`
	CreatedAt       time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Program) TableName() string {
	return "programs"
}

// BeforeCreate 在插入前生成 uuid 主键。
func (p *Program) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ProgramUpdate 描述一次部分更新，nil 字段保持原值。
type ProgramUpdate struct {
	ProgramTitle    *string       `json:"program_title"`
	Institution     *string       `json:"institution"`
	ProgramOverview *string       `json:"program_overview"`
	Location        *string       `json:"location"`
	ProgramType     *string       `json:"program_type"`
	FieldOfStudy    *string       `json:"field_of_study"`
	Budget          *int          `json:"budget"`
	Duration        *string       `json:"duration"`
	DeliveryMode    *string       `json:"delivery_mode"`
	Curriculum      *Curriculum   `json:"curriculum"`
	Requirements    *Requirements `json:"requirements"`
}

// Apply 将非 nil 字段覆盖到项目记录上。
func (u *ProgramUpdate) Apply(p *Program) {
	if u.ProgramTitle != nil {
		p.ProgramTitle = *u.ProgramTitle
	}
	if u.Institution != nil {
		p.Institution = *u.Institution
	}
	if u.ProgramOverview != nil {
		p.ProgramOverview = *u.ProgramOverview
	}
	if u.Location != nil {
		p.Location = *u.Location
	}
	if u.ProgramType != nil {
		p.ProgramType = *u.ProgramType
	}
	if u.FieldOfStudy != nil {
		p.FieldOfStudy = *u.FieldOfStudy
	}
	if u.Budget != nil {
		p.Budget = *u.Budget
	}
	if u.Duration != nil {
		p.Duration = *u.Duration
	}
	if u.DeliveryMode != nil {
		p.DeliveryMode = *u.DeliveryMode
	}
	if u.Curriculum != nil {
		p.Curriculum = *u.Curriculum
	}
	if u.Requirements != nil {
		p.Requirements = *u.Requirements
	}
}
