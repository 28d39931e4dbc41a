package model

// ProgramDocument 是写入 Elasticsearch 程序索引的文档结构。
type ProgramDocument struct {
	ProgramID       string `json:"program_id"`
	ProgramTitle    string `json:"program_title"`
	Institution     string `json:"institution"`
	ProgramOverview string `json:"program_overview"`
	Location        string `json:"location"`
	ProgramType     string `json:"program_type"`
	FieldOfStudy    string `json:"field_of_study"`
	Budget          int    `json:"budget"`
	Duration        string `json:"duration"`
	DeliveryMode    string `json:"delivery_mode"`
}

// DocumentFromProgram 由项目记录构建索引文档。
func DocumentFromProgram(p *Program) ProgramDocument {
	return ProgramDocument{
		ProgramID:       p.ID,
		ProgramTitle:    p.ProgramTitle,
		Institution:     p.Institution,
		ProgramOverview: p.ProgramOverview,
		Location:        p.Location,
		ProgramType:     p.ProgramType,
		FieldOfStudy:    p.FieldOfStudy,
		Budget:          p.Budget,
		Duration:        p.Duration,
		DeliveryMode:    p.DeliveryMode,
	}
}
