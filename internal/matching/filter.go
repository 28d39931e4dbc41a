// Package matching 实现候选项目的软过滤管线。
package matching

import (
	"strings"

	"edu-counsel-go/internal/model"
)

// MaxCandidates 限制过滤结果的条数，约束下游 prompt 的体积。
const MaxCandidates = 50

// Criteria 是从学生档案派生的过滤条件，每次请求重新计算，不做持久化。
type Criteria struct {
	Locations     []string
	FieldsOfStudy []string
	Budget        int
}

// CriteriaFrom 从学生档案提取过滤条件。
func CriteriaFrom(student *model.Student) Criteria {
	return Criteria{
		Locations:     student.PreferredLocations,
		FieldsOfStudy: student.PreferredFieldsOfStudy,
		Budget:        student.Budget,
	}
}

// stage 是管线中的一个可选过滤阶段。match 为 nil 表示该阶段不启用。
type stage struct {
	name  string
	match func(p *model.Program) bool
}

// Filter 依次应用各过滤阶段逐步收窄候选集。
// 任何阶段得到空集时放弃该阶段而保留收窄前的集合，因此只要输入非空，
// 输出一定非空，且始终是输入的保序子集。本阶段不做任何打分或排序。
func Filter(programs []model.Program, criteria Criteria) []model.Program {
	stages := []stage{
		{name: "location", match: locationStage(criteria.Locations)},
		{name: "field_of_study", match: fieldStage(criteria.FieldsOfStudy)},
		{name: "budget", match: budgetStage(criteria.Budget)},
	}

	result := programs
	for _, st := range stages {
		if st.match == nil {
			continue
		}
		narrowed := apply(result, st.match)
		if len(narrowed) > 0 {
			result = narrowed
		}
	}

	if len(result) > MaxCandidates {
		result = result[:MaxCandidates]
	}
	return result
}

func apply(programs []model.Program, match func(p *model.Program) bool) []model.Program {
	var out []model.Program
	for i := range programs {
		if match(&programs[i]) {
			out = append(out, programs[i])
		}
	}
	return out
}

// locationStage 保留地点与任一偏好地点（双向、大小写不敏感）子串匹配的项目。
func locationStage(locations []string) func(p *model.Program) bool {
	if len(locations) == 0 {
		return nil
	}
	wants := lowerAll(locations)
	return func(p *model.Program) bool {
		loc := strings.ToLower(p.Location)
		if loc == "" {
			return false
		}
		for _, want := range wants {
			if want == "" {
				continue
			}
			if strings.Contains(loc, want) || strings.Contains(want, loc) {
				return true
			}
		}
		return false
	}
}

// fieldStage 保留标题包含任一偏好专业方向（大小写不敏感）的项目。
func fieldStage(fields []string) func(p *model.Program) bool {
	if len(fields) == 0 {
		return nil
	}
	wants := lowerAll(fields)
	return func(p *model.Program) bool {
		title := strings.ToLower(p.ProgramTitle)
		for _, want := range wants {
			if want != "" && strings.Contains(title, want) {
				return true
			}
		}
		return false
	}
}

// budgetStage 保留费用不超过预算的项目。
func budgetStage(budget int) func(p *model.Program) bool {
	if budget <= 0 {
		return nil
	}
	return func(p *model.Program) bool {
		return p.Budget <= budget
	}
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}
