// Package prompt 负责将学生档案、候选项目与对话历史组装为 LLM 的输入消息。
package prompt

import (
	"fmt"
	"strings"

	"edu-counsel-go/internal/model"
	"edu-counsel-go/pkg/llm"
)

// 固定的行为指令，要求模型只在给定候选中推荐并始终围绕升学咨询。
const counselorInstructions = `You are an empathetic educational counselor helping students find the right educational programs.

Your role is to:
1. Understand the student's qualifications, interests, and preferences from the provided profile
2. Provide personalized guidance and recommendations based on the profile
3. ONLY recommend programs from the candidate list provided below
4. Ask clarifying questions when the student's request is ambiguous
5. Be friendly, supportive, and professional
6. Focus on educational counseling only - politely redirect non-educational topics

Never ask for information that is already present in the profile.`

// Assemble 将输入组装为一条 system 消息加一条 user 消息。
// 这是一个纯函数：相同输入总是产生逐字节相同的结果，
// 指令文本与字段顺序在版本内保持稳定。
func Assemble(student *model.Student, programs []model.Program, history []model.ConversationTurn, message string, historyWindow int) []llm.Message {
	var sys strings.Builder
	sys.WriteString(counselorInstructions)
	sys.WriteString("\n\n")

	writeProfile(&sys, student)
	sys.WriteString("\n")
	writePrograms(&sys, programs)

	if historyWindow > 0 && len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	if len(history) > 0 {
		sys.WriteString("\nRecent Conversation History:\n")
		for i, turn := range history {
			fmt.Fprintf(&sys, "%d. %s: %s\n", i+1, capitalize(turn.Role), turn.Content)
		}
	}

	return []llm.Message{
		{Role: model.RoleSystem, Content: sys.String()},
		{Role: model.RoleUser, Content: message},
	}
}

func writeProfile(b *strings.Builder, s *model.Student) {
	b.WriteString("Student Information:\n")
	fmt.Fprintf(b, "Name: %s\n", s.Name)
	fmt.Fprintf(b, "Email: %s\n", s.Email)
	b.WriteString("Educational Qualifications:")
	if len(s.EducationalQualifications) == 0 {
		b.WriteString(" Not specified\n")
	} else {
		b.WriteString("\n")
		for _, q := range s.EducationalQualifications {
			fmt.Fprintf(b, "- %s (grade %s, %d)\n", q.Qualification, q.Grade, q.YearOfCompletion)
		}
	}
	fmt.Fprintf(b, "Preferred Locations: %s\n", joinOr(s.PreferredLocations, "Not specified"))
	fmt.Fprintf(b, "Preferred Program: %s\n", orDefault(s.PreferredProgram, "Not specified"))
	fmt.Fprintf(b, "Preferred Fields of Study: %s\n", joinOr(s.PreferredFieldsOfStudy, "Not specified"))
	fmt.Fprintf(b, "Budget: $%d\n", s.Budget)
	fmt.Fprintf(b, "Special Requirements: %s\n", joinOr(s.SpecialRequirements, "None"))
}

// writePrograms 序列化候选项目，只携带与推荐相关的字段。
func writePrograms(b *strings.Builder, programs []model.Program) {
	b.WriteString("Candidate Programs:\n")
	if len(programs) == 0 {
		b.WriteString("(no matching programs found)\n")
		return
	}
	for i, p := range programs {
		fmt.Fprintf(b, "%d. %s - %s (%s)\n", i+1, p.ProgramTitle, p.Institution, p.Location)
		fmt.Fprintf(b, "   Duration: %s, Cost: $%d, Delivery: %s\n", p.Duration, p.Budget, orDefault(p.DeliveryMode, "Not specified"))
		if p.ProgramOverview != "" {
			fmt.Fprintf(b, "   %s\n", p.ProgramOverview)
		}
	}
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
