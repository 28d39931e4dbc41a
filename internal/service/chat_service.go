// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"edu-counsel-go/internal/matching"
	"edu-counsel-go/internal/model"
	"edu-counsel-go/internal/prompt"
	"edu-counsel-go/internal/repository"
	"edu-counsel-go/pkg/llm"
	"edu-counsel-go/pkg/log"
)

// TurnResult 是一次对话交互的结果。
// Success 为 false 表示网关调用失败（Degraded）；HTTP 层仍返回 200。
type TurnResult struct {
	Success  bool
	Response string
	Error    string
}

// AnalyzeResult 是一次结构化信息提取的结果。
type AnalyzeResult struct {
	Success       bool
	ExtractedData map[string]interface{}
	Error         string
}

// ChatService 定义了对话编排的接口。
type ChatService interface {
	// HandleTurn 处理一次对话交互：查学生 -> 过滤项目 -> 组装 prompt ->
	// 调用网关 -> 持久化本轮消息。学生不存在时返回 gorm.ErrRecordNotFound。
	HandleTurn(ctx context.Context, studentID, text string) (*TurnResult, error)
	// AnalyzeInput 从自由文本中提取结构化档案信息并应用为部分更新。
	// 已被 HandleTurn 的对话路径取代，保留用于兼容旧客户端。
	AnalyzeInput(ctx context.Context, studentID, text string) (*AnalyzeResult, error)
}

type chatService struct {
	studentRepo   repository.StudentRepository
	programRepo   repository.ProgramRepository
	cache         repository.ConversationCache
	llmClient     llm.Client
	historyWindow int
}

// NewChatService 创建一个新的 ChatService 实例。
func NewChatService(studentRepo repository.StudentRepository, programRepo repository.ProgramRepository, cache repository.ConversationCache, llmClient llm.Client, historyWindow int) ChatService {
	if historyWindow <= 0 {
		historyWindow = 10
	}
	return &chatService{
		studentRepo:   studentRepo,
		programRepo:   programRepo,
		cache:         cache,
		llmClient:     llmClient,
		historyWindow: historyWindow,
	}
}

// HandleTurn 按固定顺序执行一次交互，链路中任何外部失败都终止本次请求，
// 不做重试。步骤 2 与 6 之间进程崩溃会留下一条没有回复的 user 消息，
// 这是接受的结果，没有恢复机制。
func (s *chatService) HandleTurn(ctx context.Context, studentID, text string) (*TurnResult, error) {
	// 1. 查找学生；未找到直接短路，后续阶段不会执行。
	student, err := s.studentRepo.FindByID(studentID)
	if err != nil {
		return nil, err
	}

	// 2. 在追加本轮消息前取历史快照，prompt 中不包含当前消息。
	history := s.loadHistory(ctx, studentID)

	// 3. 追加 user 消息。写入失败只记录日志，不终止本轮。
	s.appendTurn(ctx, studentID, model.RoleUser, text)

	// 4. 每次请求都重新拉取项目全集并过滤。
	programs, err := s.programRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load programs: %w", err)
	}
	candidates := matching.Filter(programs, matching.CriteriaFrom(student))

	// 5. 组装 prompt 并调用网关。
	messages := prompt.Assemble(student, candidates, history, text, s.historyWindow)
	answer, err := s.llmClient.Complete(ctx, messages, nil)
	if err != nil {
		log.Errorf("chat: LLM gateway call failed for student %s: %v", studentID, err)
		s.appendTurn(ctx, studentID, model.RoleSystem, "Error in chat: "+err.Error())
		return &TurnResult{Success: false, Error: err.Error()}, nil
	}

	// 6. 追加 assistant 回复并返回。
	s.appendTurn(ctx, studentID, model.RoleAssistant, answer)
	return &TurnResult{Success: true, Response: answer}, nil
}

const extractionPromptTemplate = `Extract the following information from the student's input:
- Educational qualifications (qualification, grade, year of completion)
- Preferred locations for study
- Preferred program level (undergraduate, postgraduate or phd)
- Preferred fields of study
- Budget
- Special requirements

Format the response as a JSON object with these keys:
educational_qualifications, preferred_location, preferred_program, preferred_field_of_study, budget, special_requirements.

For educational_qualifications, use an array of objects with qualification, grade and year_of_completion properties.
Omit any key for which the input contains no information.

Student Input: %s

JSON Response:`

// AnalyzeInput 调用网关的 JSON 提取路径并将结果映射为部分档案更新。
func (s *chatService) AnalyzeInput(ctx context.Context, studentID, text string) (*AnalyzeResult, error) {
	student, err := s.studentRepo.FindByID(studentID)
	if err != nil {
		return nil, err
	}

	s.appendTurn(ctx, studentID, model.RoleUser, text)

	// 提取用低温度，减少输出里 JSON 之外的内容。
	temperature := 0.1
	maxTokens := 1000
	messages := []llm.Message{
		{Role: model.RoleSystem, Content: "You are an AI assistant that extracts structured information from student inputs."},
		{Role: model.RoleUser, Content: fmt.Sprintf(extractionPromptTemplate, text)},
	}
	answer, err := s.llmClient.Complete(ctx, messages, &llm.GenerationParams{Temperature: &temperature, MaxTokens: &maxTokens})
	if err != nil {
		log.Errorf("analyze: LLM gateway call failed for student %s: %v", studentID, err)
		s.appendTurn(ctx, studentID, model.RoleSystem, "Error processing input: "+err.Error())
		return &AnalyzeResult{Success: false, Error: err.Error()}, nil
	}

	extracted, err := llm.ExtractJSON(answer)
	if err != nil {
		log.Errorf("analyze: failed to parse extraction response for student %s: %v", studentID, err)
		s.appendTurn(ctx, studentID, model.RoleSystem, "Error processing input: "+err.Error())
		return &AnalyzeResult{Success: false, Error: err.Error()}, nil
	}

	update := updateFromExtraction(extracted)
	if !update.Empty() {
		update.Apply(student)
		if err := s.studentRepo.Update(student); err != nil {
			return nil, fmt.Errorf("failed to update student profile: %w", err)
		}
	}

	s.appendTurn(ctx, studentID, model.RoleAssistant,
		"Thank you for providing this information. I've updated your profile with these details.")
	return &AnalyzeResult{Success: true, ExtractedData: extracted}, nil
}

// loadHistory 优先读缓存，缓存不可用或为空时回退数据库。
func (s *chatService) loadHistory(ctx context.Context, studentID string) []model.ConversationTurn {
	turns, err := s.cache.GetRecent(ctx, studentID, s.historyWindow)
	if err != nil {
		log.Warnf("chat: recent-turn cache unavailable for student %s: %v", studentID, err)
	}
	if len(turns) > 0 {
		return turns
	}
	turns, err = s.studentRepo.ListTurns(studentID, s.historyWindow)
	if err != nil {
		log.Errorf("chat: failed to load conversation history for student %s: %v", studentID, err)
		return []model.ConversationTurn{}
	}
	return turns
}

// appendTurn 把一条消息写入权威记录与缓存，两者都尽力而为。
func (s *chatService) appendTurn(ctx context.Context, studentID, role, content string) {
	turn := model.ConversationTurn{StudentID: studentID, Role: role, Content: content}
	if err := s.studentRepo.AppendTurn(&turn); err != nil {
		log.Errorf("chat: failed to persist %s turn for student %s: %v", role, studentID, err)
	}
	if err := s.cache.Append(ctx, studentID, turn); err != nil {
		log.Warnf("chat: failed to cache %s turn for student %s: %v", role, studentID, err)
	}
}

// updateFromExtraction 在系统边界把松散的提取结果规范化为类型化的部分更新，
// 下游不再做类型嗅探。字符串与列表两种形态的地点都接受（历史数据两者都有）。
func updateFromExtraction(extracted map[string]interface{}) *model.StudentUpdate {
	update := &model.StudentUpdate{}

	if v, ok := extracted["preferred_location"]; ok {
		if locations := toStringList(v); len(locations) > 0 {
			update.PreferredLocations = &locations
		}
	}
	if v, ok := extracted["preferred_field_of_study"]; ok {
		if fields := toStringList(v); len(fields) > 0 {
			update.PreferredFieldsOfStudy = &fields
		}
	}
	if v, ok := extracted["special_requirements"]; ok {
		if reqs := toStringList(v); len(reqs) > 0 {
			update.SpecialRequirements = &reqs
		}
	}
	if v, ok := extracted["preferred_program"].(string); ok && model.IsValidProgramLevel(v) {
		update.PreferredProgram = &v
	}
	if v, ok := extracted["budget"].(float64); ok && v >= 0 {
		budget := int(v)
		update.Budget = &budget
	}
	if v, ok := extracted["educational_qualifications"]; ok {
		if quals := toQualifications(v); len(quals) > 0 {
			update.EducationalQualifications = &quals
		}
	}

	return update
}

func toStringList(v interface{}) []string {
	switch val := v.(type) {
	case string:
		if val == "" {
			return nil
		}
		return []string{val}
	case []interface{}:
		var out []string
		for _, item := range val {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func toQualifications(v interface{}) []model.Qualification {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var quals []model.Qualification
	if err := json.Unmarshal(raw, &quals); err != nil {
		return nil
	}
	return quals
}
