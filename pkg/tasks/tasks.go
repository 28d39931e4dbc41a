// Package tasks 定义了通过消息队列传递的任务载荷。
package tasks

// 索引任务的动作类型。
const (
	ActionUpsert = "upsert"
	ActionDelete = "delete"
)

// ProgramIndexTask 描述一次项目搜索索引的同步任务。
type ProgramIndexTask struct {
	Action    string `json:"action"`
	ProgramID string `json:"program_id"`
}
