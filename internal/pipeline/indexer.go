// Package pipeline 定义了项目搜索索引的同步流程。
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"edu-counsel-go/internal/config"
	"edu-counsel-go/internal/model"
	"edu-counsel-go/internal/repository"
	"edu-counsel-go/pkg/es"
	"edu-counsel-go/pkg/log"
	"edu-counsel-go/pkg/tasks"

	"gorm.io/gorm"
)

// Indexer 消费索引任务，把数据库中的项目同步到 Elasticsearch。
type Indexer struct {
	programRepo repository.ProgramRepository
	esCfg       config.ElasticsearchConfig
}

// NewIndexer 创建一个新的 Indexer 实例。
func NewIndexer(programRepo repository.ProgramRepository, esCfg config.ElasticsearchConfig) *Indexer {
	return &Indexer{programRepo: programRepo, esCfg: esCfg}
}

// Process 处理单个索引任务。数据库是权威来源：upsert 任务到达时
// 项目已被删除的话，降级为删除索引文档。
func (idx *Indexer) Process(ctx context.Context, task tasks.ProgramIndexTask) error {
	switch task.Action {
	case tasks.ActionDelete:
		log.Infof("[Indexer] 删除索引文档, ProgramID: %s", task.ProgramID)
		return es.DeleteProgram(ctx, idx.esCfg.IndexName, task.ProgramID)

	case tasks.ActionUpsert:
		program, err := idx.programRepo.FindByID(task.ProgramID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Warnf("[Indexer] 项目已不存在，转为删除索引文档, ProgramID: %s", task.ProgramID)
				return es.DeleteProgram(ctx, idx.esCfg.IndexName, task.ProgramID)
			}
			return fmt.Errorf("读取项目失败: %w", err)
		}

		doc := model.DocumentFromProgram(program)
		if err := es.IndexProgram(ctx, idx.esCfg.IndexName, doc); err != nil {
			return fmt.Errorf("索引项目 %s 到 Elasticsearch 失败: %w", task.ProgramID, err)
		}
		log.Infof("[Indexer] 项目索引成功, ProgramID: %s", task.ProgramID)
		return nil

	default:
		log.Errorf("[Indexer] 未知的任务类型: %s", task.Action)
		return nil
	}
}
