package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"edu-counsel-go/internal/config"
	"edu-counsel-go/internal/model"
	"edu-counsel-go/internal/repository"
	"edu-counsel-go/pkg/kafka"
	"edu-counsel-go/pkg/log"
	"edu-counsel-go/pkg/storage"
	"edu-counsel-go/pkg/tasks"
)

// ErrNoBrochure 表示项目尚未上传宣传册。
var ErrNoBrochure = errors.New("program has no brochure attached")

// ProgramService 接口定义了项目管理相关的业务操作。
// 写操作会向 Kafka 发布索引任务，由后台消费者同步到搜索索引；
// 发布失败只记录日志，不影响写操作本身。
type ProgramService interface {
	Create(program *model.Program) (*model.Program, error)
	GetByID(programID string) (*model.Program, error)
	GetAll() ([]model.Program, error)
	Update(programID string, update *model.ProgramUpdate) (*model.Program, error)
	Delete(programID string) error
	AttachBrochure(ctx context.Context, programID, filename string, reader io.Reader, size int64, contentType string) (*model.Program, error)
	BrochureURL(programID string) (string, error)
}

type programService struct {
	programRepo repository.ProgramRepository
	minioCfg    config.MinIOConfig
}

// NewProgramService 创建一个新的 ProgramService 实例。
func NewProgramService(programRepo repository.ProgramRepository, minioCfg config.MinIOConfig) ProgramService {
	return &programService{programRepo: programRepo, minioCfg: minioCfg}
}

func (s *programService) Create(program *model.Program) (*model.Program, error) {
	if program.ProgramType != "" && !model.IsValidProgramLevel(program.ProgramType) {
		return nil, ErrInvalidProgramLevel
	}
	if program.Budget < 0 {
		return nil, ErrNegativeBudget
	}
	if err := s.programRepo.Create(program); err != nil {
		return nil, err
	}
	s.publishIndexTask(tasks.ActionUpsert, program.ID)
	return program, nil
}

func (s *programService) GetByID(programID string) (*model.Program, error) {
	return s.programRepo.FindByID(programID)
}

func (s *programService) GetAll() ([]model.Program, error) {
	return s.programRepo.FindAll()
}

func (s *programService) Update(programID string, update *model.ProgramUpdate) (*model.Program, error) {
	program, err := s.programRepo.FindByID(programID)
	if err != nil {
		return nil, err
	}
	if update.ProgramType != nil && !model.IsValidProgramLevel(*update.ProgramType) {
		return nil, ErrInvalidProgramLevel
	}
	if update.Budget != nil && *update.Budget < 0 {
		return nil, ErrNegativeBudget
	}
	update.Apply(program)
	if err := s.programRepo.Update(program); err != nil {
		return nil, err
	}
	s.publishIndexTask(tasks.ActionUpsert, program.ID)
	return program, nil
}

func (s *programService) Delete(programID string) error {
	if _, err := s.programRepo.FindByID(programID); err != nil {
		return err
	}
	if err := s.programRepo.Delete(programID); err != nil {
		return err
	}
	s.publishIndexTask(tasks.ActionDelete, programID)
	return nil
}

// AttachBrochure 将宣传册对象写入 MinIO 并记录对象路径。
func (s *programService) AttachBrochure(ctx context.Context, programID, filename string, reader io.Reader, size int64, contentType string) (*model.Program, error) {
	program, err := s.programRepo.FindByID(programID)
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("brochures/%s/%s", programID, path.Base(filename))
	if err := storage.UploadObject(ctx, s.minioCfg.BucketName, objectName, reader, size, contentType); err != nil {
		return nil, fmt.Errorf("failed to store brochure: %w", err)
	}

	program.BrochurePath = objectName
	if err := s.programRepo.Update(program); err != nil {
		return nil, err
	}
	return program, nil
}

// BrochureURL 为项目的宣传册生成一个限时的预签名下载链接。
func (s *programService) BrochureURL(programID string) (string, error) {
	program, err := s.programRepo.FindByID(programID)
	if err != nil {
		return "", err
	}
	if program.BrochurePath == "" {
		return "", ErrNoBrochure
	}
	return storage.GetPresignedURL(s.minioCfg.BucketName, program.BrochurePath, 15*time.Minute)
}

func (s *programService) publishIndexTask(action, programID string) {
	task := tasks.ProgramIndexTask{Action: action, ProgramID: programID}
	if err := kafka.ProduceIndexTask(task); err != nil {
		log.Errorf("program: failed to publish index task %s/%s: %v", action, programID, err)
	}
}
