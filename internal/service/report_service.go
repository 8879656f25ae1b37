package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/SaiseetharamModugumudi/HRMS-project/internal/dto"
	"github.com/SaiseetharamModugumudi/HRMS-project/internal/repository"
	"github.com/SaiseetharamModugumudi/HRMS-project/pkg/redis"
)

// ReportService 报表业务接口
type ReportService interface {
	// Summary 部门/职位分布；Redis 可用时走缓存
	Summary(ctx context.Context) (*dto.ReportSummary, error)
}

type reportService struct {
	repo   *repository.Repository
	cache  ReportCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewReportService 创建 ReportService 实例，cache 为 nil 时每次直接查询
func NewReportService(repo *repository.Repository, cache ReportCache, ttl time.Duration, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

func (s *reportService) Summary(ctx context.Context) (*dto.ReportSummary, error) {
	if s.cache != nil {
		var cached dto.ReportSummary
		err := s.cache.GetJSON(ctx, reportSummaryCacheKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			s.logger.Warn("读取报表缓存失败，降级为直接查询", zap.Error(err))
		}
	}

	summary, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.ttl > 0 {
		if err := s.cache.SetJSON(ctx, reportSummaryCacheKey, summary, s.ttl); err != nil {
			s.logger.Warn("写入报表缓存失败", zap.Error(err))
		}
	}
	return summary, nil
}

func (s *reportService) compute(ctx context.Context) (*dto.ReportSummary, error) {
	byDept, err := s.repo.Employee.CountByDepartment(ctx)
	if err != nil {
		s.logger.Error("按部门统计失败", zap.Error(err))
		return nil, err
	}
	byDesignation, err := s.repo.Employee.CountByDesignation(ctx)
	if err != nil {
		s.logger.Error("按职位统计失败", zap.Error(err))
		return nil, err
	}
	total, err := s.repo.Employee.Count(ctx)
	if err != nil {
		s.logger.Error("统计员工数失败", zap.Error(err))
		return nil, err
	}

	return &dto.ReportSummary{
		DepartmentStats:   toGroupCounts(byDept),
		DesignationStats:  toGroupCounts(byDesignation),
		TotalEmployees:    total,
		TotalDepartments:  len(byDept),
		TotalDesignations: len(byDesignation),
	}, nil
}

func toGroupCounts(rows []repository.GroupCount) []dto.GroupCount {
	out := make([]dto.GroupCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.GroupCount{Label: r.Label, Count: r.Count})
	}
	return out
}
