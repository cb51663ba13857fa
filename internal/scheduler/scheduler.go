package scheduler

import (
	"context"
	"fmt"
	"time"

	"FootballPredict/internal/config"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// 任务名称
const (
	JobStatusSweep = "status_sweep"
	JobCleanup     = "cleanup"
	JobStatsUpdate = "stats_update"
)

// jobTimeout 单次任务的最长执行时间
const jobTimeout = 5 * time.Minute

// Job 一个可被定时或手动触发的后台任务
type Job func(ctx context.Context) error

// Scheduler 后台定时任务：状态推进（每小时）、过期清理（每天）、联赛统计（每 6 小时）。
// 每次触发互不等待，重叠执行依赖各任务自身的幂等性
type Scheduler struct {
	cron    *cron.Cron
	cfg     config.SchedulerConfig
	jobs    map[string]Job
	specs   map[string]string
	logger  *logrus.Logger
	started bool
}

// New 创建调度器，jobs 以任务名称为键
func New(cfg config.SchedulerConfig, jobs map[string]Job, logger *logrus.Logger) (*Scheduler, error) {
	loc := time.UTC
	if cfg.Timezone != "" {
		l, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("加载时区失败: %w", err)
		}
		loc = l
	}
	return &Scheduler{
		cron: cron.New(cron.WithLocation(loc)),
		cfg:  cfg,
		jobs: jobs,
		specs: map[string]string{
			JobStatusSweep: cfg.StatusCron,
			JobCleanup:     cfg.CleanupCron,
			JobStatsUpdate: cfg.StatsCron,
		},
		logger: logger,
	}, nil
}

// Start 注册并启动全部任务；配置未启用时只打印日志
func (s *Scheduler) Start() error {
	if !s.cfg.Enabled {
		s.logger.Info("定时任务未启用（设置 ENABLE_SCHEDULED_TASKS=true 开启）")
		return nil
	}
	if s.started {
		return nil
	}
	for _, name := range []string{JobStatusSweep, JobCleanup, JobStatsUpdate} {
		spec := s.specs[name]
		if spec == "" || s.jobs[name] == nil {
			continue
		}
		name := name
		if _, err := s.cron.AddFunc(spec, func() { _ = s.Trigger(context.Background(), name) }); err != nil {
			return fmt.Errorf("注册任务 %s 失败(%s): %w", name, spec, err)
		}
		s.logger.WithFields(logrus.Fields{"job": name, "spec": spec}).Info("定时任务已注册")
	}
	s.cron.Start()
	s.started = true
	s.logger.Info("定时任务已启动")
	return nil
}

// Stop 停止调度并等待正在执行的任务结束
func (s *Scheduler) Stop() {
	if !s.started {
		return
	}
	<-s.cron.Stop().Done()
	s.started = false
	s.logger.Info("定时任务已停止")
}

// entries 已注册的任务数量
func (s *Scheduler) entries() int {
	return len(s.cron.Entries())
}

// Trigger 立即执行一次任务（手动触发与定时触发共用）；错误只记录，不影响后续调度
func (s *Scheduler) Trigger(ctx context.Context, name string) error {
	job, ok := s.jobs[name]
	if !ok {
		return fmt.Errorf("未知任务: %s", name)
	}
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	start := time.Now()
	entry := s.logger.WithField("job", name)
	if err := job(ctx); err != nil {
		entry.WithError(err).Error("定时任务执行失败")
		return err
	}
	entry.WithField("duration_ms", time.Since(start).Milliseconds()).Info("定时任务执行完成")
	return nil
}
