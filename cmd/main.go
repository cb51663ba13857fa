// Command football-predict 足球预测后台：HTTP 接口、定时任务与维护命令。
//
// 用法:
//
//	football-predict              启动服务（等同 serve）
//	football-predict migrate      只执行表结构迁移
//	football-predict sweep        推进一次比赛状态
//	football-predict cleanup      清理过期比赛与统计快照
//	football-predict rebuild-stats 重算全部联赛统计
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"FootballPredict/internal/api"
	"FootballPredict/internal/config"
	"FootballPredict/internal/database"
	"FootballPredict/internal/scheduler"
	"FootballPredict/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	root := &cobra.Command{
		Use:           "football-predict",
		Short:         "Football prediction backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), logger)
		},
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP API and scheduled jobs",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe(cmd.Context(), logger)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema",
			RunE: func(cmd *cobra.Command, args []string) error {
				_, _, err := bootstrap(logger)
				return err
			},
		},
		jobCmd("sweep", "Advance match statuses once", scheduler.JobStatusSweep, logger),
		jobCmd("cleanup", "Delete expired matches and stats snapshots", scheduler.JobCleanup, logger),
		jobCmd("rebuild-stats", "Recompute stats snapshots for every active league", scheduler.JobStatsUpdate, logger),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := root.ExecuteContext(ctx); err != nil {
		logger.WithError(err).Error("命令执行失败")
		os.Exit(1)
	}
}

// bootstrap 加载配置、连接数据库并迁移表结构
func bootstrap(logger *logrus.Logger) (*config.Config, *gorm.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置文件失败: %w", err)
	}
	if cfg.Server.Mode == "debug" {
		logger.SetLevel(logrus.DebugLevel)
	}
	logger.Info("配置文件加载成功")

	db, err := database.Open(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, nil, err
	}
	logger.Info("数据库表结构检查完成（不存在则已创建）")
	return cfg, db, nil
}

// newScheduler 把定时任务名称绑定到对应的服务方法
func newScheduler(cfg *config.Config, services *service.Services, logger *logrus.Logger) (*scheduler.Scheduler, error) {
	jobs := map[string]scheduler.Job{
		scheduler.JobStatusSweep: func(ctx context.Context) error {
			_, err := services.Lifecycle.SweepStatuses(ctx)
			return err
		},
		scheduler.JobCleanup: func(ctx context.Context) error {
			_, err := services.Lifecycle.Cleanup(ctx)
			return err
		},
		scheduler.JobStatsUpdate: func(ctx context.Context) error {
			_, err := services.Accuracy.RefreshAll(ctx)
			return err
		},
	}
	return scheduler.New(cfg.Scheduler, jobs, logger)
}

// jobCmd 单次执行某个定时任务，供 crontab / 运维手动调用
func jobCmd(use, short, job string, logger *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := bootstrap(logger)
			if err != nil {
				return err
			}
			sched, err := newScheduler(cfg, service.NewServices(db, cfg, logger), logger)
			if err != nil {
				return err
			}
			return sched.Trigger(cmd.Context(), job)
		},
	}
}

func runServe(ctx context.Context, logger *logrus.Logger) error {
	cfg, db, err := bootstrap(logger)
	if err != nil {
		return err
	}

	gin.SetMode(cfg.Server.Mode)
	logger.Infof("Gin运行模式: %s", cfg.Server.Mode)

	services := service.NewServices(db, cfg, logger)
	sched, err := newScheduler(cfg, services, logger)
	if err != nil {
		return err
	}
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           api.NewRouter(cfg, services, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("服务启动成功，端口：%d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("启动服务失败: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("收到退出信号，开始关闭服务")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("关闭服务失败: %w", err)
	}
	logger.Info("服务已关闭")
	return nil
}
