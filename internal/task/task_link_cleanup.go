package task

import (
	"context"
	"time"

	"github.com/haierkeys/document-vault-service/global"

	"go.uber.org/zap"
)

// init 自动注册链接清理任务
func init() {
	Register(NewLinkCleanupTask)
}

// LinkCleanupTask 过期下载链接清理任务
type LinkCleanupTask struct {
	deps     *Deps
	cronSpec string
	firstRun bool
}

// NewLinkCleanupTask 创建链接清理任务
func NewLinkCleanupTask(deps *Deps) (Task, error) {
	cronSpec := deps.App.Config().App.LinkCleanupCron
	if cronSpec == "" {
		return nil, nil
	}

	return &LinkCleanupTask{
		deps:     deps,
		cronSpec: cronSpec,
		firstRun: true,
	}, nil
}

// Name 返回任务名称
func (t *LinkCleanupTask) Name() string {
	return "LinkCleanupTask"
}

// Run 执行一次过期链接清理
func (t *LinkCleanupTask) Run(ctx context.Context) error {
	status := "scheduled"
	if t.firstRun {
		status = "first-run"
		t.firstRun = false
	}

	deleted, err := t.deps.App.CleanupService.PurgeExpired(ctx)

	if err != nil {
		global.Logger.Error(t.Name()+" failed ["+status+"]: ", zap.Error(err))
	} else {
		global.Logger.Info(t.Name()+" completed ["+status+"]", zap.Int("deleted", deleted))
	}

	return err
}

// LoopInterval 返回执行间隔,使用 cron 调度时不生效
func (t *LinkCleanupTask) LoopInterval() time.Duration {
	return 5 * time.Minute
}

// CronSpec 返回 cron 表达式
func (t *LinkCleanupTask) CronSpec() string {
	return t.cronSpec
}

// IsStartupRun 是否立即执行一次
func (t *LinkCleanupTask) IsStartupRun() bool {
	return true
}
