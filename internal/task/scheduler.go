package task

import (
	"context"
	"time"

	"github.com/haierkeys/document-vault-service/pkg/safe_close"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Task 定义任务接口
// CronSpec 非空时按 cron 表达式调度，否则按 LoopInterval 轮询
type Task interface {
	Name() string                  // 任务名称
	Run(ctx context.Context) error // 执行任务
	LoopInterval() time.Duration   // 执行间隔
	CronSpec() string              // cron 表达式，空串表示不使用
	IsStartupRun() bool            // 是否立即执行一次
}

// Scheduler 任务调度器
type Scheduler struct {
	logger *zap.Logger
	tasks  []Task
	sc     *safe_close.SafeClose
}

// NewScheduler 创建任务调度器
func NewScheduler(logger *zap.Logger, sc *safe_close.SafeClose) *Scheduler {
	return &Scheduler{
		logger: logger,
		tasks:  make([]Task, 0),
		sc:     sc,
	}
}

// AddTask 添加任务
func (s *Scheduler) AddTask(task Task) {
	s.tasks = append(s.tasks, task)
}

// Start 启动所有任务
func (s *Scheduler) Start() {
	if len(s.tasks) == 0 {
		s.logger.Info("no tasks to schedule")
		return
	}

	s.logger.Info("tasks starting ", zap.Int("count", len(s.tasks)))

	for _, task := range s.tasks {
		s.startTask(task)
	}
}

// runOnce 执行一次任务并吞掉 panic
func (s *Scheduler) runOnce(task Task, mode string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task run panic",
				zap.String("name", task.Name()),
				zap.String("mode", mode),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()
	s.logger.Info("task running", zap.String("name", task.Name()), zap.String("mode", mode))
	if err := task.Run(context.Background()); err != nil {
		s.logger.Error("task running error",
			zap.String("name", task.Name()),
			zap.String("mode", mode),
			zap.Error(err))
	}
}

// startTask 启动单个任务
func (s *Scheduler) startTask(task Task) {

	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()

		// 如果任务需要立即执行
		if task.IsStartupRun() {
			go s.runOnce(task, "startup")
		}

		if spec := task.CronSpec(); spec != "" {
			s.runCron(task, spec, closeSignal)
			return
		}

		if task.LoopInterval() <= 0 {
			return
		}

		ticker := time.NewTicker(task.LoopInterval())
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.runOnce(task, "loop")
			case <-closeSignal:
				s.logger.Info("task stopped", zap.String("name", task.Name()))
				return
			}
		}
	})
}

// runCron 按 cron 表达式调度任务直到收到关闭信号
func (s *Scheduler) runCron(task Task, spec string, closeSignal <-chan struct{}) {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		s.runOnce(task, "cron")
	}); err != nil {
		s.logger.Error("task cron spec invalid",
			zap.String("name", task.Name()),
			zap.String("spec", spec),
			zap.Error(err))
		return
	}
	c.Start()

	<-closeSignal
	stopCtx := c.Stop()
	<-stopCtx.Done()
	s.logger.Info("task stopped", zap.String("name", task.Name()))
}
