// Package safe_close 提供多组件协同关闭的辅助工具
// 所有通过 Attach 注册的组件共享一个关闭信号，任一组件可触发整体关闭
package safe_close

import (
	"sync"
)

// SafeClose coordinates the shutdown of multiple long-running components.
// SafeClose 协调多个长生命周期组件的关闭
type SafeClose struct {
	mu          sync.Mutex
	wg          sync.WaitGroup
	closeSignal chan struct{}
	closed      bool
	err         error
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach registers a component goroutine. The component must call done()
// when it has finished and must return when closeSignal fires.
// Attach 注册一个组件协程，组件结束时必须调用 done()，收到 closeSignal 后必须返回
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	go f(s.wg.Done, s.closeSignal)
}

// SendCloseSignal triggers shutdown of all attached components. The first
// non-nil error wins; repeated calls are no-ops.
// SendCloseSignal 触发所有组件关闭，首个非 nil 错误会被保留，重复调用无效
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.err = err
	close(s.closeSignal)
}

// WaitClosed blocks until every attached component has called done and
// returns the error passed to SendCloseSignal, if any.
// WaitClosed 阻塞等待所有组件退出，返回 SendCloseSignal 传入的错误
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
