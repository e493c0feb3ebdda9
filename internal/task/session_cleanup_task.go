package task

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// ==================== 会话清理任务 ====================

// SessionRegistry 草稿会话注册表接口
type SessionRegistry interface {
	PurgeIdle(maxIdle time.Duration) int
	Count() int
}

// SessionCleanupTask 定时清理长时间无活动的草稿会话
// 草稿只存在于内存，放弃编辑的会话不清理会一直占着内存
type SessionCleanupTask struct {
	sessions SessionRegistry
	maxIdle  time.Duration
	cron     *cron.Cron
}

func NewSessionCleanupTask(sessions SessionRegistry, maxIdle time.Duration) *SessionCleanupTask {
	if maxIdle <= 0 {
		maxIdle = time.Hour
	}
	return &SessionCleanupTask{
		sessions: sessions,
		maxIdle:  maxIdle,
		cron:     cron.New(cron.WithSeconds()), // 支持秒级控制
	}
}

// Start 启动定时任务
func (t *SessionCleanupTask) Start(interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	_, err := t.cron.AddFunc(fmt.Sprintf("@every %s", interval), t.Execute)
	if err != nil {
		log.Fatalf("无法启动会话清理任务: %v", err)
	}

	t.cron.Start()
	log.Printf("会话清理任务已启动 (每 %s 检查一次)", interval)
}

// Stop 停止定时任务，已在执行中的清理会跑完
func (t *SessionCleanupTask) Stop() {
	t.cron.Stop()
}

// Execute 执行一次清理
func (t *SessionCleanupTask) Execute() {
	purged := t.sessions.PurgeIdle(t.maxIdle)
	if purged > 0 {
		fmt.Printf("[SessionCleanupTask] 清理了 %d 个过期会话，剩余 %d 个\n", purged, t.sessions.Count())
	}
}
