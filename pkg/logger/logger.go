package logger

import (
	"log"

	"go.uber.org/zap"
)

// L 全局日志器，Init 之前调用会拿到 no-op 实例
var L *zap.SugaredLogger = zap.NewNop().Sugar()

// Init 初始化全局日志器
// mode: "release" 使用生产配置(JSON)，其余使用开发配置(彩色控制台)
func Init(mode string) {
	var (
		l   *zap.Logger
		err error
	)
	if mode == "release" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}
	L = l.Sugar()
}

// Sync 刷新缓冲日志，进程退出前调用
func Sync() {
	_ = L.Sync()
}
