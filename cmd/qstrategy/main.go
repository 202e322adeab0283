package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"qstrategy/engine"
	"qstrategy/examples"
	"qstrategy/internal/config"
	"qstrategy/internal/logger"
	"qstrategy/internal/server"
	"qstrategy/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("QSTRATEGY_CONFIG")
	if cfgPath == "" {
		cfgPath = "configs/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("读取配置失败: %v", err)
	}
	logger.SetLevel(cfg.Log.Level)

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		log.Fatalf("打开参考数据库失败: %v", err)
	}
	defer st.Close()

	plugins := map[string]server.Plugin{
		engine.RoleStrategy: engine.NewStrategy(examples.NewSMAStrategy(st)),
		engine.RoleBroker:   engine.NewBroker(examples.NewPaperBroker()),
		engine.RoleRisk:     engine.NewRisk(examples.NewDrawdownRisk()),
	}
	for role, p := range plugins {
		payload, err := json.Marshal(pluginOptions(cfg, role))
		if err != nil {
			log.Fatalf("编码插件选项失败 (%s): %v", role, err)
		}
		if res := p.Dispatch("", engine.OpInit, "", string(payload)); !res.Ack {
			log.Fatalf("插件初始化失败: %s", role)
		}
	}
	defer func() {
		for _, p := range plugins {
			p.Dispatch("", engine.OpDestroy, "", "")
		}
	}()

	if err := config.Watch(ctx, cfgPath, func(next *config.Config) {
		logger.SetLevel(next.Log.Level)
		logger.Infof("日志级别已更新: %s", next.Log.Level)
	}); err != nil {
		logger.Warnf("配置热加载不可用: %v", err)
	}

	srv := server.New(cfg.Server.Addr, plugins)
	logger.Infof("qstrategy 插件服务已启动: %s", cfg.Server.Addr)
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("运行失败: %v", err)
	}
}

// pluginOptions merges the role's free-form options with the shared
// log settings every init call expects.
func pluginOptions(cfg *config.Config, role string) map[string]any {
	opts := make(map[string]any)
	var src map[string]any
	switch role {
	case engine.RoleStrategy:
		src = cfg.Plugins.Strategy
	case engine.RoleBroker:
		src = cfg.Plugins.Broker
	case engine.RoleRisk:
		src = cfg.Plugins.Risk
	}
	for k, v := range src {
		opts[k] = v
	}
	opts["log_path"] = cfg.Log.Path
	opts["log_level"] = cfg.Log.Level
	return opts
}
