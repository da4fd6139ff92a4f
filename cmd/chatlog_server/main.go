package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"chatlog_server/internal/config"
	dao "chatlog_server/internal/dao/mysql"
	myredis "chatlog_server/internal/dao/redis"
	"chatlog_server/internal/handler"
	"chatlog_server/internal/https_server"
	"chatlog_server/internal/infrastructure/logger"
	"chatlog_server/internal/service"
	"chatlog_server/internal/service/chat"
	"chatlog_server/pkg/util/jwt"
	"chatlog_server/pkg/util/snowflake"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, conf.MainConfig.Mode); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化数据库，得到 Repository 聚合
	repos := dao.Init()
	zap.L().Info("数据库初始化成功")

	// 4. 初始化 Redis
	myredis.Init()
	cache := myredis.GetCacheService()
	zap.L().Info("Redis 初始化成功")

	// 5. 初始化 JWT 与雪花 ID
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	snowflake.Init()
	zap.L().Info("JWT 初始化成功")

	// 6. 初始化参数校验翻译器
	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Fatal("翻译器初始化失败", zap.Error(err))
	}

	// 7. 初始化 Service 层 (依赖注入)
	service.InitServices(repos, cache)
	zap.L().Info("Service 层初始化成功")

	// 8. 初始化 ChatServer 并注入 Handler 层
	chatServer := chat.NewChatServer(repos, service.Svc.Relationship, cache)
	handler.InitChatServer(chatServer)
	zap.L().Info("ChatServer 初始化成功")

	// 9. 初始化 HTTP 服务器
	engine := https_server.Init()
	zap.L().Info("HTTP 服务器初始化成功")

	// 10. 启动服务
	host := conf.MainConfig.Host
	port := conf.MainConfig.Port
	go func() {
		if err := engine.Run(fmt.Sprintf("%s:%d", host, port)); err != nil {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()

	// 设置信号监听
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// 等待信号
	<-quit
	zap.L().Info("关闭服务器...")

	chatServer.Close()

	zap.L().Info("服务器已关闭")
}
