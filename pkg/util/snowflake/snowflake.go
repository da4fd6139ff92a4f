// Package snowflake 封装消息 ID 的生成
// 消息主键用雪花 ID 而非自增，保证跨实例不冲突且按时间趋势递增
package snowflake

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	"chatlog_server/internal/config"
)

var (
	node     *snowflake.Node
	nodeOnce sync.Once
)

// Init 按配置初始化雪花节点，重复调用只生效一次
func Init() {
	nodeOnce.Do(func() {
		machineID := config.GetConfig().SnowflakeConfig.MachineID
		if machineID < 0 || machineID > 1023 {
			zap.L().Warn("snowflake machineId 超出范围，回退为 1", zap.Int64("machineId", machineID))
			machineID = 1
		}
		var err error
		node, err = snowflake.NewNode(machineID)
		if err != nil {
			zap.L().Fatal("snowflake 节点初始化失败", zap.Error(err))
		}
		zap.L().Info("snowflake 节点初始化成功", zap.Int64("machineId", machineID))
	})
}

// GenerateID 生成一个雪花 ID
func GenerateID() int64 {
	if node == nil {
		Init()
	}
	return node.Generate().Int64()
}
