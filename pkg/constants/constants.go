package constants

const (
	CHANNEL_SIZE               = 100 // 每个连接回写通道的缓冲大小
	REDIS_TIMEOUT              = 10  // redis 缓存超时（分钟）
	REFRESH_TOKEN_EXPIRY_HOURS = 168 // Refresh Token 有效期（小时），168小时 = 7天

	ONLINE_USERS_KEY = "online_users" // redis 在线用户集合键
)
