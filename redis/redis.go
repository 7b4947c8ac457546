package redis

import (
	"context"

	"github.com/cloudflare/cfssl/log"
	"github.com/go-redis/redis/v8"
)

var ctx = context.Background()
var rdb = redis.NewClient(&redis.Options{
	Addr:     "127.0.0.1:6379",
	Password: "",
})

// 根据配置重新创建客户端（启动时调用一次）
func Init(addr string) {
	rdb = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "",
	})
}

// 事件推送到list尾部，供前端轮询
func PushToList(key string, value string) error {
	err := rdb.RPush(ctx, key, value).Err()
	if err != nil {
		log.Errorf("event push to list error: %s", err)
		return err
	}
	return nil
}

// 获取整个list
func GetList(key string) ([]string, error) {
	vals, err := rdb.LRange(ctx, key, 0, -1).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		log.Errorf("get list error: %s", err)
		return nil, err
	}
	return vals, nil
}

// 清空list（重置账本数据时使用）
func ClearList(key string) error {
	err := rdb.Del(ctx, key).Err()
	if err != nil {
		log.Errorf("clear list error: %s", err)
		return err
	}
	return nil
}
