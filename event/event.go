package event

import (
	"encoding/json"
	"sync"

	"github.com/crowdfund/common"
	"github.com/crowdfund/global"
	"github.com/crowdfund/levelDB"
	"github.com/crowdfund/meta"
	"github.com/crowdfund/redis"
	"github.com/crowdfund/util"
)

/*
 * 账本事件日志：levelDB持久化、redis推送列表、websocket通道三份出口
 * 事件只在操作成功提交后记录，失败的操作不产生事件
 */

var mutex sync.Mutex
var eventData []meta.EventRecord

// 从磁盘加载已有的事件日志（在节点启动时执行）
func InitEventData() {
	mutex.Lock()
	defer mutex.Unlock()

	if !levelDB.DBHas(common.EventAllDataKey) {
		return
	}
	dataBytes := levelDB.DBGet(common.EventAllDataKey)
	err := json.Unmarshal(dataBytes, &eventData)
	util.DealJsonErr("InitEventData", err)
}

// 记录一条事件
func Record(eventType string, data interface{}) {
	mutex.Lock()
	defer mutex.Unlock()

	record := meta.EventRecord{
		Type: eventType,
		Data: data,
	}
	eventData = append(eventData, record)

	allBytes, err := json.Marshal(eventData)
	util.DealJsonErr("Record", err)
	levelDB.DBPut(common.EventAllDataKey, allBytes)

	recordBytes, _ := json.Marshal(record)
	_ = redis.PushToList(common.EventFeedKey, string(recordBytes))

	// 通道满时丢弃，不能阻塞账本操作
	select {
	case global.EventLog <- record:
	default:
	}
}

// 获取全部事件日志
func GetAllEventData() []meta.EventRecord {
	mutex.Lock()
	defer mutex.Unlock()

	all := make([]meta.EventRecord, len(eventData))
	copy(all, eventData)
	return all
}
