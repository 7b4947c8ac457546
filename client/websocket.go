package client

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/cloudflare/cfssl/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/crowdfund/global"
)

var upGrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// 使用WebSocket向前端推送账本事件
func getLog(c *gin.Context) {
	// 升级请求为WebSocket协议
	ws, err := upGrader.Upgrade(c.Writer, c.Request, nil)

	// 清空历史事件
	for len(global.EventLog) != 0 {
		select {
		case <-global.EventLog:
		default:
		}
	}

	if err != nil {
		log.Info("Upgrade failed")
		return
	}
	for {
		result := <-global.EventLog
		resultBytes, _ := json.Marshal(result)
		err = ws.WriteMessage(websocket.TextMessage, resultBytes)
		if err != nil {
			log.Info(err)
			ws.Close()
			break
		}
		time.Sleep(200 * time.Millisecond)
	}
}
