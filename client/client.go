package client

import (
	"github.com/cloudflare/cfssl/log"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"

	"github.com/crowdfund/config"
	"github.com/crowdfund/global"
)

// 监听用户请求
func ListenRequest() {
	r := gin.Default()
	r.Use(Cors()) // 使用跨域组件
	if config.GetOrDefault("client.tlsRedirect", false) == true {
		r.Use(TlsHandler()) // 重定向为https
	}
	r.GET("/registerAccount", registerAccount)     // 注册账户（附带创世初始代币）
	r.POST("/approve", approve)                    // 代币授权
	r.POST("/transfer", transfer)                  // 代币转账
	r.POST("/createProject", createProject)        // 创建众筹项目
	r.POST("/addFundTo", addFundTo)                // 向项目出资
	r.POST("/setProjectPaused", setProjectPaused)  // 暂停/恢复项目
	r.POST("/refund", refund)                      // 出资人退款
	r.POST("/claim", claim)                        // 发起人提取募集额
	r.GET("/lastProjectId", lastProjectId)         // 最近分配的项目id
	r.GET("/fundedOf", fundedOf)                   // 查询出资额
	r.POST("/query", query)                        // 提供账本查询服务
	r.GET("/getLog", getLog)                       // 与前端建立websocket
	log.Infof("众筹账本客户端已启动，监听地址 %s", global.ListenAddr)
	if err := r.Run(global.ListenAddr); err != nil {
		log.Error(err)
	}
}

func TlsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		secureMiddleware := secure.New(secure.Options{
			SSLRedirect: true,
			SSLHost:     config.GetOrDefault("client.tlsHost", "localhost:8080").(string),
		})
		err := secureMiddleware.Process(c.Writer, c.Request)

		// If there was an error, do not continue.
		if err != nil {
			c.Abort()
			return
		}
		c.Next()
	}
}
