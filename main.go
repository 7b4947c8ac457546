package main

import (
	"encoding/hex"
	"flag"
	"os"

	"github.com/cloudflare/cfssl/log"

	"github.com/crowdfund/client"
	"github.com/crowdfund/config"
	"github.com/crowdfund/crowdfund"
	"github.com/crowdfund/event"
	"github.com/crowdfund/global"
	"github.com/crowdfund/levelDB"
	"github.com/crowdfund/merkle"
	"github.com/crowdfund/redis"
	"github.com/crowdfund/token"
	"github.com/crowdfund/util"
)

func main() {
	Start()
}

func Start() {
	rootDir := flag.String("d", ".", "项目根目录")
	flag.Parse()
	global.RootDir = *rootDir

	global.ListenAddr = config.Get("client.addr").(string)
	global.TokenAddress = config.Get("token.address").(string)
	global.DataDir = global.RootDir + "/" + config.Get("db.path").(string)

	// 托管账户地址由配置的名字推导，初始化后不可更改
	custodyHash, _ := util.CalculateHash([]byte(config.Get("token.custody").(string)))
	global.CustodyAddress = hex.EncodeToString(custodyHash)

	if !util.FileExists(global.DataDir) {
		_ = os.MkdirAll(global.DataDir, 0755)
	}
	levelDB.InitDB(global.DataDir + "/ledger")
	merkle.StatePath = global.DataDir + "/statedb"
	redis.Init(config.Get("redis.addr").(string))

	// 加载已有的账本状态
	token.GetFromDisk()
	crowdfund.GetFromDisk()
	event.InitEventData()

	// 托管账户不归任何用户所有，没有公私钥，余额只会是未提取的募集额
	if !token.ContainsAddress(global.CustodyAddress) {
		token.CreateAccount(global.CustodyAddress, "", 0)
	}

	log.Infof("token=%s custody=%s lastProjectId=%d",
		global.TokenAddress, global.CustodyAddress, crowdfund.LastProjectId())
	client.ListenRequest()
}
