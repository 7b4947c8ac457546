package client

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cloudflare/cfssl/log"
	"github.com/gin-gonic/gin"

	"github.com/crowdfund/common"
	"github.com/crowdfund/config"
	"github.com/crowdfund/crowdfund"
	"github.com/crowdfund/event"
	"github.com/crowdfund/global"
	"github.com/crowdfund/levelDB"
	"github.com/crowdfund/merkle"
	"github.com/crowdfund/meta"
	"github.com/crowdfund/redis"
	"github.com/crowdfund/token"
	"github.com/crowdfund/util"
)

func Cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method

		origin := c.Request.Header.Get("Origin")

		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Headers", "Content-Type,AccessToken,X-CSRF-Token, Authorization") //自定义 Header
			c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			c.Header("Access-Control-Expose-Headers", "Content-Length, Access-Control-Allow-Origin, Access-Control-Allow-Headers, Content-Type")
			c.Header("Access-Control-Allow-Credentials", "true")
		}

		if method == "OPTIONS" {
			c.Header("Access-Control-Allow-Origin", "*")
			c.Header("Access-Control-Allow-Headers", "Content-Type,AccessToken,X-CSRF-Token, Authorization")
			c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			c.Header("Access-Control-Expose-Headers", "Content-Length, Access-Control-Allow-Origin, Access-Control-Allow-Headers, Content-Type")
			c.Header("Access-Control-Allow-Credentials", "true")
			c.AbortWithStatus(http.StatusNoContent)
		}

		c.Next()
	}
}

//账户注册
func registerAccount(ctx *gin.Context) {
	//首先生成公私钥
	priKey, pubKey := util.GetKeyPair()
	//将公钥进行hash
	pubHash, _ := util.CalculateHash(pubKey)
	//将公钥hash作为账户地址,256位
	address := hex.EncodeToString(pubHash)
	log.Infof("account address len: %d", len(address))

	// client 存储账户的私钥
	levelDB.DBPut(address+common.AccountsPrivateKeySuffix, priKey)

	// 创世分发：新账户带初始代币入场，之后代币总量不再变化
	initBalance := common.InitBalance
	if v, ok := config.GetOrDefault("token.initBalance", common.InitBalance).(int); ok {
		initBalance = v
	}
	token.CreateAccount(address, string(pubKey), initBalance)

	res := meta.ChainAccount{
		AccountAddress: address,
		PublicKey:      string(pubKey),
		PrivateKey:     string(priKey),
	}
	ctx.JSON(http.StatusOK, goodResponse(res))
}

//代币授权（出资前先给托管账户授权额度）
func approve(ctx *gin.Context) {
	p := meta.PostApprove{}
	if err := ctx.ShouldBind(&p); err != nil {
		ctx.JSON(http.StatusOK, errResponse("参数解析失败"))
		return
	}
	if !token.ContainsAddress(p.From) {
		log.Error("发起地址不存在")
		ctx.JSON(http.StatusOK, errResponse("发起地址不存在"))
		return
	}
	spender := p.Spender
	if spender == "" { //缺省授权给托管账户
		spender = global.CustodyAddress
	}
	token.Approve(p.From, spender, p.Amount)
	ctx.JSON(http.StatusOK, goodResponse(""))
}

//代币转账
func transfer(ctx *gin.Context) {
	p := meta.PostTransfer{}
	if err := ctx.ShouldBind(&p); err != nil {
		ctx.JSON(http.StatusOK, errResponse("参数解析失败"))
		return
	}
	if !token.ContainsAddress(p.From) {
		ctx.JSON(http.StatusOK, errResponse("发起地址不存在"))
		return
	}
	if p.From == p.To {
		ctx.JSON(http.StatusOK, errResponse("发起地址和接收地址不能相同"))
		return
	}
	if err := token.Transfer(p.From, p.To, p.Amount); err != nil {
		ctx.JSON(http.StatusOK, errResponse(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, goodResponse(""))
}

//创建众筹项目
func createProject(ctx *gin.Context) {
	p := meta.PostProject{}
	if err := ctx.ShouldBind(&p); err != nil {
		ctx.JSON(http.StatusOK, errResponse("参数解析失败"))
		return
	}
	if !token.ContainsAddress(p.From) {
		log.Error("发起地址不存在")
		ctx.JSON(http.StatusOK, errResponse("发起地址不存在"))
		return
	}
	projectId, err := crowdfund.CreateProject(p.From, p.Name, p.Description, p.Period, p.Goal)
	if err != nil {
		ctx.JSON(http.StatusOK, errResponse(err.Error()))
		return
	}
	go updateStateTree()
	ctx.JSON(http.StatusOK, goodResponse(projectId))
}

//向项目出资
func addFundTo(ctx *gin.Context) {
	p := meta.PostFund{}
	if err := ctx.ShouldBind(&p); err != nil {
		ctx.JSON(http.StatusOK, errResponse("参数解析失败"))
		return
	}
	if !token.ContainsAddress(p.From) {
		ctx.JSON(http.StatusOK, errResponse("发起地址不存在"))
		return
	}
	if err := crowdfund.AddFundTo(p.From, p.ProjectId, p.Amount); err != nil {
		ctx.JSON(http.StatusOK, errResponse(err.Error()))
		return
	}
	go updateStateTree()
	ctx.JSON(http.StatusOK, goodResponse(""))
}

//暂停/恢复项目
func setProjectPaused(ctx *gin.Context) {
	p := meta.PostPause{}
	if err := ctx.ShouldBind(&p); err != nil {
		ctx.JSON(http.StatusOK, errResponse("参数解析失败"))
		return
	}
	if err := crowdfund.SetProjectPaused(p.From, p.ProjectId, p.Paused); err != nil {
		ctx.JSON(http.StatusOK, errResponse(err.Error()))
		return
	}
	go updateStateTree()
	ctx.JSON(http.StatusOK, goodResponse(""))
}

//出资人退款
func refund(ctx *gin.Context) {
	p := meta.PostResolve{}
	if err := ctx.ShouldBind(&p); err != nil {
		ctx.JSON(http.StatusOK, errResponse("参数解析失败"))
		return
	}
	amount, err := crowdfund.Refund(p.From, p.ProjectId)
	if err != nil {
		ctx.JSON(http.StatusOK, errResponse(err.Error()))
		return
	}
	go updateStateTree()
	ctx.JSON(http.StatusOK, goodResponse(amount))
}

//发起人提取募集额
func claim(ctx *gin.Context) {
	p := meta.PostResolve{}
	if err := ctx.ShouldBind(&p); err != nil {
		ctx.JSON(http.StatusOK, errResponse("参数解析失败"))
		return
	}
	amount, err := crowdfund.Claim(p.From, p.ProjectId)
	if err != nil {
		ctx.JSON(http.StatusOK, errResponse(err.Error()))
		return
	}
	go updateStateTree()
	ctx.JSON(http.StatusOK, goodResponse(amount))
}

//最近分配的项目id
func lastProjectId(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, goodResponse(crowdfund.LastProjectId()))
}

//查询出资额：/fundedOf?projectId=1&account=xxx
func fundedOf(ctx *gin.Context) {
	projectId, err := strconv.Atoi(ctx.Query("projectId"))
	if err != nil {
		ctx.JSON(http.StatusOK, errResponse("Invalid param"))
		return
	}
	account := ctx.Query("account")
	ctx.JSON(http.StatusOK, goodResponse(crowdfund.FundedOf(projectId, account)))
}

//账本信息query服务
func query(ctx *gin.Context) {
	data, _ := ctx.GetRawData()
	log.Infof("[client] 收到查询请求: %s\n", string(data))

	q := meta.Query{}
	err := json.Unmarshal(data, &q)
	if err != nil {
		log.Error("[query],json decode err:", err)
	}

	var response meta.HttpResponse
	switch q.Type {
	case "getProject": // 获取指定项目
		if len(q.Parameters) < 1 {
			response = errResponse("Invalid param")
			break
		}
		id, err := strconv.Atoi(q.Parameters[0])
		if err != nil {
			response = errResponse("Invalid param")
			break
		}
		project, ok := crowdfund.GetProject(id)
		if !ok {
			response = errResponse("Invalid param")
		} else {
			response = goodResponse(project)
		}

	case "getAllProjects": // 获取全部项目
		response = goodResponse(crowdfund.GetAllProjects())

	case "getAllAccounts": // 获取所有的账户
		all := []meta.Account{}
		for _, address := range token.GetTotalAddress() {
			all = append(all, token.GetAccount(address))
		}
		response = goodResponse(all)

	case "getBalance": // 查询账户余额
		if len(q.Parameters) < 1 {
			response = errResponse("Invalid param")
			break
		}
		response = goodResponse(token.BalanceOf(q.Parameters[0]))

	case "getEvents": // 获取全部事件日志
		response = goodResponse(event.GetAllEventData())

	case "getEventFeed": // 获取redis中的事件推送列表
		feed, err := redis.GetList(common.EventFeedKey)
		if err != nil {
			response = errResponse("获取事件推送列表失败")
		} else {
			response = goodResponse(feed)
		}

	case "getStateRoot": // 获取账本状态根
		root, err := merkle.UpdateLedgerState()
		if err != nil {
			response = errResponse("状态树更新失败")
		} else {
			response = goodResponse(hex.EncodeToString(root.Bytes()))
		}

	case "getProof": // 获取账户存在性证明
		if len(q.Parameters) < 1 {
			response = errResponse("Invalid param")
			break
		}
		value, proof, err := merkle.AccountProof(q.Parameters[0])
		if err != nil {
			response = errResponse("获取证明失败")
		} else {
			response = goodResponse(map[string]interface{}{
				"value": value,
				"proof": proof,
				"root":  hex.EncodeToString(merkle.LatestRoot().Bytes()),
			})
		}

	default:
		log.Info("Query参数有误!")
		response = errResponse("Query参数有误!")
	}

	ctx.JSON(http.StatusOK, response)
}

// 账本变动后异步刷新状态树
func updateStateTree() {
	if _, err := merkle.UpdateLedgerState(); err != nil {
		log.Errorf("state tree update error: %s", err)
	}
}

// 正常响应，返回数据
func goodResponse(data interface{}) meta.HttpResponse {
	res := meta.HttpResponse{
		Data: data,
		Code: 20000,
	}
	return res
}

// 出现异常，返回异常信息
func errResponse(errMsg string) meta.HttpResponse {
	res := meta.HttpResponse{
		Error: errMsg,
		Data:  "",
		Code:  20000,
	}
	return res
}
