package meta

type HttpResponse struct {
	Error string      `json:"error"` // 如果不为空代表错误信息
	Data  interface{} `json:"data"`
	Code  int         `json:"code"` // vue-element-admin的前端校验码，必须为20000
}

// 创建项目请求
type PostProject struct {
	From        string `json:"from"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Period      int64  `json:"period"` //募集时长，单位秒
	Goal        int    `json:"goal"`
}

// 出资请求
type PostFund struct {
	From      string `json:"from"`
	ProjectId int    `json:"project_id"`
	Amount    int    `json:"amount"`
}

// 暂停/恢复项目请求
type PostPause struct {
	From      string `json:"from"`
	ProjectId int    `json:"project_id"`
	Paused    bool   `json:"paused"`
}

// 退款、提取请求
type PostResolve struct {
	From      string `json:"from"`
	ProjectId int    `json:"project_id"`
}

// 代币授权请求，出资前需要先给托管账户授权
type PostApprove struct {
	From    string `json:"from"`
	Spender string `json:"spender"`
	Amount  int    `json:"amount"`
}

// 代币转账请求
type PostTransfer struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int    `json:"amount"`
}

// 链上信息查询请求
type Query struct {
	Type       string   `json:"type"`
	Parameters []string `json:"parameters"`
}
