package meta

// 账本事件类型
const (
	CreatedProjectEvent = "CreatedProject"
	AddFundEvent        = "AddFund"
	RefundEvent         = "Refund"
	ClaimEvent          = "Claim"
)

// 创建项目事件
type CreatedProject struct {
	Creator     string `json:"creator"`
	ProjectId   int    `json:"project_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Period      int64  `json:"period"` //单位秒
	Goal        int    `json:"goal"`
	Token       string `json:"token"`
	Timestamp   int64  `json:"timestamp"`
}

// 出资事件
type AddFund struct {
	Contributor string `json:"contributor"`
	ProjectId   int    `json:"project_id"`
	Token       string `json:"token"`
	Amount      int    `json:"amount"`
	Timestamp   int64  `json:"timestamp"`
}

// 退款事件
type Refund struct {
	Contributor string `json:"contributor"`
	ProjectId   int    `json:"project_id"`
	Amount      int    `json:"amount"`
	Timestamp   int64  `json:"timestamp"`
}

// 提取事件
type Claim struct {
	Owner       string `json:"owner"`
	ProjectId   int    `json:"project_id"`
	TotalFunded int    `json:"total_funded"`
	Timestamp   int64  `json:"timestamp"`
}

// 事件日志记录，落盘和推送都用这个结构
type EventRecord struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}
