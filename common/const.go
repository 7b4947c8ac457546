package common

//levelDB key
const AccountsKey = "accountsKey"     //代币账户状态
const AllowancesKey = "allowancesKey" //代币授权额度
const ProjectsKey = "projectsKey"     //众筹项目状态

//存储全部事件日志
const EventAllDataKey = "eventAllDataKey"

//client本地保存账户私钥的key后缀
const AccountsPrivateKeySuffix = "_prvKey"

//redis key
const EventFeedKey = "projectEvents" //事件推送列表

//新注册账户的初始代币余额（配置缺省值）
const InitBalance = 10000
