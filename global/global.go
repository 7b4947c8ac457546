package global

/*
 *	账本服务用到的全局变量
 */

var EventLog = make(chan interface{}, 20) // 账本事件，会通过客户端推送到前端

/*
 * 以下参数在启动时根据命令行参数和配置文件确定，不要重新赋值
 */
var RootDir string        // 项目根目录
var DataDir string        // levelDB 数据目录
var ListenAddr string     // 客户端监听地址
var TokenAddress string   // 代币账本标识，初始化后不可更改
var CustodyAddress string // 众筹账本的托管账户地址，项目募集到的代币由该账户保管
