package crowdfund

import (
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/cloudflare/cfssl/log"

	"github.com/crowdfund/common"
	"github.com/crowdfund/event"
	"github.com/crowdfund/global"
	"github.com/crowdfund/levelDB"
	"github.com/crowdfund/meta"
	"github.com/crowdfund/token"
)

/* 众筹账本核心：项目登记、出资记账、到期结算
 *
 * 每个公开操作都在锁内整体执行：要么全部生效要么完全不生效，
 * 代币划转失败的操作不会留下任何账本改动。
 * 到期/达标不保存阶段字段，每次结算调用时根据
 * (当前时间 vs deadline, totalFunded vs goal, claimed) 现算，
 * 避免冗余状态和事实不一致。
 * 出账方向（Refund/Claim）先改账本再划转代币，
 * 划转方不可能回头看到未定稿的余额。
 */

var mutex sync.Mutex
var state State //私有，通过函数进行操作

var now = func() int64 { return time.Now().Unix() } //单测会替换

type State struct {
	Projects      map[int]meta.Project   //key: 项目id - val: 项目信息
	LastProjectId int                    //最近分配的项目id，0表示还没有任何项目
	Funded        map[int]map[string]int //项目id -> 出资人地址 -> 未退还出资额
}

func init() {
	state.Projects = map[int]meta.Project{}
	state.Funded = map[int]map[string]int{}
}

// 创建众筹项目，返回新分配的项目id
// deadline = 当前时间 + period
func CreateProject(caller, name, description string, period int64, goal int) (int, error) {
	mutex.Lock()
	defer mutex.Unlock()

	if caller == "" || name == "" || period <= 0 || goal <= 0 {
		return 0, errors.New("Invalid project params")
	}

	timestamp := now()
	state.LastProjectId++
	project := meta.Project{
		Id:          state.LastProjectId,
		Owner:       caller,
		Name:        name,
		Description: description,
		Deadline:    timestamp + period,
		Goal:        goal,
		TotalFunded: 0,
		Paused:      false,
		Claimed:     false,
	}
	state.Projects[project.Id] = project
	state.Funded[project.Id] = map[string]int{}

	putIntoDisk()
	event.Record(meta.CreatedProjectEvent, meta.CreatedProject{
		Creator:     caller,
		ProjectId:   project.Id,
		Name:        name,
		Description: description,
		Period:      period,
		Goal:        goal,
		Token:       global.TokenAddress,
		Timestamp:   timestamp,
	})
	log.Infof("账户 %s 创建项目 %d (%s)", caller, project.Id, name)
	return project.Id, nil
}

// 最近分配的项目id，同时也是项目存在性的上界
func LastProjectId() int {
	mutex.Lock()
	defer mutex.Unlock()

	return state.LastProjectId
}

// 向项目出资，代币从出资人划转到托管账户
// 需要出资人事先给托管账户授权足够的额度
func AddFundTo(caller string, projectId, amount int) error {
	mutex.Lock()
	defer mutex.Unlock()

	timestamp := now()
	project, ok := state.Projects[projectId]
	if !ok || timestamp >= project.Deadline {
		return errors.New("Not started project or Finished funding period")
	}
	if project.Paused {
		return errors.New("Paused")
	}
	if amount <= 0 {
		// 代币层把非正数划转当作空操作，放过去会把0出资记成出资人
		return errors.New("Invalid amount")
	}

	// 先入账代币，划转失败时账本不留任何改动
	if err := token.TransferFrom(global.CustodyAddress, caller, global.CustodyAddress, amount); err != nil {
		return err
	}

	state.Funded[projectId][caller] += amount
	project.TotalFunded += amount
	state.Projects[projectId] = project

	putIntoDisk()
	event.Record(meta.AddFundEvent, meta.AddFund{
		Contributor: caller,
		ProjectId:   projectId,
		Token:       global.TokenAddress,
		Amount:      amount,
		Timestamp:   timestamp,
	})
	return nil
}

// 查询出资人当前未退还的出资额，没出资或已退款时为0
func FundedOf(projectId int, account string) int {
	mutex.Lock()
	defer mutex.Unlock()

	return state.Funded[projectId][account]
}

// 暂停/恢复项目，只有项目创建者可以调用
// 暂停只拦截新的出资，不影响到期后的退款和提取
func SetProjectPaused(caller string, projectId int, paused bool) error {
	mutex.Lock()
	defer mutex.Unlock()

	project, ok := state.Projects[projectId]
	if !ok || project.Owner != caller {
		return errors.New("Not project owner")
	}

	project.Paused = paused
	state.Projects[projectId] = project

	putIntoDisk()
	return nil
}

// 募集期结束且未达标时，出资人取回自己的出资，返回退款金额
// 退款和提取是互斥的结局：达标走Claim，未达标走Refund
func Refund(caller string, projectId int) (int, error) {
	mutex.Lock()
	defer mutex.Unlock()

	timestamp := now()
	project := state.Projects[projectId]
	amount := state.Funded[projectId][caller]
	if amount == 0 {
		return 0, errors.New("Not funder")
	}
	if timestamp < project.Deadline {
		return 0, errors.New("Not finished funding period")
	}
	if project.TotalFunded >= project.Goal {
		return 0, errors.New("Met a funding goal, can not refund")
	}
	if project.Claimed {
		// 未达标项目被创建者提走之后托管里已经没有这笔钱，退款一律拒绝
		return 0, errors.New("Already claimed")
	}
	if !token.CanTransfer(global.CustodyAddress, amount) {
		// 操作串行执行时不会走到这里，托管余额始终覆盖未退还出资
		return 0, errors.New("托管账户余额不足")
	}

	// 先清零再转出，退款后 FundedOf 立即为0，二次退款会落在 Not funder
	state.Funded[projectId][caller] = 0
	project.TotalFunded -= amount
	state.Projects[projectId] = project
	putIntoDisk()

	if err := token.Transfer(global.CustodyAddress, caller, amount); err != nil {
		return 0, err
	}
	event.Record(meta.RefundEvent, meta.Refund{
		Contributor: caller,
		ProjectId:   projectId,
		Amount:      amount,
		Timestamp:   timestamp,
	})
	return amount, nil
}

// 募集期结束后项目创建者一次性提取全部募集额，返回提取金额
// 出资记录保留作为历史，不随提取清零
func Claim(caller string, projectId int) (int, error) {
	mutex.Lock()
	defer mutex.Unlock()

	timestamp := now()
	project, ok := state.Projects[projectId]
	if !ok || project.Owner != caller {
		return 0, errors.New("Not project owner")
	}
	if timestamp < project.Deadline {
		return 0, errors.New("Not finished funding period")
	}
	if project.Claimed {
		return 0, errors.New("Already claimed")
	}

	amount := project.TotalFunded
	if amount > 0 && !token.CanTransfer(global.CustodyAddress, amount) {
		return 0, errors.New("托管账户余额不足")
	}

	// 先置位再转出，二次提取会落在 Already claimed
	project.Claimed = true
	state.Projects[projectId] = project
	putIntoDisk()

	if err := token.Transfer(global.CustodyAddress, caller, amount); err != nil {
		return 0, err
	}
	event.Record(meta.ClaimEvent, meta.Claim{
		Owner:       caller,
		ProjectId:   projectId,
		TotalFunded: amount,
		Timestamp:   timestamp,
	})
	log.Infof("账户 %s 提取项目 %d 的募集额 %d", caller, projectId, amount)
	return amount, nil
}

// 获取项目信息
func GetProject(projectId int) (meta.Project, bool) {
	mutex.Lock()
	defer mutex.Unlock()

	project, ok := state.Projects[projectId]
	return project, ok
}

// 获取全部项目，按id排序
func GetAllProjects() []meta.Project {
	mutex.Lock()
	defer mutex.Unlock()

	var projects []meta.Project
	for _, project := range state.Projects {
		projects = append(projects, project)
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].Id < projects[j].Id })
	return projects
}

// 状态树数据（全部项目）
func StateData() []meta.JFTreeData {
	var data []meta.JFTreeData
	for _, project := range GetAllProjects() {
		data = append(data, project)
	}
	return data
}

// 持久化（每次对项目信息的更改都需要持久化到磁盘）
func putIntoDisk() {
	stateBytes, err := json.Marshal(state)
	if err != nil {
		log.Errorf("projects marshal error: %s", err)
		return
	}
	levelDB.DBPut(common.ProjectsKey, stateBytes)
}

// 从磁盘获取已有的项目信息（在节点启动时执行）
func GetFromDisk() {
	mutex.Lock()
	defer mutex.Unlock()

	if !levelDB.DBHas(common.ProjectsKey) {
		return
	}
	stateBytes := levelDB.DBGet(common.ProjectsKey)
	_ = json.Unmarshal(stateBytes, &state)
}
