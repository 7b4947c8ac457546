package token

import (
	"encoding/json"
	"errors"
	"sort"
	"sync"

	"github.com/cloudflare/cfssl/log"

	"github.com/crowdfund/common"
	"github.com/crowdfund/levelDB"
	"github.com/crowdfund/meta"
)

/* 这里封装了所有对代币账本的操作
 * 代币账本是众筹账本的协作方：众筹核心只通过
 * Transfer/TransferFrom/Approve/BalanceOf 这组接口移动已有余额，
 * 创世发行之后不再增发、不销毁（总量守恒）
 */

var mutex sync.Mutex //每个公开操作都是原子的
var state State      //私有，通过函数进行操作

type State struct {
	Accounts   map[string]meta.Account   //key: 账户地址 - val: 账户信息
	Allowances map[string]map[string]int //owner -> spender -> 剩余授权额度
}

func init() {
	state.Accounts = map[string]meta.Account{}
	state.Allowances = map[string]map[string]int{}
}

// 创建账户，余额为创世分发的初始代币
func CreateAccount(address, publicKey string, balance int) meta.Account {
	mutex.Lock()
	defer mutex.Unlock()

	account := meta.Account{
		Address:   address,
		Balance:   balance,
		PublicKey: publicKey,
	}
	state.Accounts[address] = account

	putIntoDisk()
	return account
}

// 账户地址是否存在
func ContainsAddress(address string) bool {
	mutex.Lock()
	defer mutex.Unlock()

	_, ok := state.Accounts[address]
	return ok
}

// 获取账户信息
func GetAccount(address string) meta.Account {
	mutex.Lock()
	defer mutex.Unlock()

	return state.Accounts[address]
}

// 查询账户余额，地址不存在时返回0
func BalanceOf(address string) int {
	mutex.Lock()
	defer mutex.Unlock()

	return state.Accounts[address].Balance
}

// 获取所有的账户地址
func GetTotalAddress() []string {
	mutex.Lock()
	defer mutex.Unlock()

	var totalAddress []string
	for address := range state.Accounts {
		totalAddress = append(totalAddress, address)
	}
	sort.Strings(totalAddress)
	return totalAddress
}

// 判断交易发起方是否有足够余额
func CanTransfer(from string, amount int) bool {
	mutex.Lock()
	defer mutex.Unlock()

	return canTransfer(from, amount)
}

func canTransfer(from string, amount int) bool {
	fromAccount := state.Accounts[from]
	if fromAccount.Balance < amount {
		log.Infof("[CanTransfer]: Insufficient balance.")
		return false
	}
	return true
}

// 由 from 向 to 账户转账
func Transfer(from, to string, amount int) error {
	mutex.Lock()
	defer mutex.Unlock()

	if amount <= 0 {
		return nil
	}
	if !canTransfer(from, amount) {
		return errors.New("账户余额不足，无法转账")
	}
	subBalance(from, amount)
	addBalance(to, amount)

	putIntoDisk()
	return nil
}

// owner 授权 spender 可划转的额度，覆盖之前的授权
func Approve(owner, spender string, amount int) {
	mutex.Lock()
	defer mutex.Unlock()

	if state.Allowances[owner] == nil {
		state.Allowances[owner] = map[string]int{}
	}
	state.Allowances[owner][spender] = amount

	putIntoDisk()
}

// 查询 owner 给 spender 的剩余授权额度
func Allowance(owner, spender string) int {
	mutex.Lock()
	defer mutex.Unlock()

	return state.Allowances[owner][spender]
}

// spender 在授权额度内把 from 的代币划转给 to
func TransferFrom(spender, from, to string, amount int) error {
	mutex.Lock()
	defer mutex.Unlock()

	if amount <= 0 {
		return nil
	}
	if state.Allowances[from][spender] < amount {
		return errors.New("授权额度不足，无法划转")
	}
	if !canTransfer(from, amount) {
		return errors.New("账户余额不足，无法转账")
	}
	state.Allowances[from][spender] -= amount
	subBalance(from, amount)
	addBalance(to, amount)

	putIntoDisk()
	return nil
}

func subBalance(from string, amount int) {
	fromAccount := state.Accounts[from]
	fromAccount.Balance -= amount
	state.Accounts[from] = fromAccount
}

func addBalance(to string, amount int) {
	toAccount := state.Accounts[to]
	if toAccount.Address == "" { //首次收款的地址直接建立账户
		toAccount.Address = to
	}
	toAccount.Balance += amount
	state.Accounts[to] = toAccount
}

// 状态树数据（全部账户）
func StateData() []meta.JFTreeData {
	mutex.Lock()
	defer mutex.Unlock()

	var data []meta.JFTreeData
	for _, address := range sortedAddresses() {
		data = append(data, state.Accounts[address])
	}
	return data
}

func sortedAddresses() []string {
	var addresses []string
	for address := range state.Accounts {
		addresses = append(addresses, address)
	}
	sort.Strings(addresses)
	return addresses
}

// 持久化（每次对账户信息的更改都需要持久化到磁盘）
func putIntoDisk() {
	accountBytes, err := json.Marshal(state.Accounts)
	if err != nil {
		log.Errorf("accounts marshal error: %s", err)
		return
	}
	levelDB.DBPut(common.AccountsKey, accountBytes)

	allowanceBytes, err := json.Marshal(state.Allowances)
	if err != nil {
		log.Errorf("allowances marshal error: %s", err)
		return
	}
	levelDB.DBPut(common.AllowancesKey, allowanceBytes)
}

// 从磁盘获取已有的账户信息（在节点启动时执行）
func GetFromDisk() {
	mutex.Lock()
	defer mutex.Unlock()

	if !levelDB.DBHas(common.AccountsKey) {
		return
	}
	accountBytes := levelDB.DBGet(common.AccountsKey)
	_ = json.Unmarshal(accountBytes, &state.Accounts)
	allowanceBytes := levelDB.DBGet(common.AllowancesKey)
	_ = json.Unmarshal(allowanceBytes, &state.Allowances)
}
