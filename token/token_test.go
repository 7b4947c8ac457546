package token

import (
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"os"
	"testing"

	"github.com/crowdfund/levelDB"
	"github.com/crowdfund/meta"
	"github.com/crowdfund/util"
)

func TestMain(m *testing.M) {
	dir, err := ioutil.TempDir("", "token_test")
	if err != nil {
		panic(err)
	}
	levelDB.InitDB(dir + "/ledger")
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

var accountSeq int

func newAddress() string {
	accountSeq++
	h, _ := util.CalculateHash([]byte(fmt.Sprintf("token-account-%d", accountSeq)))
	return hex.EncodeToString(h)
}

func TestCreateAndQuery(t *testing.T) {
	address := newAddress()
	if ContainsAddress(address) {
		t.Errorf("未注册地址不应该存在")
	}
	CreateAccount(address, "pub", 100)
	if !ContainsAddress(address) {
		t.Errorf("注册后地址应该存在")
	}
	if BalanceOf(address) != 100 {
		t.Errorf("余额错误: %d", BalanceOf(address))
	}
	if BalanceOf(newAddress()) != 0 {
		t.Errorf("不存在的地址余额应该为0")
	}
}

func TestTransfer(t *testing.T) {
	sender := newAddress()
	receiver := newAddress()
	CreateAccount(sender, "", 1000)
	CreateAccount(receiver, "", 0)

	if err := Transfer(sender, receiver, 300); err != nil {
		t.Fatal(err)
	}
	if BalanceOf(sender) != 700 || BalanceOf(receiver) != 300 {
		t.Errorf("转账后余额错误: %d %d", BalanceOf(sender), BalanceOf(receiver))
	}

	// 余额不足
	if err := Transfer(sender, receiver, 10000); err == nil {
		t.Errorf("余额不足的转账应该失败")
	}
	if BalanceOf(sender) != 700 || BalanceOf(receiver) != 300 {
		t.Errorf("失败的转账不应该改变余额")
	}

	// 非正数金额是空操作
	if err := Transfer(sender, receiver, 0); err != nil {
		t.Errorf("零转账应该是空操作: %v", err)
	}
	if err := Transfer(sender, receiver, -5); err != nil {
		t.Errorf("负数转账应该是空操作: %v", err)
	}
	if BalanceOf(sender) != 700 {
		t.Errorf("空操作不应该改变余额")
	}
}

func TestApproveAndTransferFrom(t *testing.T) {
	owner := newAddress()
	spender := newAddress()
	receiver := newAddress()
	CreateAccount(owner, "", 1000)
	CreateAccount(spender, "", 0)
	CreateAccount(receiver, "", 0)

	// 没有授权时不能划转
	if err := TransferFrom(spender, owner, receiver, 100); err == nil {
		t.Errorf("未授权的划转应该失败")
	}

	Approve(owner, spender, 500)
	if Allowance(owner, spender) != 500 {
		t.Errorf("授权额度错误: %d", Allowance(owner, spender))
	}

	if err := TransferFrom(spender, owner, receiver, 300); err != nil {
		t.Fatal(err)
	}
	if BalanceOf(owner) != 700 || BalanceOf(receiver) != 300 {
		t.Errorf("划转后余额错误")
	}
	// 划转消耗授权额度
	if Allowance(owner, spender) != 200 {
		t.Errorf("划转后剩余额度错误: %d", Allowance(owner, spender))
	}
	// 超过剩余额度
	if err := TransferFrom(spender, owner, receiver, 300); err == nil {
		t.Errorf("超过额度的划转应该失败")
	}
	// 覆盖式授权
	Approve(owner, spender, 50)
	if Allowance(owner, spender) != 50 {
		t.Errorf("重新授权应该覆盖旧额度")
	}
}

// 总量守恒：任何转账序列都不会改变余额总和
func TestConservation(t *testing.T) {
	a := newAddress()
	b := newAddress()
	c := newAddress()
	CreateAccount(a, "", 600)
	CreateAccount(b, "", 300)
	CreateAccount(c, "", 100)
	total := func() int { return BalanceOf(a) + BalanceOf(b) + BalanceOf(c) }
	want := total()

	_ = Transfer(a, b, 200)
	Approve(b, c, 500)
	_ = TransferFrom(c, b, c, 400)
	_ = Transfer(c, a, 50)
	_ = Transfer(b, c, 100000) // 失败，不影响总量

	if total() != want {
		t.Errorf("转账序列改变了代币总量: %d -> %d", want, total())
	}
}

// 落盘后重新加载，账户和授权保持一致
func TestPersistence(t *testing.T) {
	owner := newAddress()
	spender := newAddress()
	CreateAccount(owner, "pub", 888)
	Approve(owner, spender, 77)

	state.Accounts = map[string]meta.Account{}
	state.Allowances = map[string]map[string]int{}
	GetFromDisk()

	if BalanceOf(owner) != 888 {
		t.Errorf("落盘恢复后余额不一致")
	}
	if Allowance(owner, spender) != 77 {
		t.Errorf("落盘恢复后授权额度不一致")
	}
}
