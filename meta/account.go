package meta

import (
	"encoding/hex"

	"github.com/rjkris/go-jellyfish-merkletree/common"
)

//代币账户

type Account struct {
	Address   string `json:"address"`    //账户地址（公钥hash）
	Balance   int    `json:"balance"`    //代币余额
	PublicKey string `json:"public_key"` //账户公钥
}

func (a Account) GetKey() common.HashValue {
	keyBytes, _ := hex.DecodeString(a.Address)
	return common.BytesToHash(keyBytes)
}

// 注册账户时返回给用户的信息，私钥只保存在client本地
type ChainAccount struct {
	AccountAddress string `json:"account_address"`
	PublicKey      string `json:"public_key"`
	PrivateKey     string `json:"private_key"`
}
