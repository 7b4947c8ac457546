package meta

import (
	"crypto/sha256"
	"strconv"

	"github.com/rjkris/go-jellyfish-merkletree/common"
)

//众筹项目

type Project struct {
	Id          int    `json:"id"`           //项目id，从1开始递增，0表示不存在
	Owner       string `json:"owner"`        //创建者地址，创建后不可修改
	Name        string `json:"name"`         //项目名称
	Description string `json:"description"`  //项目描述
	Deadline    int64  `json:"deadline"`     //募集截止时间（创建时间+period）
	Goal        int    `json:"goal"`         //最低募集目标
	TotalFunded int    `json:"total_funded"` //当前未退还的出资总额
	Paused      bool   `json:"paused"`       //暂停后不接受新的出资
	Claimed     bool   `json:"claimed"`      //发起人是否已提取，只会置一次
}

func (p Project) GetKey() common.HashValue {
	h := sha256.Sum256([]byte("project-" + strconv.Itoa(p.Id)))
	return common.BytesToHash(h[:])
}
