package meta

import (
	"github.com/rjkris/go-jellyfish-merkletree/common"
)

// 可以写入状态树的数据
type JFTreeData interface {
	GetKey() common.HashValue
}
