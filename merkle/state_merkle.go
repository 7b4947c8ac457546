package merkle

import (
	"encoding/hex"
	"encoding/json"
	"sync"

	"github.com/cloudflare/cfssl/log"
	"github.com/rjkris/go-jellyfish-merkletree/common"
	"github.com/rjkris/go-jellyfish-merkletree/jellyfish"

	"github.com/crowdfund/crowdfund"
	"github.com/crowdfund/meta"
	"github.com/crowdfund/token"
)

/*
 * 账本状态树：把全部代币账户和众筹项目写入jellyfish merkle树，
 * 对外提供状态根和存在性证明，审计方不用信任节点就能核对账本
 */

var StatePath string //状态树数据目录，启动时设置

var mutex sync.Mutex
var version uint64 = 0 // 只有在账本状态变动时，版本号才加一
var latestRoot common.HashValue

func UpdateStateTree(data []meta.JFTreeData, version uint64, path string) (common.HashValue, error) {
	db := jellyfish.NewTreeStore(path)
	defer db.Db.Close()
	tree := jellyfish.JfMerkleTree{
		db,
		nil,
	}
	var kvs []jellyfish.ValueSetItem
	for _, item := range data {
		valueBytes, _ := json.Marshal(item)
		kvs = append(kvs, jellyfish.ValueSetItem{
			item.GetKey(),
			jellyfish.ValueT{valueBytes},
		})
	}
	rootHash, batch := tree.PutValueSet(kvs, jellyfish.Version(version))
	err := db.WriteTreeUpdateBatch(batch)
	if err != nil {
		log.Errorf("ledger state update error: %s", err)
		return rootHash, err
	}
	return rootHash, nil
}

// 把当前账本状态（账户+项目）写入状态树，返回新的状态根
func UpdateLedgerState() (common.HashValue, error) {
	mutex.Lock()
	defer mutex.Unlock()

	var data []meta.JFTreeData
	data = append(data, token.StateData()...)
	data = append(data, crowdfund.StateData()...)
	if len(data) == 0 {
		return latestRoot, nil
	}

	rootHash, err := UpdateStateTree(data, version, StatePath)
	if err != nil {
		return rootHash, err
	}
	version++
	latestRoot = rootHash
	return rootHash, nil
}

// 最近一次写入的状态根
func LatestRoot() common.HashValue {
	mutex.Lock()
	defer mutex.Unlock()

	return latestRoot
}

// 获取账户数据和proof
func GetProofValue(address string, version uint64, path string) ([]byte, jellyfish.SparseMerkleProof, error) {
	db := jellyfish.NewTreeStore(path)
	defer db.Db.Close()
	tree := jellyfish.JfMerkleTree{db, nil}
	addressBytes, _ := hex.DecodeString(address)
	k := common.BytesToHash(addressBytes)
	proofValue, proof := tree.GetWithProof(k, jellyfish.Version(version))
	return proofValue.GetValue(), proof, nil
}

// 针对最近版本的账户存在性证明
func AccountProof(address string) ([]byte, jellyfish.SparseMerkleProof, error) {
	mutex.Lock()
	cur := version
	mutex.Unlock()
	if cur == 0 {
		return GetProofValue(address, 0, StatePath)
	}
	return GetProofValue(address, cur-1, StatePath)
}

// 存在性验证
func ProofVerify(rootHash common.HashValue, proof jellyfish.SparseMerkleProof, address string, value meta.JFTreeData) (bool, error) {
	addressBytes, _ := hex.DecodeString(address)
	k := common.BytesToHash(addressBytes)
	dataBytes, err := json.Marshal(value)
	if err != nil {
		log.Errorf("account marshal error: %s", err)
		return false, err
	}
	res := proof.Verify(rootHash, k, jellyfish.ValueT{dataBytes})
	return res, nil
}
