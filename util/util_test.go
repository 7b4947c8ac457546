package util

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestCalculateHash(t *testing.T) {
	h1, err := CalculateHash([]byte("hello"))
	if err != nil {
		t.Error(err)
	}
	h2, _ := CalculateHash([]byte("hello"))
	if !bytes.Equal(h1, h2) {
		t.Errorf("同样的输入hash结果应该相同")
	}
	if len(h1) != 32 {
		t.Errorf("hash长度应该为32字节，实际为%d", len(h1))
	}
}

func TestGetKeyPair(t *testing.T) {
	prv, pub := GetKeyPair()
	if len(prv) == 0 || len(pub) == 0 {
		t.Errorf("生成秘钥对失败")
	}
	// 公钥hash作为账户地址，256位
	pubHash, _ := CalculateHash(pub)
	address := hex.EncodeToString(pubHash)
	if len(address) != 64 {
		t.Errorf("account address len: %d", len(address))
	}
}

func TestContains(t *testing.T) {
	arr := []string{"a", "b"}
	if !Contains(arr, "a") || Contains(arr, "c") {
		t.Errorf("err")
	}
}
