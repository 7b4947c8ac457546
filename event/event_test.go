package event

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/crowdfund/levelDB"
	"github.com/crowdfund/meta"
)

func TestMain(m *testing.M) {
	dir, err := ioutil.TempDir("", "event_test")
	if err != nil {
		panic(err)
	}
	levelDB.InitDB(dir + "/ledger")
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestRecordAndReload(t *testing.T) {
	Record(meta.CreatedProjectEvent, meta.CreatedProject{
		Creator:   "creator",
		ProjectId: 1,
		Name:      "Project 1",
		Period:    3600,
		Goal:      1000,
		Token:     "ssbc20",
		Timestamp: 1700000000,
	})
	Record(meta.AddFundEvent, meta.AddFund{
		Contributor: "funder",
		ProjectId:   1,
		Token:       "ssbc20",
		Amount:      500,
		Timestamp:   1700000100,
	})

	all := GetAllEventData()
	if len(all) != 2 {
		t.Fatalf("事件数量错误: %d", len(all))
	}
	if all[0].Type != meta.CreatedProjectEvent || all[1].Type != meta.AddFundEvent {
		t.Errorf("事件类型顺序错误: %+v", all)
	}

	// 清空内存后从磁盘恢复
	eventData = nil
	InitEventData()
	all = GetAllEventData()
	if len(all) != 2 {
		t.Fatalf("落盘恢复后事件数量错误: %d", len(all))
	}
	if all[1].Type != meta.AddFundEvent {
		t.Errorf("落盘恢复后事件类型错误: %s", all[1].Type)
	}
}
