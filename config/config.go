package config

import (
	viper2 "github.com/spf13/viper"

	"github.com/crowdfund/global"
)

func Get(key string) interface{} {
	viper := viper2.New()
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(global.RootDir + "/config/")

	if err := viper.ReadInConfig(); err != nil {
		panic(err.Error())
	}
	return viper.Get(key)
}

// 读取配置项，没有配置时返回缺省值
func GetOrDefault(key string, def interface{}) interface{} {
	v := Get(key)
	if v == nil {
		return def
	}
	return v
}
