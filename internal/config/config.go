package config

import "github.com/zeromicro/go-zero/rest"

const (
	SourceFirestore = "firestore"
	SourceMongo     = "mongo"
	SourceRedis     = "redis"
)

type Config struct {
	rest.RestConf

	Redis struct {
		Addr   string
		Pass   string `json:",optional"`
		DB     int    `json:",default=0"`
		Prefix string `json:",default=fitrank"`
	}

	Firestore struct {
		ProjectID  string `json:",optional"`
		Collection string `json:",default=users"`
	}

	Mongo struct {
		URI        string `json:",optional"`
		Database   string `json:",default=fitrank"`
		Collection string `json:",default=users"`
	}

	Roster struct {
		// Source 计算排名时读取名单的位置
		Source string `json:",default=redis,options=firestore|mongo|redis"`
		// SyncFrom 重建 Redis 索引时的数据源
		SyncFrom string `json:",default=firestore,options=firestore|mongo"`
		// RebuildOnStart 启动时重建一次索引
		RebuildOnStart bool `json:",default=false"`
	}
}
