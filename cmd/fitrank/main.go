package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest"

	"fitrank/internal/config"
	"fitrank/internal/handler"
	"fitrank/internal/svc"
)

var configFile = flag.String("f", "etc/fitrank.yaml", "the config file")

func main() {
	flag.Parse()

	var c config.Config
	conf.MustLoad(*configFile, &c)

	server := rest.MustNewServer(c.RestConf)
	defer server.Stop()

	svcCtx, err := svc.NewServiceContext(c)
	if err != nil {
		logx.Must(err)
	}
	defer svcCtx.Close()

	if c.Roster.RebuildOnStart {
		if _, err := svcCtx.IndexLogic.RebuildIndex(context.Background()); err != nil {
			logx.Errorf("initial roster index rebuild failed: %v", err)
		}
	}

	handler.RegisterHandlers(server, svcCtx)

	fmt.Printf("Starting server at %s:%d...\n", c.Host, c.Port)
	server.Start()
}
