package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"fitrank/internal/svc"
)

func RegisterHandlers(server *rest.Server, svcCtx *svc.ServiceContext) {
	server.AddRoutes([]rest.Route{
		{Method: http.MethodGet, Path: "/tier", Handler: GetTierHandler(svcCtx)},
		{Method: http.MethodGet, Path: "/tiers", Handler: ListTiersHandler()},
		{Method: http.MethodGet, Path: "/rank", Handler: GetRankHandler(svcCtx)},
		{Method: http.MethodPost, Path: "/rank", Handler: ComputeRankHandler(svcCtx)},
		{Method: http.MethodPost, Path: "/index/rebuild", Handler: RebuildIndexHandler(svcCtx)},
		{Method: http.MethodGet, Path: "/index", Handler: IndexSizeHandler(svcCtx)},
		{Method: http.MethodPost, Path: "/index/user", Handler: UpdateUserHandler(svcCtx)},
		{Method: http.MethodDelete, Path: "/index/user", Handler: RemoveUserHandler(svcCtx)},
	})
}
