package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"fitrank/internal/model"
	"fitrank/internal/svc"
	"fitrank/internal/types"
)

// GetTierReq 传 userId 时按数据源中存储的用户计算，否则按 xp、title、level 计算
type GetTierReq struct {
	UserId string `form:"userId,optional"`
	XP     int64  `form:"xp,optional"`
	Title  bool   `form:"title,optional"`
	Level  int    `form:"level,optional"`
}

type TierResp struct {
	Tier     types.TierDescriptor `json:"tier"`
	Progress float64              `json:"progress"`
}

type TierListResp struct {
	List []types.TierDescriptor `json:"list"`
}

func GetTierHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GetTierReq
		if err := httpx.Parse(r, &req); err != nil {
			writeError(w, r, http.StatusBadRequest, err)
			return
		}
		if req.UserId != "" {
			desc, progress, err := svcCtx.TierLogic.ClassifyStoredUser(r.Context(), req.UserId)
			if err != nil {
				writeLogicError(w, r, err)
				return
			}
			httpx.OkJsonCtx(r.Context(), w, &TierResp{Tier: desc, Progress: progress})
			return
		}
		desc := model.ClassifyTier(req.XP, req.Title, req.Level)
		httpx.OkJsonCtx(r.Context(), w, &TierResp{
			Tier:     desc,
			Progress: model.Progress(desc, req.XP),
		})
	}
}

func ListTiersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.OkJsonCtx(r.Context(), w, &TierListResp{List: model.Tiers()})
	}
}
