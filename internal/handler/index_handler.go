package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"fitrank/internal/svc"
	"fitrank/internal/types"
)

type UpdateUserReq struct {
	UserId          string `json:"userId"`
	XP              int64  `json:"xp"`
	Level           int    `json:"level,optional"`
	HasSpecialTitle bool   `json:"hasSpecialTitle,optional"`
}

type RemoveUserReq struct {
	UserId string `form:"userId"`
}

type IndexSizeResp struct {
	Size int64 `json:"size"`
}

type IndexResp struct {
	Success bool `json:"success"`
	Count   int  `json:"count,omitempty"`
}

func RebuildIndexHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svcCtx.IndexLogic.RebuildIndex(r.Context())
		if err != nil {
			writeLogicError(w, r, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, &IndexResp{Success: true, Count: n})
	}
}

func UpdateUserHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateUserReq
		if err := httpx.Parse(r, &req); err != nil {
			writeError(w, r, http.StatusBadRequest, err)
			return
		}
		err := svcCtx.IndexLogic.OnUserXPChanged(r.Context(), types.UserRecord{
			ID:              req.UserId,
			XP:              req.XP,
			Level:           req.Level,
			HasSpecialTitle: req.HasSpecialTitle,
		})
		if err != nil {
			writeLogicError(w, r, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, &IndexResp{Success: true})
	}
}

func RemoveUserHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RemoveUserReq
		if err := httpx.Parse(r, &req); err != nil {
			writeError(w, r, http.StatusBadRequest, err)
			return
		}
		if err := svcCtx.IndexLogic.OnUserRemoved(r.Context(), req.UserId); err != nil {
			writeLogicError(w, r, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, &IndexResp{Success: true})
	}
}

func IndexSizeHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svcCtx.IndexLogic.IndexSize(r.Context())
		if err != nil {
			writeLogicError(w, r, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, &IndexSizeResp{Size: n})
	}
}
