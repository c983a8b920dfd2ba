package handler

import (
	"errors"
	"net/http"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"

	"fitrank/internal/logic"
	"fitrank/internal/model"
	"fitrank/internal/svc"
	"fitrank/internal/types"
)

type GetRankReq struct {
	UserId string `form:"userId"`
}

type ComputeRankReq struct {
	UserId          string `json:"userId"`
	XP              int64  `json:"xp,optional"`
	Level           int    `json:"level,optional"`
	HasSpecialTitle bool   `json:"hasSpecialTitle,optional"`
}

type RankResp struct {
	types.RankResult
	Ranked bool `json:"ranked"`
}

type ErrorResp struct {
	Message string `json:"message"`
}

func GetRankHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GetRankReq
		if err := httpx.Parse(r, &req); err != nil {
			writeError(w, r, http.StatusBadRequest, err)
			return
		}
		result, err := svcCtx.RankingLogic.ComputeRanksByID(r.Context(), req.UserId)
		if err != nil {
			writeLogicError(w, r, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, &RankResp{RankResult: result, Ranked: result.Ranked()})
	}
}

func ComputeRankHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ComputeRankReq
		if err := httpx.Parse(r, &req); err != nil {
			writeError(w, r, http.StatusBadRequest, err)
			return
		}
		result, err := svcCtx.RankingLogic.ComputeRanks(r.Context(), types.UserRecord{
			ID:              req.UserId,
			XP:              req.XP,
			Level:           req.Level,
			HasSpecialTitle: req.HasSpecialTitle,
		})
		if err != nil {
			writeLogicError(w, r, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, &RankResp{RankResult: result, Ranked: result.Ranked()})
	}
}

// writeLogicError 参数错误返回 400，用户不存在返回 404，名单拉取失败返回 503，其余返回 500
func writeLogicError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, logic.ErrInvalidUser):
		writeError(w, r, http.StatusBadRequest, err)
	case errors.Is(err, logic.ErrUserNotFound):
		writeError(w, r, http.StatusNotFound, err)
	case errors.Is(err, model.ErrFetch):
		writeError(w, r, http.StatusServiceUnavailable, err)
	default:
		writeError(w, r, http.StatusInternalServerError, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, code int, err error) {
	if code >= http.StatusInternalServerError {
		logx.WithContext(r.Context()).Errorf("%s %s: %v", r.Method, r.URL.Path, err)
	}
	httpx.WriteJsonCtx(r.Context(), w, code, &ErrorResp{Message: err.Error()})
}
