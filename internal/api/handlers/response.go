package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"meal-planner/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorBody 錯誤回應
type ErrorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// RespondError 依錯誤種類回傳對應狀態碼；5xx 不回傳內部細節
func RespondError(c *gin.Context, err error) {
	status := common.StatusOf(err)
	code := common.CodeOf(err)
	if errors.Is(err, context.DeadlineExceeded) && status == http.StatusInternalServerError {
		status, code = http.StatusGatewayTimeout, common.ErrCodeGatewayTimeout
	}

	body := ErrorBody{Error: err.Error(), Code: code}
	if status >= http.StatusInternalServerError {
		var ce *common.CustomError
		if errors.As(err, &ce) {
			body.Error = ce.Message
		} else {
			body.Error = common.ErrInternalError.Message
		}
		if gin.Mode() == gin.DebugMode {
			body.Details = err.Error()
		}
		common.LogError("Request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", requestid.Get(c)),
			zap.String("code", code),
			zap.Error(err),
		)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}

// BindJSON 解析請求體；驗證交給呼叫者或服務層
func BindJSON(c *gin.Context, out interface{}) error {
	if err := c.ShouldBindJSON(out); err != nil {
		if errors.Is(err, io.EOF) {
			return common.NewValidationError("request body is required")
		}
		return common.NewValidationError("invalid request body: " + err.Error())
	}
	return nil
}

// QueryInt 讀取整數查詢參數，缺少時回傳 def
func QueryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, common.NewValidationError(key + " must be a non-negative integer")
	}
	return v, nil
}

// BindAndValidate 解析請求體並驗證 validate 標籤
func BindAndValidate(c *gin.Context, out interface{}) error {
	if err := BindJSON(c, out); err != nil {
		return err
	}
	return common.ValidateStruct(out)
}
