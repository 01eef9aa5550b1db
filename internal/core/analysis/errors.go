package analysis

import (
	"errors"
)

// 模型輸出解析錯誤
// 兩者在 HTTP 層的映射不同：MalformedModelOutput 對應帶重試提示的 500，
// InvalidShape 對內可辨識、對外折入一般 500
var (
	// ErrMalformedModelOutput 清理後的模型輸出不是合法 JSON
	ErrMalformedModelOutput = errors.New("model output is not valid JSON")

	// ErrInvalidShape 解碼成功但缺少預期欄位或型別不符
	ErrInvalidShape = errors.New("model output has unexpected shape")
)
