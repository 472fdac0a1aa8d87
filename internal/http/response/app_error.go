package response

// AppError 业务码 + 文案 key，原始错误只进日志不对外
type AppError struct {
	Code int
	Key  string
	Err  error
}

// NewAppError 构造错误
func NewAppError(code int, key string, err error) *AppError {
	return &AppError{Code: code, Key: key, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Key
	}
	return e.Key + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Upstream 存储或第三方调用失败，对外只返回通用文案
func (e *AppError) Upstream() bool {
	return e != nil && e.Code >= CodeInternal
}
