package errors

import "errors"

// ErrDuplicateKey 唯一键冲突：同键记录已存在
// 由 Repository 层在条件插入未生效时返回，Service 层映射为业务错误
var ErrDuplicateKey = errors.New("记录已存在，唯一键冲突")
