// Package errors 提供跨层共享的哨兵错误。
// 业务模块自己的错误定义在 service 包内；这里只放仓储层产生、
// 需要被多个模块的 handler 统一映射的错误。
package errors

import "errors"

// ErrOptimisticLock 版本号冲突：记录在读取后已被其他请求修改
var ErrOptimisticLock = errors.New("记录版本冲突，更新未生效")
