// Package cast 提供了热路径上使用的高性能整数类型转换。
package cast

import (
	"unsafe"
)

// As 是一个极致高性能的泛型转换函数，通过 unsafe 直接读取内存。
// 警告：仅限用于已知物理布局兼容的类型转换（如 int -> uint64 的截断或位读取）。
func As[T any, F any](from F) T {
	return *(*T)(unsafe.Pointer(&from))
}

// 以下保留常用别名以提高代码可读性，但底层统一调用泛型 As.

func IntToUint32(i int) uint32 { return As[uint32](i) }
func IntToUint64(i int) uint64 { return As[uint64](i) }
func IntToUint(i int) uint     { return As[uint](i) }
