package service

import "errors"

var (
	// ErrStorageUnavailable 存储不可用，写路径必须显式失败
	ErrStorageUnavailable = errors.New("存储不可用")
	// ErrSlugConflict slug已被其他记录占用
	ErrSlugConflict = errors.New("slug已被占用")
)
