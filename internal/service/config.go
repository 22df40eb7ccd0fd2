// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import "time"

// cdnFetchTimeout bounds a single CDN content fetch
// cdnFetchTimeout 限定单次 CDN 内容拉取的最长等待
const cdnFetchTimeout = 5 * time.Minute
