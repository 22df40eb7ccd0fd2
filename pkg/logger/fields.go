package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldDocumentID 文档 ID 字段
	FieldDocumentID = "documentId"

	// FieldLinkID 下载链接 ID 字段
	FieldLinkID = "linkId"

	// FieldBlobKey 对象键字段
	FieldBlobKey = "blobKey"

	// FieldBucket 存储桶名称字段
	FieldBucket = "bucket"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldError 错误信息字段
	FieldError = "error"

	// FieldSize 文件大小字段
	FieldSize = "size"

	// FieldCount 数量字段
	FieldCount = "count"
)
