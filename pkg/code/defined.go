package code

// Success codes // 成功码
var (
	Success = NewSuss(200, lang{
		en:    "Success",
		zh_cn: "成功",
	})
	SuccessCreate = NewSuss(201, lang{
		en:    "Created successfully",
		zh_cn: "创建成功",
	})
)

// Common error codes // 通用错误码
var (
	Failed = NewError(400, lang{
		en:    "Request failed",
		zh_cn: "请求失败",
	})
	ErrorInvalidParams = NewError(10001, lang{
		en:    "Invalid request parameters",
		zh_cn: "请求参数错误",
	})
	ErrorNotFoundAPI = NewError(10002, lang{
		en:    "API not found",
		zh_cn: "接口不存在",
	})
	ErrorTooManyRequests = NewError(10003, lang{
		en:    "Too many requests",
		zh_cn: "请求过多",
	})
	ErrorServerInternal = NewError(10004, lang{
		en:    "Internal server error",
		zh_cn: "服务内部错误",
	})
	ErrorDatabase = NewError(10005, lang{
		en:    "Database operation failed",
		zh_cn: "数据库操作失败",
	})
)

// Document error codes // 文档错误码
var (
	ErrorDocumentNotFound = NewError(20001, lang{
		en:    "Document not found",
		zh_cn: "文档不存在",
	})
	ErrorDocumentUploadFailed = NewError(20002, lang{
		en:    "Document upload failed",
		zh_cn: "文档上传失败",
	})
	ErrorDocumentDeleteFailed = NewError(20003, lang{
		en:    "Document delete failed",
		zh_cn: "文档删除失败",
	})
)

// Download link error codes // 下载链接错误码
var (
	ErrorLinkExpiryInvalid = NewError(30001, lang{
		en:    "Link expiry duration must be positive",
		zh_cn: "链接有效期必须为正数",
	})
	ErrorLinkInvalidOrExpired = NewError(30002, lang{
		en:    "Link invalid or expired",
		zh_cn: "链接无效或已过期",
	})
	ErrorLinkCreateFailed = NewError(30003, lang{
		en:    "Link create failed",
		zh_cn: "链接创建失败",
	})
)

// Storage error codes // 存储错误码
var (
	ErrorInvalidStorageType = NewError(40001, lang{
		en:    "Invalid storage type",
		zh_cn: "无效的存储类型",
	})
	ErrorStorageUpload = NewError(40002, lang{
		en:    "Object storage upload failed",
		zh_cn: "对象存储上传失败",
	})
	ErrorStorageDownload = NewError(40003, lang{
		en:    "Object storage download failed",
		zh_cn: "对象存储下载失败",
	})
	ErrorStorageDelete = NewError(40004, lang{
		en:    "Object storage delete failed",
		zh_cn: "对象存储删除失败",
	})
)
