package services

import "errors"

// 服务层错误定义，控制器据此映射HTTP状态码
var (
	// ErrInvalidAddr 设备地址格式非法（要求12位十六进制）
	ErrInvalidAddr = errors.New("无效的设备地址，请输入12位十六进制字符（例: ECDA3BBE61E8）")

	// ErrDeviceExists 设备地址已登记
	ErrDeviceExists = errors.New("该设备地址已登记")

	// ErrDeviceNotFound 设备未登记
	ErrDeviceNotFound = errors.New("设备不存在")

	// ErrInvalidDate 日期格式非法（要求YYYY-MM-DD）
	ErrInvalidDate = errors.New("日期格式不正确（YYYY-MM-DD）")

	// ErrInvalidDateRange 开始日期晚于结束日期
	ErrInvalidDateRange = errors.New("开始日期必须早于或等于结束日期")
)
