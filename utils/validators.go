package utils

import (
	"regexp"
	"strconv"
	"strings"
)

// 设备地址为12位十六进制字符串（不含冒号或连字符的MAC地址）
var deviceAddrPattern = regexp.MustCompile(`^[0-9A-Fa-f]{12}$`)

// ValidateDeviceAddr 校验设备地址格式是否为12位十六进制
func ValidateDeviceAddr(addr string) bool {
	return deviceAddrPattern.MatchString(addr)
}

// NormalizeDeviceAddr 将设备地址统一为大写
func NormalizeDeviceAddr(addr string) string {
	return strings.ToUpper(addr)
}

// DeviceIDFromAddr 根据地址末4位十六进制生成数值设备ID，格式非法时返回0
func DeviceIDFromAddr(addr string) int {
	if !ValidateDeviceAddr(addr) {
		return 0
	}
	id, err := strconv.ParseInt(addr[len(addr)-4:], 16, 32)
	if err != nil {
		return 0
	}
	return int(id)
}
