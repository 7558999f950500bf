package utils

import "testing"

func TestValidateDeviceAddr(t *testing.T) {
	valid := []string{"ECDA3BBE61E8", "ecda3bbe61e8", "000000000000", "FFFFFFFFFFFF"}
	for _, addr := range valid {
		if !ValidateDeviceAddr(addr) {
			t.Errorf("地址 %q 应判定为合法", addr)
		}
	}

	invalid := []string{"", "ECDA3BBE61E", "ECDA3BBE61E80", "EC:DA:3B:BE:61:E8", "ECDA3BBE61EG", "ECDA 3BBE61E8"}
	for _, addr := range invalid {
		if ValidateDeviceAddr(addr) {
			t.Errorf("地址 %q 应判定为非法", addr)
		}
	}
}

func TestNormalizeDeviceAddr(t *testing.T) {
	if got := NormalizeDeviceAddr("ecda3bbe61e8"); got != "ECDA3BBE61E8" {
		t.Errorf("NormalizeDeviceAddr = %s, want ECDA3BBE61E8", got)
	}
}

// 数値設備IDはアドレス末尾4桁の16進値
func TestDeviceIDFromAddr(t *testing.T) {
	if got := DeviceIDFromAddr("ECDA3BBE61E8"); got != 0x61E8 {
		t.Errorf("DeviceIDFromAddr = %d, want %d", got, 0x61E8)
	}
	if got := DeviceIDFromAddr("ECDA3BBE0000"); got != 0 {
		t.Errorf("DeviceIDFromAddr = %d, want 0", got)
	}
	if got := DeviceIDFromAddr("invalid"); got != 0 {
		t.Errorf("非法地址应返回0, got %d", got)
	}
}
