package models

// LightState 表示信号灯三色布尔组合对应的4种运行状态
type LightState string

const (
	LightRunning    LightState = "running"     // 绿灯：运转中
	LightStopYellow LightState = "stop_yellow" // 黄灯：停止
	LightStopRed    LightState = "stop_red"    // 红灯：停止（旧Error）
	LightNone       LightState = "none"        // 全灭：休止
)

// 状态码与显示文本常量（网关侧定义）
const (
	StatusCodeIdle    = "00"
	StatusCodeRunning = "01"
	StatusCodeYellow  = "02"
	StatusCodeRed     = "03"

	StatusTextIdle = "Not Working"
	StatusTextStop = "Stop"
)

// LightStateOf 根据三色灯布尔值判定状态。绿灯优先，其次黄、红，全灭为休止。
func LightStateOf(red, yellow, green bool) LightState {
	switch {
	case green:
		return LightRunning
	case yellow:
		return LightStopYellow
	case red:
		return LightStopRed
	default:
		return LightNone
	}
}

// Color 返回状态对应的显示颜色
func (s LightState) Color() string {
	switch s {
	case LightRunning:
		return "green"
	case LightStopYellow:
		return "yellow"
	case LightStopRed:
		return "red"
	default:
		return "gray"
	}
}

// LightsFromStatusCode 根据状态码还原三色灯布尔值
// 01: 绿灯 (Running) / 02: 黄灯 (Stop) / 03: 红灯 (Stop, 旧Error) / 00: 全灭 (Not Working)
func LightsFromStatusCode(code string) (red, yellow, green bool) {
	return code == StatusCodeRed, code == StatusCodeYellow, code == StatusCodeRunning
}

// NormalizeStatusText 统一显示文本：Error（或状态码03）一律显示为Stop
func NormalizeStatusText(code, text string) string {
	if text == "Error" || code == StatusCodeRed {
		return StatusTextStop
	}
	return text
}
