package controllers

import (
	"net/http"
	"strconv"

	"lighttower-monitor-service/services"
	"lighttower-monitor-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceStatsController 定义稼働率集計控制器接口
type InterfaceStatsController interface {
	GetDeviceTimeline()
	GetOperationRate()
	GetCurrentOperationRate()
	GetDeviceHourlyRate()
	GetOverallCurrentStatus()
	GetOverallHourlyStatus()
	GetOverallDailyRate()
	GetDailyGreenApples()
	GetHourlyGreenApples()
}

// StatsController 处理稼働率集計相关的请求
type StatsController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewStatsController 创建一个新的稼働率集計控制器
func NewStatsController(ctx *gin.Context, container *container.ServiceContainer) *StatsController {
	return &StatsController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleStatsFunc 返回一个处理稼働率集計请求的Gin处理函数
func HandleStatsFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewStatsController(ctx, container)

		switch method {
		case "getDeviceTimeline":
			controller.GetDeviceTimeline()
		case "getOperationRate":
			controller.GetOperationRate()
		case "getCurrentOperationRate":
			controller.GetCurrentOperationRate()
		case "getDeviceHourlyRate":
			controller.GetDeviceHourlyRate()
		case "getOverallCurrentStatus":
			controller.GetOverallCurrentStatus()
		case "getOverallHourlyStatus":
			controller.GetOverallHourlyStatus()
		case "getOverallDailyRate":
			controller.GetOverallDailyRate()
		case "getDailyGreenApples":
			controller.GetDailyGreenApples()
		case "getHourlyGreenApples":
			controller.GetHourlyGreenApples()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

func (c *StatsController) statsService() services.InterfaceStatsService {
	return c.Container.GetService("stats").(services.InterfaceStatsService)
}

// 1. GetDeviceTimeline 获取设备稼働タイムライン
// @Summary 获取设备稼働タイムライン
// @Description 获取指定营业日的日勤（6:00-18:00）/夜勤（18:00-翌6:00）タイムライン
// @Tags stats
// @Accept json
// @Produce json
// @Param device_addr path string true "设备地址（12位十六进制）"
// @Param date query string false "日付（YYYY-MM-DD、省略時は当日の営業日）"
// @Success 200 {object} services.DeviceTimeline
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /devices/{device_addr}/timeline [get]
func (c *StatsController) GetDeviceTimeline() {
	timeline, err := c.statsService().GetDeviceTimeline(c.Ctx.Param("device_addr"), c.Ctx.Query("date"))
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    timeline,
	})
}

// 2. GetOperationRate 获取期间指定的稼働率
// @Summary 获取期间指定的稼働率
// @Description 获取指定期间（日历日0:00～翌0:00）的稼働率，緑ライトのみ稼働としてカウント
// @Tags stats
// @Accept json
// @Produce json
// @Param device_addr path string true "设备地址（12位十六进制）"
// @Param start_date query string true "開始日（YYYY-MM-DD）"
// @Param end_date query string true "終了日（YYYY-MM-DD）"
// @Success 200 {object} services.OperationRate
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /devices/{device_addr}/operation-rate [get]
func (c *StatsController) GetOperationRate() {
	rate, err := c.statsService().GetOperationRate(
		c.Ctx.Param("device_addr"),
		c.Ctx.Query("start_date"),
		c.Ctx.Query("end_date"),
	)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    rate,
	})
}

// 3. GetCurrentOperationRate 获取当日稼働率
// @Summary 获取当日稼働率
// @Description 获取当日营业日开始（6:00）から現在までの稼働率
// @Tags stats
// @Accept json
// @Produce json
// @Param device_addr path string true "设备地址（12位十六进制）"
// @Success 200 {object} services.OperationRate
// @Failure 500 {object} ErrorResponse
// @Router /devices/{device_addr}/current-operation-rate [get]
func (c *StatsController) GetCurrentOperationRate() {
	rate, err := c.statsService().GetCurrentOperationRate(c.Ctx.Param("device_addr"))
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    rate,
	})
}

// 4. GetDeviceHourlyRate 获取设备时间帯別稼働割合
// @Summary 获取设备时间帯別稼働割合
// @Description 获取指定营业日内设备每1小时的各状态时间割合（積上げ棒グラフ用）
// @Tags stats
// @Accept json
// @Produce json
// @Param device_addr path string true "设备地址（12位十六进制）"
// @Param date query string true "日付（YYYY-MM-DD）"
// @Success 200 {array} services.DeviceHourlyRateEntry
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /devices/{device_addr}/hourly-operation-rate [get]
func (c *StatsController) GetDeviceHourlyRate() {
	data, err := c.statsService().GetDeviceHourlyRate(c.Ctx.Param("device_addr"), c.Ctx.Query("date"))
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data": gin.H{
			"device_addr": c.Ctx.Param("device_addr"),
			"date":        c.Ctx.Query("date"),
			"data":        data,
		},
	})
}

// 5. GetOverallCurrentStatus 获取全体当日ステータス割合
// @Summary 获取全体当日ステータス割合
// @Description 获取全設備の当日（6:00～現在）ステータス時間割合（円グラフ用）
// @Tags stats
// @Accept json
// @Produce json
// @Success 200 {object} services.FleetCurrentStatus
// @Failure 500 {object} ErrorResponse
// @Router /overall/current-status [get]
func (c *StatsController) GetOverallCurrentStatus() {
	status, err := c.statsService().GetOverallCurrentStatus()
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    status,
	})
}

// 6. GetOverallHourlyStatus 获取全体时间帯別ステータス割合
// @Summary 获取全体时间帯別ステータス割合
// @Description 获取营业日内每1小时的全体ステータス割合とGreenApple獲得数（積上げ棒グラフ用）
// @Tags stats
// @Accept json
// @Produce json
// @Param date query string false "日付（YYYY-MM-DD、省略時は当日の営業日）"
// @Success 200 {object} services.HourlyStatusReport
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /overall/hourly-status [get]
func (c *StatsController) GetOverallHourlyStatus() {
	report, err := c.statsService().GetOverallHourlyStatus(c.Ctx.Query("date"))
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    report,
	})
}

// 7. GetOverallDailyRate 获取日別全体稼働率
// @Summary 获取日別全体稼働率
// @Description 获取日ごとの全体稼働率（折れ線グラフ用）。優先度：明示範囲 > 年月指定 > 直近days日
// @Tags stats
// @Accept json
// @Produce json
// @Param days query int false "取得日数（デフォルト7）"
// @Param year query int false "年"
// @Param month query int false "月"
// @Param start_date query string false "開始日（YYYY-MM-DD）"
// @Param end_date query string false "終了日（YYYY-MM-DD）"
// @Success 200 {object} services.DailyRateReport
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /overall/daily-operation-rate [get]
func (c *StatsController) GetOverallDailyRate() {
	days, _ := strconv.Atoi(c.Ctx.Query("days"))
	year, _ := strconv.Atoi(c.Ctx.Query("year"))
	month, _ := strconv.Atoi(c.Ctx.Query("month"))

	report, err := c.statsService().GetOverallDailyRate(days, year, month,
		c.Ctx.Query("start_date"), c.Ctx.Query("end_date"))
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    report,
	})
}

// 8. GetDailyGreenApples 获取日別GreenApple獲得数
// @Summary 获取日別GreenApple獲得数
// @Description 获取日ごとのGreenApple獲得数（棒グラフ用）。年月省略時は今月
// @Tags stats
// @Accept json
// @Produce json
// @Param year query int false "年"
// @Param month query int false "月"
// @Param start_date query string false "開始日（YYYY-MM-DD）"
// @Param end_date query string false "終了日（YYYY-MM-DD）"
// @Success 200 {array} services.DailyApplesEntry
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /overall/daily-green-apples [get]
func (c *StatsController) GetDailyGreenApples() {
	year, _ := strconv.Atoi(c.Ctx.Query("year"))
	month, _ := strconv.Atoi(c.Ctx.Query("month"))

	data, err := c.statsService().GetDailyGreenApples(year, month,
		c.Ctx.Query("start_date"), c.Ctx.Query("end_date"))
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    gin.H{"data": data},
	})
}

// 9. GetHourlyGreenApples 获取时间帯別GreenApple獲得数
// @Summary 获取时间帯別GreenApple獲得数
// @Description 获取特定日の時間帯別GreenApple獲得数
// @Tags stats
// @Accept json
// @Produce json
// @Param date query string true "日付（YYYY-MM-DD）"
// @Success 200 {array} services.HourlyApplesEntry
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /overall/hourly-green-apples [get]
func (c *StatsController) GetHourlyGreenApples() {
	date := c.Ctx.Query("date")
	data, err := c.statsService().GetHourlyGreenApples(date)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    gin.H{"date": date, "data": data},
	})
}
