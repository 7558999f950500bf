package config

// DeviceSeed 初次启动时写入登记表的设备信息
type DeviceSeed struct {
	Name        string
	Location    string
	Description string
	Index       int
}

// RegisteredDevices 出厂预置的信号灯设备清单（对应网关固件 clientESP 列表）。
// 仅在登记表中不存在对应地址时写入，之后以数据库登记为准。
var RegisteredDevices = map[string]DeviceSeed{
	"ECDA3BBE61E8": {
		Name:        "設備1号機",
		Location:    "製造ライン A",
		Description: "メイン生産機",
		Index:       0,
	},
	"B08184044C94": {
		Name:        "設備2号機",
		Location:    "製造ライン A",
		Description: "サブ生産機",
		Index:       1,
	},
	"188B0E936AF8": {
		Name:        "設備3号機",
		Location:    "製造ライン B",
		Description: "検査機",
		Index:       2,
	},
	"188B0E93DAD8": {
		Name:        "設備4号機",
		Location:    "製造ライン B",
		Description: "梱包機",
		Index:       3,
	},
	"188B0E91ABD4": {
		Name:        "設備5号機",
		Location:    "製造ライン C",
		Description: "加工機",
		Index:       4,
	},
	"188B0E915D9C": {
		Name:        "設備6号機",
		Location:    "製造ライン C",
		Description: "組立機",
		Index:       5,
	},
	"188B0E93B5D4": {
		Name:        "設備7号機",
		Location:    "製造ライン C",
		Description: "出荷検査機",
		Index:       6,
	},
}
