package store

import (
	"time"

	"gorm.io/datatypes"
)

// InstrumentInfo 是一条标的静态参考数据（股票/基金/指数）。
type InstrumentInfo struct {
	Code     string         `gorm:"primaryKey;size:16" json:"code"`
	Name     string         `gorm:"size:64" json:"name"`
	Market   string         `gorm:"size:8" json:"market"`
	ListedAt *time.Time     `json:"listed_at"`
	Attrs    datatypes.JSON `json:"attrs"`
}

// TradeDate 是交易日历中的一天，格式 YYYY-MM-DD。
type TradeDate struct {
	Date string `gorm:"primaryKey;size:10" json:"date"`
}
