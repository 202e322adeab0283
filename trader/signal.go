package trader

import "time"

// 信号类型
const (
	SigSell   = "sell"
	SigBuy    = "buy"
	SigCancel = "cancel"
)

// Signal 是策略或风控产生的交易意图，尚未成为委托。
// 字段顺序与键名是与宿主的兼容面，不可调整。
type Signal struct {
	Signal    string  `json:"signal" mapstructure:"signal"`
	Name      string  `json:"name" mapstructure:"name"`
	Code      string  `json:"code" mapstructure:"code"`
	Time      *Time   `json:"time" mapstructure:"time"`
	Price     float64 `json:"price" mapstructure:"price"`
	Volume    int64   `json:"volume" mapstructure:"volume"`
	Desc      string  `json:"desc" mapstructure:"desc"`
	EntrustID string  `json:"entrust_id" mapstructure:"entrust_id"`
}

func newSignal(sig, code, name string, price float64, volume int64, desc, entrustID string) *Signal {
	return &Signal{
		Signal:    sig,
		Name:      name,
		Code:      code,
		Time:      NewTime(time.Now()),
		Price:     price,
		Volume:    volume,
		Desc:      desc,
		EntrustID: entrustID,
	}
}

// BuySignal 构造买入信号。
func BuySignal(code, name string, price float64, volume int64, desc string) *Signal {
	return newSignal(SigBuy, code, name, price, volume, desc, "")
}

// SellSignal 构造卖出信号，entrustID 关联原始委托，可为空。
func SellSignal(code, name string, price float64, volume int64, desc, entrustID string) *Signal {
	return newSignal(SigSell, code, name, price, volume, desc, entrustID)
}

// CancelSignal 构造撤单信号。
func CancelSignal(code, name, entrustID, desc string) *Signal {
	return newSignal(SigCancel, code, name, 0, 0, desc, entrustID)
}
