package trader

// Position 是一只在持标的的快照，带盈亏与价格的极值。
// volume_available 不超过 volume。
type Position struct {
	PositionID      string  `json:"position_id" mapstructure:"position_id"`
	Name            string  `json:"name" mapstructure:"name"`
	Code            string  `json:"code" mapstructure:"code"`
	Volume          int64   `json:"volume" mapstructure:"volume"`
	VolumeAvailable int64   `json:"volume_available" mapstructure:"volume_available"`
	Fee             float64 `json:"fee" mapstructure:"fee"`
	Price           float64 `json:"price" mapstructure:"price"`
	ProfitRate      float64 `json:"profit_rate" mapstructure:"profit_rate"`
	MaxProfitRate   float64 `json:"max_profit_rate" mapstructure:"max_profit_rate"`
	MinProfitRate   float64 `json:"min_profit_rate" mapstructure:"min_profit_rate"`
	Profit          float64 `json:"profit" mapstructure:"profit"`
	MaxProfit       float64 `json:"max_profit" mapstructure:"max_profit"`
	MinProfit       float64 `json:"min_profit" mapstructure:"min_profit"`
	NowPrice        float64 `json:"now_price" mapstructure:"now_price"`
	MaxPrice        float64 `json:"max_price" mapstructure:"max_price"`
	MinPrice        float64 `json:"min_price" mapstructure:"min_price"`
	MaxProfitTime   *Time   `json:"max_profit_time" mapstructure:"max_profit_time"`
	MinProfitTime   *Time   `json:"min_profit_time" mapstructure:"min_profit_time"`
}

var positionRequired = []string{
	"position_id", "name", "code",
	"volume", "volume_available", "fee", "price",
	"profit_rate", "max_profit_rate", "min_profit_rate",
	"profit", "max_profit", "min_profit",
	"now_price", "max_price", "min_price",
	"max_profit_time", "min_profit_time",
}

// DecodePosition 从 payload 字典构造持仓，缺字段时返回 *DecodeError。
func DecodePosition(src map[string]any) (*Position, error) {
	var pos Position
	if err := decodeRecord(kindPosition, src, positionRequired, positionSchema, &pos); err != nil {
		return nil, err
	}
	return &pos, nil
}
