package trader

// 委托状态
const (
	StatusInit     = "init"
	StatusCommit   = "commit"
	StatusDeal     = "deal"
	StatusPartDeal = "part_deal"
	StatusCancel   = "cancel"
)

// 委托类型
const (
	TypeBuy    = "buy"
	TypeSell   = "sell"
	TypeCancel = "cancel"
)

// Entrust 是一笔买/卖/撤委托及其结算状态。状态迁移由宿主负责，
// 本层只承载数据。volume_deal + volume_cancel 不应超过 volume。
type Entrust struct {
	EntrustID       string  `json:"entrust_id" mapstructure:"entrust_id"`
	Name            string  `json:"name" mapstructure:"name"`
	Code            string  `json:"code" mapstructure:"code"`
	VolumeDeal      int64   `json:"volume_deal" mapstructure:"volume_deal"`
	VolumeCancel    int64   `json:"volume_cancel" mapstructure:"volume_cancel"`
	Volume          int64   `json:"volume" mapstructure:"volume"`
	Price           float64 `json:"price" mapstructure:"price"`
	Status          string  `json:"status" mapstructure:"status"`
	EntrustType     string  `json:"entrust_type" mapstructure:"entrust_type"`
	Desc            string  `json:"desc" mapstructure:"desc"`
	BrokerEntrustID string  `json:"broker_entrust_id" mapstructure:"broker_entrust_id"`
	Time            *Time   `json:"time" mapstructure:"time"`
}

// time 必须在场但可以为 null；broker_entrust_id 可以缺省。
var entrustRequired = []string{
	"entrust_id", "name", "code",
	"volume_deal", "volume_cancel", "volume",
	"price", "status", "entrust_type", "desc", "time",
}

// DecodeEntrust 从 payload 字典构造委托，缺字段时返回 *DecodeError。
func DecodeEntrust(src map[string]any) (*Entrust, error) {
	var ent Entrust
	if err := decodeRecord(kindEntrust, src, entrustRequired, entrustSchema, &ent); err != nil {
		return nil, err
	}
	return &ent, nil
}
