package trader

import "encoding/json"

// Account 是派发时刻的账户快照。每次调用由宿主序列化状态重建，
// 对插件只读，调用结束即丢弃，本层不回写。
type Account struct {
	AccountID string `json:"account_id" mapstructure:"account_id"`

	CashInit       float64 `json:"cash_init" mapstructure:"cash_init"`
	CashAvailable  float64 `json:"cash_available" mapstructure:"cash_available"`
	CashFrozen     float64 `json:"cash_frozen" mapstructure:"cash_frozen"`
	TotalNetValue  float64 `json:"total_net_value" mapstructure:"total_net_value"`
	TotalHoldValue float64 `json:"total_hold_value" mapstructure:"total_hold_value"`

	// 持仓成本/盈亏
	Cost       float64 `json:"cost" mapstructure:"cost"`
	Profit     float64 `json:"profit" mapstructure:"profit"`
	ProfitRate float64 `json:"profit_rate" mapstructure:"profit_rate"`
	// 平仓盈亏
	CloseProfit float64 `json:"close_profit" mapstructure:"close_profit"`
	// 总盈亏
	TotalProfit     float64 `json:"total_profit" mapstructure:"total_profit"`
	TotalProfitRate float64 `json:"total_profit_rate" mapstructure:"total_profit_rate"`

	// 费率，均为非负小数
	BrokerFee   float64 `json:"broker_fee" mapstructure:"broker_fee"`
	TransferFee float64 `json:"transfer_fee" mapstructure:"transfer_fee"`
	TaxFee      float64 `json:"tax_fee" mapstructure:"tax_fee"`

	Position map[string]Position `json:"position" mapstructure:"position"`
	Entrust  []Entrust           `json:"entrust" mapstructure:"entrust"`
}

// DecodeAccount 从宿主序列化状态重建账户快照。
func DecodeAccount(raw []byte) (*Account, error) {
	var acct Account
	if err := json.Unmarshal(raw, &acct); err != nil {
		return nil, &DecodeError{Kind: kindAccount, Err: err}
	}
	return &acct, nil
}
