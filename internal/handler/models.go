package handler

// 请求模型

// CreateCommitmentRequest 创建赛季承诺请求
// 金额字段用指针区分"未提供"与0
type CreateCommitmentRequest struct {
	Fid             string   `json:"fid"`
	WalletAddress   string   `json:"walletAddress"`
	TransactionHash string   `json:"transactionHash"`
	DollarAmount    *float64 `json:"dollarAmount"`
	PercentAmount   *float64 `json:"percentAmount"`
	Authorized      string   `json:"authorized"`
}

// CancelCommitmentRequest 取消赛季请求
type CancelCommitmentRequest struct {
	RecordID      uint   `json:"recordId"`
	WalletAddress string `json:"walletAddress"`
}

// UpsertProfileRequest 用户档案创建/更新请求
type UpsertProfileRequest struct {
	Fid      string  `json:"fid"`
	Username *string `json:"username"`
	Wallet   string  `json:"wallet"`
}

// PatchProfileRequest 用户档案局部更新请求
type PatchProfileRequest struct {
	Fid                   string `json:"fid"`
	ShownAddMiniappPrompt *bool  `json:"shownAddMiniappPrompt"`
}
