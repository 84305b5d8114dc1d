package logic

import "errors"

// 业务错误分类，handler层据此映射HTTP状态码
var (
	// ErrMissingFields 请求缺少必填字段
	ErrMissingFields = errors.New("missing required fields")
	// ErrDuplicateTransaction 交易哈希已记录过
	ErrDuplicateTransaction = errors.New("transaction already recorded")
	// ErrActiveSeasonExists 钱包已有活跃赛季
	ErrActiveSeasonExists = errors.New("wallet already has an active season")
	// ErrSeasonNotFound 记录不存在或请求者无权操作（不区分两种情况）
	ErrSeasonNotFound = errors.New("record not found or not authorized to cancel")
	// ErrProfileNotFound 用户档案不存在
	ErrProfileNotFound = errors.New("user profile not found")
)
