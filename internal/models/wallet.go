package models

// WalletBalance is the backend response for a seller's wallet balance
type WalletBalance struct {
	Balance float64 `json:"balance"`
}

// BankAccountDetails identifies the account receiving a withdrawal
type BankAccountDetails struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
}

// WithdrawalRequest represents a withdrawal submitted by a seller
type WithdrawalRequest struct {
	Amount         float64            `json:"amount"`
	AccountDetails BankAccountDetails `json:"accountDetails"`
}

// WithdrawalTransaction describes the transaction created for a withdrawal
type WithdrawalTransaction struct {
	ID        string  `json:"id"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
}

// WithdrawalResult is the backend response to a withdrawal request
type WithdrawalResult struct {
	Success     bool                   `json:"success"`
	Message     string                 `json:"message"`
	Transaction *WithdrawalTransaction `json:"transaction,omitempty"`
}
