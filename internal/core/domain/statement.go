package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionOutcome classifies a settlement statement line.
type TransactionOutcome string

const (
	OutcomeSuccessful   TransactionOutcome = "successful"
	OutcomeFailed       TransactionOutcome = "failed"
	OutcomeUnclassified TransactionOutcome = "unclassified"
)

// Transaction codes reported by the clearing service. The two-day/same-day
// variants (T../S..) and DCS all indicate a settled collection; the D..
// failure codes indicate an unpaid or disputed collection.
var successCodes = map[string]struct{}{
	"TDD": {}, "SDD": {}, "TDC": {}, "SDC": {}, "DCS": {},
}

var failureCodes = map[string]struct{}{
	"DRU": {}, "DCX": {}, "DCD": {}, "DCU": {},
}

// ClassifyTransactionCode maps a statement transaction code onto an outcome.
// Unknown codes classify as OutcomeUnclassified and must not trigger any
// state transition; they are surfaced for manual review instead.
func ClassifyTransactionCode(code string) TransactionOutcome {
	if _, ok := successCodes[code]; ok {
		return OutcomeSuccessful
	}
	if _, ok := failureCodes[code]; ok {
		return OutcomeFailed
	}
	return OutcomeUnclassified
}

// StatementAccount is the nested account block some statement lines carry
// instead of a top-level account reference.
type StatementAccount struct {
	AccountReference string `json:"accountReference"`
}

// StatementTransaction is one line of the clearing service's settlement
// statement. Transient: read from the statement API each run, never persisted.
type StatementTransaction struct {
	TransactionCode  string            `json:"transactionCode"`
	Amount           decimal.Decimal   `json:"amount"`
	AccountReference string            `json:"accountReference"`
	Account          *StatementAccount `json:"account,omitempty"`
	Effect           string            `json:"effect"` // credit or debit
}

// Reference returns the account reference for matching, preferring the
// top-level field and falling back to the nested account block.
func (t StatementTransaction) Reference() string {
	if t.AccountReference != "" {
		return t.AccountReference
	}
	if t.Account != nil {
		return t.Account.AccountReference
	}
	return ""
}

// Statement is the clearing service's settlement report for one date.
type Statement struct {
	Date                   time.Time              `json:"date"`
	OpeningBalance         *decimal.Decimal       `json:"openingBalance,omitempty"`
	ClosingBalance         *decimal.Decimal       `json:"closingBalance,omitempty"`
	TotalTransactions      int                    `json:"totalTransactions"`
	DebitOrderTransactions int                    `json:"debitOrderTransactions"`
	Transactions           []StatementTransaction `json:"transactions"`
}
