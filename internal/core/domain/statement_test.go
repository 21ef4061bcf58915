package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTransactionCode(t *testing.T) {
	testCases := []struct {
		code     string
		expected TransactionOutcome
	}{
		{"TDD", OutcomeSuccessful},
		{"SDD", OutcomeSuccessful},
		{"TDC", OutcomeSuccessful},
		{"SDC", OutcomeSuccessful},
		{"DCS", OutcomeSuccessful},
		{"DRU", OutcomeFailed},
		{"DCX", OutcomeFailed},
		{"DCD", OutcomeFailed},
		{"DCU", OutcomeFailed},
		{"XYZ", OutcomeUnclassified},
		{"", OutcomeUnclassified},
		{"tdd", OutcomeUnclassified}, // codes are case sensitive
	}

	for _, tc := range testCases {
		t.Run(tc.code, func(t *testing.T) {
			assert.Equal(t, tc.expected, ClassifyTransactionCode(tc.code))
		})
	}
}

func TestStatementTransactionReference(t *testing.T) {
	// Top-level reference wins
	txn := StatementTransaction{
		AccountReference: "INV-1001",
		Account:          &StatementAccount{AccountReference: "PAY-ORD-77"},
	}
	assert.Equal(t, "INV-1001", txn.Reference())

	// Fall back to the nested account block
	txn = StatementTransaction{Account: &StatementAccount{AccountReference: "PAY-ORD-77"}}
	assert.Equal(t, "PAY-ORD-77", txn.Reference())

	// Neither present
	assert.Equal(t, "", StatementTransaction{}.Reference())
}

func TestMandateUsable(t *testing.T) {
	base := PaymentMandate{
		MethodType:    PaymentMethodDebitOrder,
		MandateStatus: MandateActive,
		IsActive:      true,
		Verified:      true,
	}
	assert.True(t, base.Usable())

	approved := base
	approved.MandateStatus = MandateApproved
	assert.True(t, approved.Usable())

	pending := base
	pending.MandateStatus = MandatePending
	assert.False(t, pending.Usable())

	unverified := base
	unverified.Verified = false
	assert.False(t, unverified.Usable())

	inactive := base
	inactive.IsActive = false
	assert.False(t, inactive.Usable())

	card := base
	card.MethodType = PaymentMethodCard
	assert.False(t, card.Usable())
}
