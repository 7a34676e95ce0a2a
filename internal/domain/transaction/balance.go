package transaction

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/solveza-payment-ledger/internal/domain/money"
	"github.com/solveza-payment-ledger/internal/domain/shared"
)

// ErrMixedCurrencies reports a transaction history that folds across more
// than one currency. The balance is only defined per currency; an account
// that accumulated transactions in two currencies cannot be summed.
type ErrMixedCurrencies struct {
	AccountID shared.AccountID
	Expected  money.Currency
	Got       money.Currency
}

func (e ErrMixedCurrencies) Error() string {
	return "account " + e.AccountID.String() + " has transactions in multiple currencies: " +
		string(e.Expected) + " and " + string(e.Got)
}

// BalanceService derives the current balance of an account by replaying
// its transaction history. The balance is never stored; it is recomputed
// on every query.
type BalanceService struct {
	transactions Repository
}

// NewBalanceService creates a new balance service.
func NewBalanceService(transactions Repository) *BalanceService {
	return &BalanceService{transactions: transactions}
}

// CalculateBalance folds the account's transactions into a single Money
// value: deposits add, payments subtract. An account with no history
// yields zero JPY. The fold is commutative, so the order transactions are
// returned in does not affect the result.
//
// A negative fold result is clamped to zero before wrapping. This is not
// overdraft prevention: no payment is ever rejected for exceeding the
// deposited balance, only the reported balance is floored.
func (s *BalanceService) CalculateBalance(ctx context.Context, accountID shared.AccountID) (money.Money, error) {
	transactions, err := s.transactions.FindByAccountID(ctx, accountID)
	if err != nil {
		return money.Money{}, err
	}

	if len(transactions) == 0 {
		return money.Zero(money.JPY)
	}

	currency := transactions[0].Amount.Currency()
	balance := decimal.Zero

	for _, tx := range transactions {
		if tx.Amount.Currency() != currency {
			return money.Money{}, ErrMixedCurrencies{
				AccountID: accountID,
				Expected:  currency,
				Got:       tx.Amount.Currency(),
			}
		}
		switch {
		case tx.IsDeposit():
			balance = balance.Add(tx.Amount.Amount())
		case tx.IsPayment():
			balance = balance.Sub(tx.Amount.Amount())
		}
	}

	if balance.IsNegative() {
		balance = decimal.Zero
	}

	return money.New(balance, currency)
}
