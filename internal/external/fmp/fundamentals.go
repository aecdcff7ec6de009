package fmp

import (
	"context"
	"fmt"
	"net/url"

	"github.com/edgewatch/backend/internal/contracts"
	"github.com/edgewatch/backend/pkg/redis"
)

// balanceSheetRecord mirrors the provider's quarterly balance sheet JSON.
type balanceSheetRecord struct {
	Symbol                          string  `json:"symbol"`
	CashAndShortTermInvestments     float64 `json:"cashAndShortTermInvestments"`
	TotalDebt                       float64 `json:"totalDebt"`
}

// cashFlowRecord mirrors the provider's quarterly cash flow JSON.
type cashFlowRecord struct {
	Symbol            string  `json:"symbol"`
	OperatingCashFlow float64 `json:"operatingCashFlow"`
}

// Fundamentals fetches the latest quarterly balance sheet and cash
// flow and folds them into one record. Either statement missing
// leaves its fields zero; the scorers treat that as healthy.
func (c *Client) Fundamentals(ctx context.Context, symbol string) (*contracts.Fundamentals, error) {
	f := &contracts.Fundamentals{
		Symbol:       symbol,
		PeriodMonths: 3, // quarterly statements
	}

	quarterly := url.Values{"period": {"quarter"}, "limit": {"1"}}

	var balance []balanceSheetRecord
	err := c.cache.GetOrSet(ctx, redis.FundamentalKey(symbol, "balance"), &balance, redis.TTLFundamental, func() (interface{}, error) {
		var fresh []balanceSheetRecord
		if err := c.http.GetJSON(ctx, c.endpoint("balance-sheet-statement", symbol, quarterly), &fresh); err != nil {
			return nil, err
		}
		return fresh, nil
	})
	if err != nil {
		return nil, fmt.Errorf("balance sheet fetch failed for %s: %w", symbol, err)
	}
	if len(balance) > 0 {
		f.Cash = balance[0].CashAndShortTermInvestments
		f.TotalDebt = balance[0].TotalDebt
	}

	var cashflow []cashFlowRecord
	err = c.cache.GetOrSet(ctx, redis.FundamentalKey(symbol, "cashflow"), &cashflow, redis.TTLFundamental, func() (interface{}, error) {
		var fresh []cashFlowRecord
		if err := c.http.GetJSON(ctx, c.endpoint("cash-flow-statement", symbol, quarterly), &fresh); err != nil {
			return nil, err
		}
		return fresh, nil
	})
	if err != nil {
		return nil, fmt.Errorf("cash flow fetch failed for %s: %w", symbol, err)
	}
	if len(cashflow) > 0 {
		f.OperatingCashFlow = cashflow[0].OperatingCashFlow
	}

	return f, nil
}
