package risk

// Config carries the per-trade and per-day risk limits. It is supplied by
// the settings layer and passed by value on every call; the risk package
// never stores it.
type Config struct {
	// RiskPerTradePct is the percent of equity risked on a single trade.
	RiskPerTradePct float64

	// DailyLossLimitPct blocks new trades once realized losses for the UTC
	// day reach this percent of equity. 0 disables the limit.
	DailyLossLimitPct float64

	// MaxTradesPerDay caps how many trades may be opened per UTC day.
	// 0 means no cap.
	MaxTradesPerDay int

	// CooldownAfterLossMin is a quiet period (minutes) after a losing close.
	// Reserved: carried in config but not enforced by the gate.
	CooldownAfterLossMin int

	// LiveTradingEnabled gates whether the limits above are enforced at
	// all. When false the engine runs as pure paper and the gate always
	// allows.
	LiveTradingEnabled bool
}

// AssetBalance is one (asset, amount) pair from the account data source.
type AssetBalance struct {
	Asset  string
	Amount float64
}

// AccountSnapshot is the caller-supplied view of the account at tick time.
// Amounts are in MYR, the account currency.
type AccountSnapshot struct {
	TotalEquityMYR float64
	FreeBalanceMYR float64
	Balances       []AssetBalance
}

// Decision is the outcome of a gating check. Denials are expected,
// recoverable outcomes, not errors; Reason explains them for display.
type Decision struct {
	CanOpen bool
	Reason  string
}

func allow(reason string) Decision { return Decision{CanOpen: true, Reason: reason} }
func deny(reason string) Decision  { return Decision{CanOpen: false, Reason: reason} }

// MaxRiskAmount converts the configured per-trade percent into a currency
// amount. Deterministic, no side effects; may return 0, which callers must
// treat as "cannot open".
func MaxRiskAmount(cfg Config, acct AccountSnapshot) float64 {
	equity := acct.TotalEquityMYR
	if equity < 0 {
		equity = 0
	}
	pct := cfg.RiskPerTradePct
	if pct < 0 {
		pct = 0
	}
	return equity * pct / 100
}
