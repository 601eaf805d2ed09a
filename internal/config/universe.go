package config

// Static market lists. These are configuration data handed to the services at
// construction time rather than read as ambient globals, so tests can swap in
// smaller universes.

// Listing pairs a ticker symbol with a display name.
type Listing struct {
	Symbol string
	Name   string
}

// DefaultUniverse is the fixed set of symbols the screener evaluates.
func DefaultUniverse() []string {
	return []string{
		// Technology
		"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "META", "TSLA", "AVGO", "ORCL", "ADBE",
		"CRM", "NFLX", "INTC", "AMD", "QCOM", "TXN", "AMAT", "MU", "LRCX", "KLAC",
		// Finance
		"JPM", "BAC", "WFC", "GS", "MS", "C", "BLK", "SCHW", "AXP", "USB",
		// Healthcare
		"UNH", "JNJ", "LLY", "ABBV", "MRK", "PFE", "TMO", "ABT", "DHR", "BMY",
		// Consumer
		"WMT", "HD", "PG", "KO", "PEP", "COST", "NKE", "MCD", "SBUX", "TGT",
		// Energy
		"XOM", "CVX", "COP", "SLB", "EOG", "PXD", "MPC", "PSX", "VLO", "OXY",
		// Industrials
		"BA", "CAT", "HON", "UPS", "RTX", "LMT", "GE", "MMM", "DE", "EMR",
		// Communication
		"DIS", "CMCSA", "VZ", "T", "TMUS", "CHTR", "WBD", "EA", "TTWO", "PARA",
	}
}

// DefaultSectors maps sector names to their member symbols. Symbols not listed
// under any sector classify as "Other".
func DefaultSectors() map[string][]string {
	return map[string][]string{
		"Technology":    {"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "META", "TSLA", "AVGO", "ORCL", "ADBE", "CRM", "NFLX", "INTC", "AMD", "QCOM", "TXN", "AMAT", "MU", "LRCX", "KLAC"},
		"Finance":       {"JPM", "BAC", "WFC", "GS", "MS", "C", "BLK", "SCHW", "AXP", "USB"},
		"Healthcare":    {"UNH", "JNJ", "LLY", "ABBV", "MRK", "PFE", "TMO", "ABT", "DHR", "BMY"},
		"Consumer":      {"WMT", "HD", "PG", "KO", "PEP", "COST", "NKE", "MCD", "SBUX", "TGT"},
		"Energy":        {"XOM", "CVX", "COP", "SLB", "EOG", "PXD", "MPC", "PSX", "VLO", "OXY"},
		"Industrials":   {"BA", "CAT", "HON", "UPS", "RTX", "LMT", "GE", "MMM", "DE", "EMR"},
		"Communication": {"DIS", "CMCSA", "VZ", "T", "TMUS", "CHTR", "WBD", "EA", "TTWO", "PARA"},
	}
}

// TopStocks is the dashboard's headline list: top S&P 500 names by market cap.
func TopStocks() []Listing {
	return []Listing{
		{Symbol: "AAPL", Name: "Apple Inc."},
		{Symbol: "MSFT", Name: "Microsoft Corporation"},
		{Symbol: "GOOGL", Name: "Alphabet Inc."},
		{Symbol: "AMZN", Name: "Amazon.com Inc."},
		{Symbol: "NVDA", Name: "NVIDIA Corporation"},
		{Symbol: "META", Name: "Meta Platforms Inc."},
		{Symbol: "TSLA", Name: "Tesla Inc."},
		{Symbol: "BRK-B", Name: "Berkshire Hathaway"},
		{Symbol: "V", Name: "Visa Inc."},
		{Symbol: "JPM", Name: "JPMorgan Chase & Co."},
	}
}

// MajorCryptos lists the crypto assets shown on the crypto page. Tickers are
// quoted against USD when fetched (e.g. BTC-USD).
func MajorCryptos() []Listing {
	return []Listing{
		{Symbol: "BTC", Name: "Bitcoin"},
		{Symbol: "ETH", Name: "Ethereum"},
		{Symbol: "BNB", Name: "Binance Coin"},
		{Symbol: "SOL", Name: "Solana"},
		{Symbol: "XRP", Name: "Ripple"},
		{Symbol: "ADA", Name: "Cardano"},
		{Symbol: "AVAX", Name: "Avalanche"},
		{Symbol: "DOT", Name: "Polkadot"},
		{Symbol: "LINK", Name: "Chainlink"},
		{Symbol: "LTC", Name: "Litecoin"},
		{Symbol: "NEAR", Name: "NEAR Protocol"},
		{Symbol: "DOGE", Name: "Dogecoin"},
		{Symbol: "TRX", Name: "TRON"},
		{Symbol: "APT", Name: "Aptos"},
		{Symbol: "OP", Name: "Optimism"},
		{Symbol: "EGLD", Name: "MultiversX"},
		{Symbol: "SUI", Name: "Sui"},
		{Symbol: "AAVE", Name: "Aave"},
		{Symbol: "XLM", Name: "Stellar"},
		{Symbol: "BCH", Name: "Bitcoin Cash"},
	}
}
