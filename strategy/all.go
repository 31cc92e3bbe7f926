package strategy

import "github.com/dryrunbot/dryrun/market"

const (
	defaultCapital = 1000
	defaultRisk    = 0.02
)

// BuiltIn returns the full strategy roster. Retired strategies stay in
// the roster with Enabled false so their ledger entries remain
// addressable by the status and report commands.
func BuiltIn() []Strategy {
	return []Strategy{
		// 15m scalps.
		NewRSICross(Params{
			Name:          "BTC_RSI",
			DisplayName:   "BTC RSI Extreme",
			Symbol:        "BTCUSDT",
			Timeframe:     market.M15,
			Enabled:       true,
			Capital:       defaultCapital,
			RiskPerTrade:  defaultRisk,
			StopLossPct:   0.01,
			TakeProfitPct: 0.02,
			TimeStopHours: 48,
			Leverage:      1,
			LongOnly:      true,
			UseH4Filter:   true,
		}),
		NewCCICross(cciScalpParams("ETH_CCI", "ETH CCI Extreme", "ETHUSDT")),
		NewCCICross(cciScalpParams("SOL_CCI", "SOL CCI Extreme", "SOLUSDT")),
		NewCCICross(cciScalpParams("ADA_CCI", "ADA CCI Extreme", "ADAUSDT")),
		NewCCICross(cciScalpParams("AVAX_CCI", "AVAX CCI Extreme", "AVAXUSDT")),
		NewBBMeanRev(bbParams("ETH_BB_RSI", "ETH BB+RSI MeanRev", "ETHUSDT", true)),
		NewBBMeanRev(bbParams("BTC_BB_RSI", "BTC BB+RSI MeanRev", "BTCUSDT", false)),
		NewWhaleCandle(whaleParams("BTC_WHALE", "BTC Whale Candle", "BTCUSDT")),
		NewWhaleCandle(whaleParams("AVAX_WHALE", "AVAX Whale Candle", "AVAXUSDT")),

		// 4h swings.
		NewCCICrossStrict(Params{
			Name:           "BTC_CCI",
			DisplayName:    "BTC CCI",
			Symbol:         "BTCUSDT",
			Timeframe:      market.H4,
			Enabled:        true,
			Capital:        defaultCapital,
			RiskPerTrade:   defaultRisk,
			StopLossPct:    0.01,
			TakeProfitPct:  0.02,
			Leverage:       1,
			UseH4Filter:    true,
			UseDailyFilter: true,
		}),
		NewCCICross(Params{
			Name:           "ETH_4H",
			DisplayName:    "ETH CCI 4H",
			Symbol:         "ETHUSDT",
			Timeframe:      market.H4,
			Enabled:        true,
			Capital:        defaultCapital,
			RiskPerTrade:   defaultRisk,
			StopLossPct:    0.04,
			TakeProfitPct:  0.08,
			Leverage:       2,
			UseDailyFilter: true,
		}),
		NewCCICrossStrict(Params{
			Name:           "ETH_CCI_DAILY",
			DisplayName:    "ETH CCI Daily",
			Symbol:         "ETHUSDT",
			Timeframe:      market.H4,
			Enabled:        true,
			Capital:        defaultCapital,
			RiskPerTrade:   defaultRisk,
			StopLossPct:    0.01,
			TakeProfitPct:  0.02,
			Leverage:       1,
			UseDailyFilter: true,
		}),
		NewVolBreakout(Params{
			Name:           "BNB_VOL_6_3",
			DisplayName:    "BNB VOL 6/3",
			Symbol:         "BNBUSDT",
			Timeframe:      market.H4,
			Enabled:        true,
			Capital:        defaultCapital,
			RiskPerTrade:   defaultRisk,
			StopLossPct:    0.03,
			TakeProfitPct:  0.06,
			Leverage:       1,
			UseH4Filter:    true,
			UseDailyFilter: true,
		}),

		// Daily swings.
		NewVolumeSurge(Params{
			Name:          "BTC_VOL",
			DisplayName:   "BTC Volume Surge",
			Symbol:        "BTCUSDT",
			Timeframe:     market.D1,
			Enabled:       true,
			Capital:       defaultCapital,
			RiskPerTrade:  0.03,
			StopLossPct:   0.03,
			TakeProfitPct: 0.10,
			Leverage:      1,
			LongOnly:      true,
		}),
		NewVolumeSurge(Params{
			Name:          "ETH_VOL",
			DisplayName:   "ETH Volume Surge",
			Symbol:        "ETHUSDT",
			Timeframe:     market.D1,
			Capital:       defaultCapital,
			RiskPerTrade:  0.03,
			StopLossPct:   0.03,
			TakeProfitPct: 0.10,
			Leverage:      1,
			LongOnly:      true,
		}),
		NewOBVDivergence(Params{
			Name:          "BNB_OBV",
			DisplayName:   "BNB OBV Divergence",
			Symbol:        "BNBUSDT",
			Timeframe:     market.D1,
			Capital:       defaultCapital,
			RiskPerTrade:  1.0,
			StopLossPct:   0.05,
			TakeProfitPct: 0.15,
			Leverage:      1,
			LongOnly:      true,
		}),
	}
}

func cciScalpParams(name, display, symbol string) Params {
	return Params{
		Name:           name,
		DisplayName:    display,
		Symbol:         symbol,
		Timeframe:      market.M15,
		Enabled:        true,
		Capital:        defaultCapital,
		RiskPerTrade:   defaultRisk,
		StopLossPct:    0.01,
		TakeProfitPct:  0.02,
		TimeStopHours:  48,
		Leverage:       1,
		UseH4Filter:    true,
		UseDailyFilter: true,
	}
}

func bbParams(name, display, symbol string, enabled bool) Params {
	return Params{
		Name:          name,
		DisplayName:   display,
		Symbol:        symbol,
		Timeframe:     market.M15,
		Enabled:       enabled,
		Capital:       defaultCapital,
		RiskPerTrade:  defaultRisk,
		StopLossPct:   0.01,
		TakeProfitPct: 0.02,
		TimeStopHours: 48,
		Leverage:      1,
		UseH4Filter:   true,
		DynamicExit:   true,
	}
}

func whaleParams(name, display, symbol string) Params {
	return Params{
		Name:          name,
		DisplayName:   display,
		Symbol:        symbol,
		Timeframe:     market.M15,
		Enabled:       true,
		Capital:       defaultCapital,
		RiskPerTrade:  defaultRisk,
		StopLossPct:   0.01,
		TakeProfitPct: 0.05,
		TimeStopHours: 96,
		Leverage:      1,
		UseH4Filter:   true,
	}
}
