package types

import (
	"strings"

	"github.com/rxtech-lab/argo-data/pkg/errors"
)

// Exchange identifies the trading venue a bar belongs to.
type Exchange string

const (
	// Chinese markets
	ExchangeCFFEX Exchange = "CFFEX" // China Financial Futures Exchange
	ExchangeSHFE  Exchange = "SHFE"  // Shanghai Futures Exchange
	ExchangeCZCE  Exchange = "CZCE"  // Zhengzhou Commodity Exchange
	ExchangeDCE   Exchange = "DCE"   // Dalian Commodity Exchange
	ExchangeINE   Exchange = "INE"   // Shanghai International Energy Exchange
	ExchangeSSE   Exchange = "SSE"   // Shanghai Stock Exchange
	ExchangeSZSE  Exchange = "SZSE"  // Shenzhen Stock Exchange
	ExchangeSGE   Exchange = "SGE"   // Shanghai Gold Exchange
)

const (
	// Global markets
	ExchangeSMART  Exchange = "SMART"  // Smart router for US stocks
	ExchangeNYSE   Exchange = "NYSE"   // New York Stock Exchange
	ExchangeNASDAQ Exchange = "NASDAQ" // Nasdaq Stock Market
	ExchangeNYMEX  Exchange = "NYMEX"  // New York Mercantile Exchange
	ExchangeCOMEX  Exchange = "COMEX"  // COMEX division of NYMEX
	ExchangeGLOBEX Exchange = "GLOBEX" // Globex of CME
	ExchangeCME    Exchange = "CME"    // Chicago Mercantile Exchange
	ExchangeCBOT   Exchange = "CBOT"   // Chicago Board of Trade
	ExchangeICE    Exchange = "ICE"    // Intercontinental Exchange
	ExchangeSEHK   Exchange = "SEHK"   // Stock Exchange of Hong Kong
	ExchangeHKFE   Exchange = "HKFE"   // Hong Kong Futures Exchange
	ExchangeSGX    Exchange = "SGX"    // Singapore Exchange
	ExchangeLME    Exchange = "LME"    // London Metal Exchange
	ExchangeEUREX  Exchange = "EUREX"  // Eurex Exchange
	ExchangeTOCOM  Exchange = "TOCOM"  // Tokyo Commodity Exchange
	ExchangeOANDA  Exchange = "OANDA"  // OANDA forex
	ExchangeOTC    Exchange = "OTC"    // Over the counter
)

const (
	// Crypto venues
	ExchangeBinance  Exchange = "BINANCE"
	ExchangeBitmex   Exchange = "BITMEX"
	ExchangeOKX      Exchange = "OKX"
	ExchangeHuobi    Exchange = "HUOBI"
	ExchangeBybit    Exchange = "BYBIT"
	ExchangeCoinbase Exchange = "COINBASE"
	ExchangeDeribit  Exchange = "DERIBIT"
)

// ExchangeLocal marks locally generated data that belongs to no real venue.
const ExchangeLocal Exchange = "LOCAL"

// AllExchanges lists every venue the importer, store, and feed recognize.
var AllExchanges = []Exchange{
	ExchangeCFFEX,
	ExchangeSHFE,
	ExchangeCZCE,
	ExchangeDCE,
	ExchangeINE,
	ExchangeSSE,
	ExchangeSZSE,
	ExchangeSGE,
	ExchangeSMART,
	ExchangeNYSE,
	ExchangeNASDAQ,
	ExchangeNYMEX,
	ExchangeCOMEX,
	ExchangeGLOBEX,
	ExchangeCME,
	ExchangeCBOT,
	ExchangeICE,
	ExchangeSEHK,
	ExchangeHKFE,
	ExchangeSGX,
	ExchangeLME,
	ExchangeEUREX,
	ExchangeTOCOM,
	ExchangeOANDA,
	ExchangeOTC,
	ExchangeBinance,
	ExchangeBitmex,
	ExchangeOKX,
	ExchangeHuobi,
	ExchangeBybit,
	ExchangeCoinbase,
	ExchangeDeribit,
	ExchangeLocal,
}

// Valid reports whether the exchange is a recognized venue.
func (e Exchange) Valid() bool {
	for _, known := range AllExchanges {
		if e == known {
			return true
		}
	}

	return false
}

// String implements fmt.Stringer.
func (e Exchange) String() string {
	return string(e)
}

// ParseExchange converts a venue name into an Exchange. Matching is
// case-insensitive.
func ParseExchange(s string) (Exchange, error) {
	candidate := Exchange(strings.ToUpper(strings.TrimSpace(s)))
	if candidate.Valid() {
		return candidate, nil
	}

	return "", errors.Newf(errors.ErrCodeInvalidExchange, "unknown exchange: %q", s)
}
