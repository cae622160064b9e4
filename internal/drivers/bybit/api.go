package bybit

// Bybit v5 spot ticker response. The engine only extracts lastPrice (and
// prevPrice24h for the 24h change display); everything else is ignored.
type TickersResponse struct {
	RetCode int    `json:"retCode"`
	RetMsg  string `json:"retMsg"`
	Result  Result `json:"result"`
	Time    int64  `json:"time"`
}

type Result struct {
	Category string   `json:"category"`
	List     []Ticker `json:"list"`
}

type Ticker struct {
	Symbol       string `json:"symbol"`
	LastPrice    string `json:"lastPrice"`
	PrevPrice24h string `json:"prevPrice24h"`
	HighPrice24h string `json:"highPrice24h"`
	LowPrice24h  string `json:"lowPrice24h"`
	Price24hPcnt string `json:"price24hPcnt"`
}
