package dto

type AlphaVantageGlobalQuote struct {
	Symbol           string `json:"01. symbol"`
	Open             string `json:"02. open"`
	High             string `json:"03. high"`
	Low              string `json:"04. low"`
	Price            string `json:"05. price"`
	Volume           string `json:"06. volume"`
	LatestTradingDay string `json:"07. latest trading day"`
	PreviousClose    string `json:"08. previous close"`
	Change           string `json:"09. change"`
	ChangePercent    string `json:"10. change percent"`
}

// AlphaVantageQuoteResponse is the GLOBAL_QUOTE payload. Throttled calls come back
// with HTTP 200 and only Note or Information set.
type AlphaVantageQuoteResponse struct {
	GlobalQuote  *AlphaVantageGlobalQuote `json:"Global Quote"`
	Note         string                   `json:"Note"`
	Information  string                   `json:"Information"`
	ErrorMessage string                   `json:"Error Message"`
}

type AlphaVantageBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}
