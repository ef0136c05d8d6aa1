package seed

import "stocktracker/pkg/market"

// table is the fixed instrument universe served by Loader. Change fields are derived,
// so only the previous close is recorded.
var table = []market.StockRecord{
	// US tech
	{Symbol: "AAPL", Name: "Apple Inc.", Sector: "Technology", Price: 189.79, PreviousClose: 187.45, DayHigh: 191.23, DayLow: 186.78, Volume: 89543210, MarketCap: 2980000000000},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", Sector: "Technology", Price: 142.56, PreviousClose: 143.79, DayHigh: 144.12, DayLow: 141.89, Volume: 45632100, MarketCap: 1800000000000},
	{Symbol: "MSFT", Name: "Microsoft Corporation", Sector: "Technology", Price: 378.91, PreviousClose: 373.24, DayHigh: 380.45, DayLow: 375.12, Volume: 34521890, MarketCap: 2810000000000},
	{Symbol: "AMZN", Name: "Amazon.com Inc.", Sector: "Retail", Price: 153.38, PreviousClose: 156.27, DayHigh: 157.23, DayLow: 152.45, Volume: 67821340, MarketCap: 1590000000000},
	{Symbol: "TSLA", Name: "Tesla Inc.", Sector: "Automotive", Price: 248.73, PreviousClose: 236.28, DayHigh: 251.89, DayLow: 243.12, Volume: 125473690, MarketCap: 790000000000},
	{Symbol: "NVDA", Name: "NVIDIA Corporation", Sector: "Semiconductors", Price: 478.23, PreviousClose: 469.32, DayHigh: 482.67, DayLow: 471.45, Volume: 78934520, MarketCap: 1180000000000},
	{Symbol: "META", Name: "Meta Platforms Inc.", Sector: "Social Media", Price: 334.87, PreviousClose: 339.10, DayHigh: 341.23, DayLow: 332.45, Volume: 43287650, MarketCap: 870000000000},
	{Symbol: "NFLX", Name: "Netflix Inc.", Sector: "Streaming", Price: 445.67, PreviousClose: 437.78, DayHigh: 448.23, DayLow: 442.12, Volume: 21456780, MarketCap: 198000000000},

	// DAX
	{Symbol: "SAP", Name: "SAP SE", Sector: "Software", Price: 134.82, PreviousClose: 133.26, DayHigh: 136.45, DayLow: 132.78, Volume: 12387560, MarketCap: 165000000000},
	{Symbol: "ASML", Name: "ASML Holding N.V.", Sector: "Semiconductors", Price: 689.45, PreviousClose: 701.79, DayHigh: 695.23, DayLow: 684.12, Volume: 8765432, MarketCap: 285000000000},
	{Symbol: "SIE", Name: "Siemens AG", Sector: "Industrial Technology", Price: 156.24, PreviousClose: 153.12, DayHigh: 158.90, DayLow: 154.23, Volume: 15432890, MarketCap: 125000000000},
	{Symbol: "BMW", Name: "Bayerische Motoren Werke AG", Sector: "Automotive", Price: 89.45, PreviousClose: 90.68, DayHigh: 91.23, DayLow: 88.45, Volume: 18765432, MarketCap: 58000000000},
	{Symbol: "MBG", Name: "Mercedes-Benz Group AG", Sector: "Automotive", Price: 67.89, PreviousClose: 67.00, DayHigh: 68.45, DayLow: 66.78, Volume: 22345678, MarketCap: 72000000000},
	{Symbol: "ALV", Name: "Allianz SE", Sector: "Insurance", Price: 245.60, PreviousClose: 243.20, DayHigh: 247.80, DayLow: 242.90, Volume: 9876543, MarketCap: 98000000000},
	{Symbol: "BAS", Name: "BASF SE", Sector: "Chemicals", Price: 43.21, PreviousClose: 43.88, DayHigh: 44.12, DayLow: 42.89, Volume: 14567890, MarketCap: 39000000000},

	// International
	{Symbol: "JPM", Name: "JPMorgan Chase & Co.", Sector: "Financial Services", Price: 178.34, PreviousClose: 175.89, DayHigh: 179.67, DayLow: 176.23, Volume: 23456780, MarketCap: 523000000000},
	{Symbol: "JNJ", Name: "Johnson & Johnson", Sector: "Healthcare", Price: 162.78, PreviousClose: 163.67, DayHigh: 164.23, DayLow: 161.45, Volume: 18765432, MarketCap: 428000000000},
	{Symbol: "KO", Name: "The Coca-Cola Company", Sector: "Beverages", Price: 58.92, PreviousClose: 58.58, DayHigh: 59.45, DayLow: 58.21, Volume: 21098765, MarketCap: 254000000000},
	{Symbol: "PFE", Name: "Pfizer Inc.", Sector: "Pharmaceuticals", Price: 25.67, PreviousClose: 24.78, DayHigh: 26.12, DayLow: 25.23, Volume: 45678901, MarketCap: 144000000000},
	{Symbol: "DIS", Name: "The Walt Disney Company", Sector: "Entertainment", Price: 96.45, PreviousClose: 97.68, DayHigh: 98.90, DayLow: 95.23, Volume: 18765432, MarketCap: 176000000000},
	{Symbol: "V", Name: "Visa Inc.", Sector: "Fintech", Price: 264.78, PreviousClose: 261.33, DayHigh: 266.90, DayLow: 262.45, Volume: 12345678, MarketCap: 540000000000},
	{Symbol: "ADBE", Name: "Adobe Inc.", Sector: "Software", Price: 497.23, PreviousClose: 488.33, DayHigh: 501.45, DayLow: 494.67, Volume: 8765432, MarketCap: 225000000000},
	{Symbol: "CRM", Name: "Salesforce Inc.", Sector: "Cloud Software", Price: 218.45, PreviousClose: 220.79, DayHigh: 222.90, DayLow: 216.78, Volume: 15432109, MarketCap: 211000000000},
	{Symbol: "PYPL", Name: "PayPal Holdings Inc.", Sector: "Fintech", Price: 56.78, PreviousClose: 54.89, DayHigh: 57.90, DayLow: 55.67, Volume: 23456789, MarketCap: 65000000000},
}
