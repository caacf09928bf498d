package models

// RegulatoryFiling is one SEC filing.
type RegulatoryFiling struct {
	FilingDate  string `json:"filingDate"`
	Form        string `json:"form"`
	Description string `json:"description"`
	CompanyCIK  string `json:"companyCIK"`
}

// CompanyFilings is the filtered filing set for one tracked company.
// Fallback is true when no keyword matched and the most recent filings were
// served instead, so the caller can tell the two cases apart.
type CompanyFilings struct {
	Company  string             `json:"company"`
	CIK      string             `json:"cik"`
	Fallback bool               `json:"fallback,omitempty"`
	Filings  []RegulatoryFiling `json:"filings"`
}
