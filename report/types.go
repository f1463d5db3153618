// Package report extracts structured ranking data from a local-rank report page.
package report

// NotAvailable is the sentinel stored for any field that could not be
// recovered from the document. It is distinct from every legitimate value,
// including "0" and the empty string.
const NotAvailable = "N/A"

// FieldRecord maps human-readable field names to extracted string values.
// Well-known keys are normalized; anything else found in a summary table is
// stored verbatim under its literal label.
type FieldRecord map[string]string

// Rating holds the normalized output of the rating/review extractor.
type Rating struct {
	Rating  string `json:"rating"`
	Reviews string `json:"reviews"`
	Display string `json:"display"`
}

// Competitor is one row of the competitors table, in source row order.
type Competitor struct {
	Name        string `json:"name"`
	Rating      string `json:"rating"`
	Reviews     string `json:"reviews"`
	Display     string `json:"display"`
	Address     string `json:"address"`
	Categories  string `json:"categories"`
	Website     string `json:"website"`
	Photos      string `json:"photos"`
	ClaimStatus string `json:"claim_status"`
	Locations   string `json:"locations"`
	AverageRank string `json:"average_rank"`
	MapURL      string `json:"map_url"`
	CID         string `json:"cid"`
}

// Sponsored is one row of the sponsored listings table.
type Sponsored struct {
	Name      string `json:"name"`
	Rating    string `json:"rating"`
	Reviews   string `json:"reviews"`
	Display   string `json:"display"`
	SeenCount string `json:"seen_count"`
	MapURL    string `json:"map_url"`
	CID       string `json:"cid"`
}

// DetailResult is one panel of the detailed results modal.
type DetailResult struct {
	Rank    string `json:"rank"`
	Name    string `json:"name"`
	Rating  string `json:"rating"`
	Reviews string `json:"reviews"`
	Display string `json:"display"`
	Address string `json:"address"`
	MapURL  string `json:"map_url"`
	CID     string `json:"cid"`
}
