package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Product is one hardware catalog entry.
type Product struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Manufacturer string `json:"manufacturer"`
	PartNumber   string `json:"partNumber"`
	URL          string `json:"url"`
	ShortSpecs   string `json:"shortSpecs,omitempty"`
	Description  string `json:"description,omitempty"`
}

// Match is a scored search hit.
type Match struct {
	Product
	Confidence float64 `json:"confidence"`
}

// Response mirrors what the avatar UI's search panel expects.
type Response struct {
	ModeUsed     string  `json:"modeUsed"`
	Matches      []Match `json:"matches"`
	BestMatchID  string  `json:"bestMatchId,omitempty"`
	BestMatchURL string  `json:"bestMatchUrl,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

// Part numbers look like C9200L-24T-4G-E, FG-60F-BDL, 822P1UT#ABA.
var partNumberRe = regexp.MustCompile(`^[A-Za-z0-9#-]{5,25}$`)

// Service answers part-number and keyword searches over a fixed catalog.
type Service struct {
	products []Product
}

func New(products []Product) *Service {
	return &Service{products: products}
}

// Search runs one query. mode is "auto", "pn" or "keyword"; auto detects
// part-number-looking queries heuristically.
func (s *Service) Search(query, mode string) Response {
	q := strings.TrimSpace(query)
	if mode == "" || mode == "auto" {
		if partNumberRe.MatchString(q) {
			mode = "pn"
		} else {
			mode = "keyword"
		}
	}

	matches := s.match(strings.ToLower(q), mode)

	resp := Response{ModeUsed: mode, Matches: matches}
	if len(matches) == 0 {
		resp.Notes = "No results found."
		return resp
	}
	resp.BestMatchID = matches[0].ID
	resp.BestMatchURL = matches[0].URL
	return resp
}

func (s *Service) match(q, mode string) []Match {
	// Exact part-number hits win outright.
	var exact []Match
	for _, p := range s.products {
		if strings.ToLower(p.PartNumber) == q {
			exact = append(exact, Match{Product: p, Confidence: 1.0})
		}
	}
	if len(exact) > 0 {
		return exact
	}
	if mode == "pn" {
		return nil
	}

	keywords := strings.Fields(q)
	var matches []Match
	for _, p := range s.products {
		full := strings.ToLower(strings.Join([]string{p.Title, p.Manufacturer, p.PartNumber, p.ShortSpecs, p.Description}, " "))

		score := 0.0
		if strings.Contains(full, q) {
			score += 0.5
		}
		for _, w := range keywords {
			if strings.Contains(full, w) {
				score += 0.1
			}
		}
		if strings.Contains(strings.ToLower(p.PartNumber), q) {
			score += 0.3
		}
		if score > 0.95 {
			score = 0.95
		}
		if score > 0.1 {
			matches = append(matches, Match{Product: p, Confidence: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Confidence > matches[j].Confidence })
	if len(matches) > 10 {
		matches = matches[:10]
	}
	return matches
}

// Load reads catalog rows from an xlsx workbook, auto-detecting columns by
// header heuristics. Expected headers (any order): part number, title,
// manufacturer, url, specs, description.
func Load(path string) ([]Product, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheetList[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("no data rows")
	}

	header := rows[0]
	pnIdx, titleIdx, mfrIdx, urlIdx, specsIdx, descIdx := -1, -1, -1, -1, -1, -1
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(l, "part"):
			if pnIdx == -1 {
				pnIdx = i
			}
		case strings.Contains(l, "title") || strings.Contains(l, "name"):
			if titleIdx == -1 {
				titleIdx = i
			}
		case strings.Contains(l, "manufacturer") || strings.Contains(l, "brand") || strings.Contains(l, "vendor"):
			mfrIdx = i
		case strings.Contains(l, "url") || strings.Contains(l, "link"):
			urlIdx = i
		case strings.Contains(l, "spec"):
			specsIdx = i
		case strings.Contains(l, "desc"):
			descIdx = i
		}
	}
	if pnIdx == -1 || titleIdx == -1 {
		return nil, fmt.Errorf("could not detect part number and title columns")
	}

	cell := func(r []string, idx int) string {
		if idx >= 0 && idx < len(r) {
			return strings.TrimSpace(r[idx])
		}
		return ""
	}

	var out []Product
	for i, r := range rows {
		if i == 0 {
			continue
		}
		p := Product{
			PartNumber:   cell(r, pnIdx),
			Title:        cell(r, titleIdx),
			Manufacturer: cell(r, mfrIdx),
			URL:          cell(r, urlIdx),
			ShortSpecs:   cell(r, specsIdx),
			Description:  cell(r, descIdx),
		}
		if p.PartNumber == "" || p.Title == "" {
			continue
		}
		p.ID = strings.ToLower(strings.ReplaceAll(p.PartNumber, "#", "-"))
		out = append(out, p)
	}
	return out, nil
}

// Builtin is the demo catalog used when no workbook is configured.
func Builtin() []Product {
	return []Product{
		{
			ID:           "cisco-9500-48y4c",
			Title:        "Cisco Catalyst 9500 48-port 25G, 4-port 100G",
			Manufacturer: "Cisco",
			PartNumber:   "C9500-48Y4C-A",
			URL:          "https://www.insight.com/en_US/shop/product/C9500-48Y4C-A",
			ShortSpecs:   "48 x 25G SFP28, 4 x 100G QSFP28, Advantage License",
			Description:  "Enterprise-class core and aggregation layer switch.",
		},
		{
			ID:           "cisco-9200l-24t",
			Title:        "Cisco Catalyst 9200L 24-port Data, 4 x 1G, Network Essentials",
			Manufacturer: "Cisco",
			PartNumber:   "C9200L-24T-4G-E",
			URL:          "https://www.insight.com/en_US/shop/product/C9200L-24T-4G-E",
			ShortSpecs:   "24 x 10/100/1000, 4 x 1G SFP, Fixed Uplinks",
			Description:  "Access switch for intent-based networking.",
		},
		{
			ID:           "fortinet-60f",
			Title:        "FortiGate 60F Hardware plus 1 Year FortiCare and FortiGuard",
			Manufacturer: "Fortinet",
			PartNumber:   "FG-60F-BDL-950-12",
			URL:          "https://www.insight.com/en_US/shop/product/FG-60F-BDL-950-12",
			ShortSpecs:   "10 x GE RJ45 ports, FortiCare, IPS, Antivirus",
			Description:  "Security and SD-WAN appliance in a compact fanless desktop form factor.",
		},
		{
			ID:           "hp-probook-450",
			Title:        "HP ProBook 450 G10 15.6\" Notebook",
			Manufacturer: "HP",
			PartNumber:   "822P1UT#ABA",
			URL:          "https://www.insight.com/en_US/shop/product/822P1UT%23ABA",
			ShortSpecs:   "i7-1355U, 16GB RAM, 512GB SSD, Windows 11 Pro",
			Description:  "Durable business laptop with built-in collaboration features.",
		},
		{
			ID:           "dell-latitude-5440",
			Title:        "Dell Latitude 5440 14\" Notebook",
			Manufacturer: "Dell",
			PartNumber:   "N013L544014US_VP",
			URL:          "https://www.insight.com/en_US/shop/product/N013L544014US_VP",
			ShortSpecs:   "i5-1335U, 16GB RAM, 256GB SSD, 14\" FHD",
			Description:  "Small and light 14-inch commercial laptop.",
		},
		{
			ID:           "lenovo-thinkpad-t14",
			Title:        "Lenovo ThinkPad T14 Gen 4 14\" Notebook",
			Manufacturer: "Lenovo",
			PartNumber:   "21HD0007US",
			URL:          "https://www.insight.com/en_US/shop/product/21HD0007US",
			ShortSpecs:   "i5-1335U, 16GB RAM, 512GB SSD, 14\" WUXGA",
			Description:  "Business workhorse laptop with ThinkPad durability.",
		},
	}
}
