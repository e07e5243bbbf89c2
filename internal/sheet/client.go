// Package sheet fetches spreadsheet tabs through the Google Sheets gviz JSON
// endpoint and converts the loosely-typed payload into Cell rows.
package sheet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/a-mhatre/studylog-tui/internal/models"
)

const defaultBaseURL = "https://docs.google.com"

// Client fetches gviz tabs for one spreadsheet host.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a gviz client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
	}
}

// NewClientWithBaseURL creates a client against a custom host, used in tests.
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// FetchTab downloads one tab of a spreadsheet. An empty gid selects the
// default tab.
func (c *Client) FetchTab(ctx context.Context, sheetID, gid string) (*models.Sheet, error) {
	url := fmt.Sprintf("%s/spreadsheets/d/%s/gviz/tq?tqx=out:json", c.baseURL, sheetID)
	if gid != "" {
		url += "&gid=" + gid
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build sheet request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheet request failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet response: %w", err)
	}

	return ParseGviz(body)
}

type gvizResponse struct {
	Table gvizTable `json:"table"`
}

type gvizTable struct {
	Cols []gvizCol `json:"cols"`
	Rows []gvizRow `json:"rows"`
}

type gvizCol struct {
	Label string `json:"label"`
}

type gvizRow struct {
	C []*gvizCell `json:"c"`
}

type gvizCell struct {
	V any `json:"v"`
}

// gvizDatePattern matches the serialized date values the endpoint emits,
// e.g. "Date(2025,0,15)" or "Date(2025,0,15,10,30,0)". The month is
// zero-based.
var gvizDatePattern = regexp.MustCompile(`^Date\((\d+),(\d+),(\d+)(?:,(\d+),(\d+),(\d+))?\)$`)

// ParseGviz decodes a raw gviz response body. The endpoint wraps the JSON in
// a JavaScript callback, so everything outside the outermost braces is
// stripped first.
func ParseGviz(raw []byte) (*models.Sheet, error) {
	start := strings.IndexByte(string(raw), '{')
	end := strings.LastIndexByte(string(raw), '}')
	if start < 0 || end <= start {
		return nil, fmt.Errorf("gviz response carries no JSON payload")
	}

	var decoded gvizResponse
	if err := json.Unmarshal(raw[start:end+1], &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode gviz payload: %w", err)
	}

	sheet := &models.Sheet{}
	for _, col := range decoded.Table.Cols {
		sheet.Header = append(sheet.Header, col.Label)
	}

	for _, row := range decoded.Table.Rows {
		cells := make([]models.Cell, 0, len(row.C))
		for _, c := range row.C {
			cells = append(cells, convertCell(c))
		}
		sheet.Rows = append(sheet.Rows, cells)
	}

	return sheet, nil
}

func convertCell(c *gvizCell) models.Cell {
	if c == nil || c.V == nil {
		return models.EmptyCell()
	}

	switch v := c.V.(type) {
	case float64:
		return models.NumericCell(v)
	case bool:
		return models.TextCell(strconv.FormatBool(v))
	case string:
		if t, ok := parseGvizDate(v); ok {
			return models.DateCell(t)
		}
		return models.TextCell(v)
	default:
		return models.EmptyCell()
	}
}

func parseGvizDate(s string) (time.Time, bool) {
	m := gvizDatePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}

	num := func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	}

	year, month, day := num(m[1]), num(m[2]), num(m[3])
	var hour, minute, sec int
	if m[4] != "" {
		hour, minute, sec = num(m[4]), num(m[5]), num(m[6])
	}

	return time.Date(year, time.Month(month+1), day, hour, minute, sec, 0, time.Local), true
}

// Book master column offsets.
const (
	masterColID       = 0
	masterColTitle    = 1
	masterColPages    = 8
	masterColChapters = 9
)

// BookMasterFromSheet converts the book-master tab into a lookup by book ID.
func BookMasterFromSheet(sheet *models.Sheet) map[string]models.BookMaster {
	master := make(map[string]models.BookMaster)
	if sheet.Empty() {
		return master
	}

	for _, row := range sheet.Rows {
		id := strings.TrimSpace(cellStr(row, masterColID))
		if id == "" {
			continue
		}
		master[id] = models.BookMaster{
			BookID:        id,
			Title:         strings.TrimSpace(cellStr(row, masterColTitle)),
			TotalPages:    int(cellFloat(row, masterColPages)),
			TotalChapters: int(cellFloat(row, masterColChapters)),
		}
	}
	return master
}

func cellStr(row []models.Cell, idx int) string {
	if idx >= 0 && idx < len(row) {
		return row[idx].Str()
	}
	return ""
}

func cellFloat(row []models.Cell, idx int) float64 {
	if idx >= 0 && idx < len(row) {
		return row[idx].Float()
	}
	return 0
}
