// Package catalog loads the B3 ticker map and resolves display names to
// provider symbols.
package catalog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"

	"github.com/rxtech-lab/b3-extractor/internal/logger"
	"github.com/rxtech-lab/b3-extractor/pkg/errors"
)

// SymbolSuffix qualifies every catalog code as a B3 listing.
const SymbolSuffix = ".SA"

var (
	companyHeaders = []string{"ação", "acao", "empresa", "company", "name"}
	codeHeaders    = []string{"código", "codigo", "ticker", "code"}
	utf8BOM        = []byte{0xEF, 0xBB, 0xBF}
)

// Entry is a single selectable ticker.
type Entry struct {
	DisplayName string
	Symbol      string
}

// Catalog is the immutable list of tickers. Names keep the source file order;
// when two rows produce the same display name the later row wins the lookup.
type Catalog struct {
	entries []Entry
	symbols map[string]string
	path    string
}

// New builds a catalog from entries, keeping their order.
func New(entries []Entry) *Catalog {
	c := &Catalog{
		entries: make([]Entry, len(entries)),
		symbols: make(map[string]string, len(entries)),
	}

	copy(c.entries, entries)

	for _, entry := range entries {
		c.symbols[entry.DisplayName] = entry.Symbol
	}

	return c
}

// Load reads the first existing candidate file. It does not fall back to later
// candidates when the first existing one cannot be parsed.
func Load(candidates []string, log *logger.Logger) (*Catalog, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	for _, path := range candidates {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeCatalogLoadFailure, err, "failed to read ticker map %s", path)
		}

		catalog, err := Parse(bytes.NewReader(data), log)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeCatalogLoadFailure, err, "failed to parse ticker map %s", path)
		}

		catalog.path = path
		log.Info("ticker map loaded", zap.String("path", path), zap.Int("entries", catalog.Len()))

		return catalog, nil
	}

	return nil, errors.Newf(errors.ErrCodeCatalogLoadFailure, "ticker map not found, looked in: %s", strings.Join(candidates, ", "))
}

// Parse reads a semicolon separated ticker map with a company and a code column.
func Parse(r io.Reader, log *logger.Logger) (*Catalog, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	data, err = decode(data)
	if err != nil {
		return nil, err
	}

	in := csv.NewReader(bytes.NewReader(data))
	in.Comma = ';'
	in.FieldsPerRecord = -1
	in.TrimLeadingSpace = true
	in.LazyQuotes = true

	header, err := in.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("ticker map is empty")
	}

	if err != nil {
		return nil, fmt.Errorf("invalid header: %w", err)
	}

	companyIdx := findColumn(header, companyHeaders)
	codeIdx := findColumn(header, codeHeaders)

	if companyIdx < 0 || codeIdx < 0 {
		return nil, fmt.Errorf("ticker map header must contain company and code columns, got %q", header)
	}

	var entries []Entry

	for line := 2; ; line++ {
		record, err := in.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if blank(record) {
			continue
		}

		company := field(record, companyIdx)
		code := field(record, codeIdx)

		if code == "" {
			log.Warn("skipping ticker map row without code", zap.Int("line", line), zap.String("company", company))
			continue
		}

		entries = append(entries, Entry{
			DisplayName: fmt.Sprintf("%s - %s%s", company, code, SymbolSuffix),
			Symbol:      code + SymbolSuffix,
		})
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("ticker map has no usable rows")
	}

	return New(entries), nil
}

// Names returns the display names in source order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, entry := range c.entries {
		names[i] = entry.DisplayName
	}

	return names
}

// Entries returns a copy of the catalog entries.
func (c *Catalog) Entries() []Entry {
	entries := make([]Entry, len(c.entries))
	copy(entries, c.entries)

	return entries
}

// Symbol resolves an exact display name.
func (c *Catalog) Symbol(displayName string) (string, bool) {
	symbol, ok := c.symbols[displayName]

	return symbol, ok
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Path returns the file the catalog was loaded from, if any.
func (c *Catalog) Path() string {
	return c.path
}

// Search returns the display names containing query, ignoring case, in catalog
// order. An empty query, or one matching nothing, returns every name.
func (c *Catalog) Search(query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return c.Names()
	}

	var matches []string

	for _, entry := range c.entries {
		if strings.Contains(strings.ToLower(entry.DisplayName), query) {
			matches = append(matches, entry.DisplayName)
		}
	}

	if len(matches) == 0 {
		return c.Names()
	}

	return matches
}

// decode strips a UTF-8 BOM and converts Windows-1252 exports to UTF-8.
func decode(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, nil
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("ticker map encoding: %w", err)
	}

	return decoded, nil
}

func findColumn(header []string, names []string) int {
	for i, column := range header {
		column = strings.ToLower(strings.TrimSpace(column))
		for _, name := range names {
			if column == name {
				return i
			}
		}
	}

	return -1
}

func field(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[idx])
}

func blank(record []string) bool {
	for _, value := range record {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}

	return true
}
