package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/b3-extractor/pkg/errors"
)

const sampleMap = "Ação;Código\nPetrobras;PETR4\nVale;VALE3\n"

type CatalogTestSuite struct {
	suite.Suite
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogTestSuite))
}

func (suite *CatalogTestSuite) writeFile(path string, content []byte) {
	suite.Require().NoError(os.MkdirAll(filepath.Dir(path), 0o755))
	suite.Require().NoError(os.WriteFile(path, content, 0o644))
}

func (suite *CatalogTestSuite) TestParse() {
	c, err := Parse(strings.NewReader(sampleMap), nil)
	suite.Require().NoError(err)

	suite.Equal([]string{"Petrobras - PETR4.SA", "Vale - VALE3.SA"}, c.Names())

	symbol, ok := c.Symbol("Petrobras - PETR4.SA")
	suite.True(ok)
	suite.Equal("PETR4.SA", symbol)

	symbol, ok = c.Symbol("Vale - VALE3.SA")
	suite.True(ok)
	suite.Equal("VALE3.SA", symbol)

	_, ok = c.Symbol("Petrobras")
	suite.False(ok)
}

func (suite *CatalogTestSuite) TestParseHeaderAliases() {
	c, err := Parse(strings.NewReader("ticker; empresa\nitub4; Itaú Unibanco\n"), nil)
	suite.Require().NoError(err)
	suite.Equal([]string{"Itaú Unibanco - ITUB4.SA"}, c.Names())
}

func (suite *CatalogTestSuite) TestParseSkipsBOM() {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(sampleMap)...)

	c, err := Parse(strings.NewReader(string(data)), nil)
	suite.Require().NoError(err)
	suite.Equal(2, c.Len())
}

func (suite *CatalogTestSuite) TestParseWindows1252() {
	// "Ação;Código\nGerdau Metalúrgica;GOAU4\n" as exported by a pt-BR spreadsheet
	data := []byte("A\xe7\xe3o;C\xf3digo\nGerdau Metal\xfargica;GOAU4\n")

	c, err := Parse(strings.NewReader(string(data)), nil)
	suite.Require().NoError(err)
	suite.Equal([]string{"Gerdau Metalúrgica - GOAU4.SA"}, c.Names())
}

func (suite *CatalogTestSuite) TestParseSkipsBlankAndCodelessRows() {
	c, err := Parse(strings.NewReader("Ação;Código\nPetrobras;PETR4\n;\nSem Codigo;\nVale;VALE3\n"), nil)
	suite.Require().NoError(err)
	suite.Equal([]string{"Petrobras - PETR4.SA", "Vale - VALE3.SA"}, c.Names())
}

func (suite *CatalogTestSuite) TestParseDuplicateDisplayNames() {
	c, err := Parse(strings.NewReader("Ação;Código\nPetrobras;PETR4\nPetrobras;PETR4\n"), nil)
	suite.Require().NoError(err)

	suite.Equal([]string{"Petrobras - PETR4.SA", "Petrobras - PETR4.SA"}, c.Names())

	symbol, ok := c.Symbol("Petrobras - PETR4.SA")
	suite.True(ok)
	suite.Equal("PETR4.SA", symbol)
}

func (suite *CatalogTestSuite) TestParseKeepsCodeAsWritten() {
	c, err := Parse(strings.NewReader("Ação;Código\nPetrobras;petr4\nPetrobras;PETR4\n"), nil)
	suite.Require().NoError(err)

	suite.Equal([]string{"Petrobras - petr4.SA", "Petrobras - PETR4.SA"}, c.Names())

	symbol, ok := c.Symbol("Petrobras - petr4.SA")
	suite.True(ok)
	suite.Equal("petr4.SA", symbol)
}

func (suite *CatalogTestSuite) TestParseErrors() {
	testCases := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"missing code column", "Ação;Setor\nPetrobras;Energia\n"},
		{"header only", "Ação;Código\n"},
		{"only blank rows", "Ação;Código\n;\n"},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			_, err := Parse(strings.NewReader(tc.content), nil)
			suite.Error(err)
		})
	}
}

func (suite *CatalogTestSuite) TestSearch() {
	c := New([]Entry{
		{DisplayName: "Petrobras - PETR4.SA", Symbol: "PETR4.SA"},
		{DisplayName: "PetroRio - PRIO3.SA", Symbol: "PRIO3.SA"},
		{DisplayName: "Vale - VALE3.SA", Symbol: "VALE3.SA"},
	})

	suite.Equal([]string{"Petrobras - PETR4.SA", "PetroRio - PRIO3.SA"}, c.Search("petro"))
	suite.Equal([]string{"Vale - VALE3.SA"}, c.Search("  VALE3 "))
	suite.Equal(c.Names(), c.Search(""))
	// no match falls back to the whole list
	suite.Equal(c.Names(), c.Search("zzz"))
}

func (suite *CatalogTestSuite) TestEntriesIsCopy() {
	c := New([]Entry{{DisplayName: "Vale - VALE3.SA", Symbol: "VALE3.SA"}})

	entries := c.Entries()
	entries[0].Symbol = "X"

	suite.Equal("VALE3.SA", c.Entries()[0].Symbol)
}

func (suite *CatalogTestSuite) TestCandidatePaths() {
	paths := CandidatePaths("/res", "/bin", "", "")
	suite.Equal([]string{
		filepath.Join("/res", "Mapa", "Mapa Tickers B3.csv"),
		filepath.Join("/res", "Mapa Tickers B3.csv"),
		filepath.Join("/bin", "Mapa", "Mapa Tickers B3.csv"),
	}, paths)

	paths = CandidatePaths("/res", "/bin", "maps", "tickers.csv")
	suite.Equal(filepath.Join("/res", "maps", "tickers.csv"), paths[0])
}

func (suite *CatalogTestSuite) TestLoadFirstExistingCandidateWins() {
	resourceDir := suite.T().TempDir()
	exeDir := suite.T().TempDir()

	suite.writeFile(filepath.Join(resourceDir, "Mapa Tickers B3.csv"), []byte("Ação;Código\nVale;VALE3\n"))
	suite.writeFile(filepath.Join(exeDir, "Mapa", "Mapa Tickers B3.csv"), []byte(sampleMap))

	c, err := Load(CandidatePaths(resourceDir, exeDir, "", ""), nil)
	suite.Require().NoError(err)
	suite.Equal([]string{"Vale - VALE3.SA"}, c.Names())
	suite.Equal(filepath.Join(resourceDir, "Mapa Tickers B3.csv"), c.Path())

	suite.writeFile(filepath.Join(resourceDir, "Mapa", "Mapa Tickers B3.csv"), []byte("Ação;Código\nItaú;ITUB4\n"))

	c, err = Load(CandidatePaths(resourceDir, exeDir, "", ""), nil)
	suite.Require().NoError(err)
	suite.Equal([]string{"Itaú - ITUB4.SA"}, c.Names())
}

func (suite *CatalogTestSuite) TestLoadDoesNotFallBackOnParseError() {
	resourceDir := suite.T().TempDir()
	exeDir := suite.T().TempDir()

	suite.writeFile(filepath.Join(resourceDir, "Mapa", "Mapa Tickers B3.csv"), []byte("garbage\n"))
	suite.writeFile(filepath.Join(exeDir, "Mapa", "Mapa Tickers B3.csv"), []byte(sampleMap))

	_, err := Load(CandidatePaths(resourceDir, exeDir, "", ""), nil)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeCatalogLoadFailure))
}

func (suite *CatalogTestSuite) TestLoadMissing() {
	_, err := Load(CandidatePaths(suite.T().TempDir(), suite.T().TempDir(), "", ""), nil)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeCatalogLoadFailure))
	suite.Contains(err.Error(), "ticker map not found")
}
