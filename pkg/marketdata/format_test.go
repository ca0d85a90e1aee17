package marketdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("csv")
	assert.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat(" Xlsx")
	assert.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseFormat("parquet")
	assert.Error(t, err)
}

func TestFormatExtension(t *testing.T) {
	assert.Equal(t, "csv", FormatCSV.Extension())
	assert.Equal(t, "xlsx", FormatXLSX.Extension())
	assert.Equal(t, "csv", Format("").Extension())
}
