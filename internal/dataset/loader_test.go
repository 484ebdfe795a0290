package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validCSV = `county,state,population,median_income,pct_college,median_age,pct_hispanic,pct_asian,metro,region,lat,lon
Travis,Texas,1290188,75000,48.5,34.1,33.5,7.5,true,South,30.33,-97.78
Loving,Texas,64,45000,18.0,52.3,40.2,0.5,false,South,31.84,-103.58
Cuyahoga,Ohio,1235072,52000,33.1,40.6,6.5,3.2,true,Midwest,41.43,-81.67
Marin,California,258826,115000,61.3,47.1,16.2,6.1,true,West,38.07,-122.72
`

func TestParse_ValidDataset(t *testing.T) {
	records, err := Parse(strings.NewReader(validCSV))
	require.NoError(t, err)
	require.Len(t, records, 4)

	travis := records[0]
	assert.Equal(t, "Travis", travis.County)
	assert.Equal(t, "Texas", travis.State)
	assert.Equal(t, int64(1290188), travis.Population)
	assert.Equal(t, 75000.0, travis.MedianIncome)
	assert.Equal(t, 48.5, travis.PctCollege)
	assert.Equal(t, 34.1, travis.MedianAge)
	assert.True(t, travis.Metro)
	assert.Equal(t, "South", travis.Region)
	assert.Equal(t, 30.33, travis.Lat)
	assert.Equal(t, -97.78, travis.Lon)
}

func TestParse_AffluentFlagMarksTopIncomeQuartile(t *testing.T) {
	records, err := Parse(strings.NewReader(validCSV))
	require.NoError(t, err)

	// Incomes: 45000, 52000, 75000, 115000. The empirical 75th percentile
	// is the smallest income whose CDF reaches 0.75, i.e. 75000, so Travis
	// and Marin qualify.
	byCounty := map[string]bool{}
	for _, rec := range records {
		byCounty[rec.County] = rec.Affluent
	}
	assert.True(t, byCounty["Marin"])
	assert.True(t, byCounty["Travis"])
	assert.False(t, byCounty["Cuyahoga"])
	assert.False(t, byCounty["Loving"])
}

func TestParse_MissingRequiredColumn(t *testing.T) {
	csv := `county,state,population,median_income,pct_college,median_age,pct_hispanic,metro,region
Travis,Texas,1290188,75000,48.5,34.1,33.5,true,South
`
	_, err := Parse(strings.NewReader(csv))

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "pct_asian", schemaErr.Column)
}

func TestParse_HeaderMatchingIsCaseInsensitive(t *testing.T) {
	csv := strings.Replace(validCSV, "county,state", "County, State", 1)
	records, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestParse_RowErrors(t *testing.T) {
	tests := []struct {
		name   string
		row    string
		column string
	}{
		{"non-numeric population", "Travis,Texas,lots,75000,48.5,34.1,33.5,7.5,true,South,,", "population"},
		{"zero population", "Travis,Texas,0,75000,48.5,34.1,33.5,7.5,true,South,,", "population"},
		{"negative income", "Travis,Texas,1000,-5,48.5,34.1,33.5,7.5,true,South,,", "median_income"},
		{"percent over 100", "Travis,Texas,1000,75000,148.5,34.1,33.5,7.5,true,South,,", "pct_college"},
		{"zero age", "Travis,Texas,1000,75000,48.5,0,33.5,7.5,true,South,,", "median_age"},
		{"bad metro flag", "Travis,Texas,1000,75000,48.5,34.1,33.5,7.5,maybe,South,,", "metro"},
		{"empty county", ",Texas,1000,75000,48.5,34.1,33.5,7.5,true,South,,", "county"},
		{"empty state", "Travis,,1000,75000,48.5,34.1,33.5,7.5,true,South,,", "state"},
	}

	header := "county,state,population,median_income,pct_college,median_age,pct_hispanic,pct_asian,metro,region,lat,lon\n"
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(header + tt.row + "\n"))

			var schemaErr *SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, tt.column, schemaErr.Column)
			assert.Equal(t, 1, schemaErr.Row)
		})
	}
}

func TestParse_DuplicateCounty(t *testing.T) {
	csv := validCSV + "Travis,Texas,500,50000,30,40,10,5,true,South,,\n"
	_, err := Parse(strings.NewReader(csv))

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Reason, "duplicate")
}

func TestParse_SameCountyNameDifferentState(t *testing.T) {
	csv := validCSV + "Travis,Ohio,500,50000,30,40,10,5,true,Midwest,,\n"
	records, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, records, 5)
}

func TestParse_MissingOptionalLatLon(t *testing.T) {
	csv := `county,state,population,median_income,pct_college,median_age,pct_hispanic,pct_asian,metro,region
Travis,Texas,1290188,75000,48.5,34.1,33.5,7.5,true,South
`
	records, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Zero(t, records[0].Lat)
	assert.Zero(t, records[0].Lon)
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty dataset")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_SchemaErrorPassesThrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "census.csv")
	require.NoError(t, os.WriteFile(path, []byte("county,state\nTravis,Texas\n"), 0o644))

	_, err := Load(path)

	var schemaErr *SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestLoad_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "census.csv")
	require.NoError(t, os.WriteFile(path, []byte(validCSV), 0o644))

	records, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestStore_Metadata(t *testing.T) {
	records, err := Parse(strings.NewReader(validCSV))
	require.NoError(t, err)

	loadedAt := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	store := NewStore(records, loadedAt)

	assert.Equal(t, 4, store.Len())
	assert.Equal(t, []string{"Midwest", "South", "West"}, store.Regions())
	assert.Equal(t, loadedAt, store.LoadedAt())
	assert.Equal(t, 75000.0, store.AffluenceThreshold())
}

func TestStore_CopiesRecords(t *testing.T) {
	records, err := Parse(strings.NewReader(validCSV))
	require.NoError(t, err)

	store := NewStore(records, time.Now())
	records[0].County = "Mutated"

	assert.Equal(t, "Travis", store.Records()[0].County)
}
