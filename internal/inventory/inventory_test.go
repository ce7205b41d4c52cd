package inventory

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() Record {
	return Record{
		Name:                   "baseline smelter",
		FunctionalUnit:         "1 t product",
		ProductionVolume:       1000,
		YieldEfficiency:        92,
		OreGrade:               1.2,
		ElectricityConsumption: 500,
		FuelConsumption:        50,
		Fluxes:                 100,
		EffluentPH:             7,
		RecycledInputShare:     30,
		Recyclability:          80,
		WasteDiverted:          60,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Record)
		wantErr error
		field   string
	}{
		{name: "valid record", mutate: func(*Record) {}},
		{
			name:    "negative electricity",
			mutate:  func(r *Record) { r.ElectricityConsumption = -1 },
			wantErr: ErrNegativeQuantity,
			field:   "electricity_consumption",
		},
		{
			name:    "percentage above 100",
			mutate:  func(r *Record) { r.RecycledInputShare = 120 },
			wantErr: ErrPercentOutOfRange,
			field:   "recycled_input_share",
		},
		{
			name:    "negative percentage",
			mutate:  func(r *Record) { r.OreGrade = -0.5 },
			wantErr: ErrPercentOutOfRange,
			field:   "ore_grade",
		},
		{
			name:    "NaN quantity",
			mutate:  func(r *Record) { r.Slag = math.NaN() },
			wantErr: ErrNotFinite,
			field:   "slag",
		},
		{
			name:    "infinite percentage",
			mutate:  func(r *Record) { r.Recyclability = math.Inf(1) },
			wantErr: ErrNotFinite,
			field:   "recyclability",
		},
		{
			name:    "pH out of range",
			mutate:  func(r *Record) { r.EffluentPH = 15 },
			wantErr: ErrPHOutOfRange,
			field:   "effluent_ph",
		},
		{
			name:    "negative symbiosis count",
			mutate:  func(r *Record) { r.SymbiosisExchanges = -2 },
			wantErr: ErrNegativeQuantity,
			field:   "symbiosis_exchanges",
		},
		{
			name:   "zero record is valid",
			mutate: func(r *Record) { *r = Record{} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(&rec)

			err := rec.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var fieldErr *FieldError
			require.True(t, errors.As(err, &fieldErr))
			assert.Equal(t, tt.field, fieldErr.Field)
		})
	}
}

func TestValidateReportsAllViolations(t *testing.T) {
	rec := validRecord()
	rec.Tailings = -1
	rec.WasteDiverted = 101

	err := rec.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNegativeQuantity)
	assert.ErrorIs(t, err, ErrPercentOutOfRange)
	assert.Contains(t, err.Error(), "tailings")
	assert.Contains(t, err.Error(), "waste_diverted")
}

func TestNew(t *testing.T) {
	rec, err := New(validRecord())
	require.NoError(t, err)
	assert.Equal(t, "baseline smelter", rec.Name)

	bad := validRecord()
	bad.Fluxes = -10
	_, err = New(bad)
	assert.ErrorIs(t, err, ErrNegativeQuantity)
}

func TestTotalSolidWasteAndDisplayName(t *testing.T) {
	rec := Record{Tailings: 10, Slag: 5, HazardousWaste: 1, RedMud: 100}
	assert.InDelta(t, 16.0, rec.TotalSolidWaste(), 1e-9)
	assert.Equal(t, "unnamed inventory", rec.DisplayName())

	rec.FunctionalUnit = "1 t"
	assert.Equal(t, "1 t", rec.DisplayName())
}

func TestDecode(t *testing.T) {
	t.Run("single YAML record", func(t *testing.T) {
		src := `
name: line 1
production_volume: 1000
electricity_consumption: 500
fluxes: 100
recycled_input_share: 25
`
		records, err := Decode(strings.NewReader(src), FormatYAML)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.InDelta(t, 500.0, records[0].ElectricityConsumption, 1e-9)
		assert.InDelta(t, 25.0, records[0].RecycledInputShare, 1e-9)
	})

	t.Run("YAML list", func(t *testing.T) {
		src := `
- name: a
  fluxes: 1
- name: b
  fluxes: 2
`
		records, err := Decode(strings.NewReader(src), FormatYAML)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "b", records[1].Name)
	})

	t.Run("unknown YAML field rejected", func(t *testing.T) {
		_, err := Decode(strings.NewReader("electricty: 5\n"), FormatYAML)
		require.Error(t, err)
	})

	t.Run("JSON list", func(t *testing.T) {
		src := `[{"name":"a","coal_input":3},{"name":"b","slag":4}]`
		records, err := Decode(strings.NewReader(src), FormatJSON)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.InDelta(t, 3.0, records[0].CoalInput, 1e-9)
	})

	t.Run("invalid record rejected", func(t *testing.T) {
		_, err := Decode(strings.NewReader(`{"fluxes": -1}`), FormatJSON)
		assert.ErrorIs(t, err, ErrNegativeQuantity)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := Decode(strings.NewReader("  "), FormatJSON)
		assert.ErrorIs(t, err, ErrEmptyInventory)

		_, err = Decode(strings.NewReader(""), FormatYAML)
		assert.ErrorIs(t, err, ErrEmptyInventory)
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inventory.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"x","fuel_consumption":50}`), 0o600))

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.InDelta(t, 50.0, records[0].FuelConsumption, 1e-9)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("a/b.JSON"))
	assert.Equal(t, FormatYAML, FormatFromPath("a/b.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("a/b"))
}
