package fare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveInfantFare(t *testing.T) {
	tests := []struct {
		name        string
		adultFare   float64
		airlineCode string
		want        float64
	}{
		{"JAL 10 percent", 50000, "JAL", 5000},
		{"ANA 10 percent", 80000, "ANA", 8000},
		{"rounds half up", 33333, "SQ", 3333},
		{"rounds to whole unit", 12345, "TG", 1235}, // 1234.5 rounds away from zero
		{"unknown carrier uses default", 50000, "ZZ", 5000},
		{"empty carrier uses default", 50000, "", 5000},
		{"zero fare", 0, "JAL", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveInfantFare(tt.adultFare, tt.airlineCode))
		})
	}
}

func TestDeriveInfantFare_Deterministic(t *testing.T) {
	first := DeriveInfantFare(54321, "CX")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, DeriveInfantFare(54321, "CX"))
	}
}

func TestDeriveInfantFare_UnknownEqualsUnspecified(t *testing.T) {
	for _, fareAmount := range []float64{0, 1, 999, 50000, 123456} {
		assert.Equal(t,
			DeriveInfantFare(fareAmount, ""),
			DeriveInfantFare(fareAmount, "ZZ"))
	}
}

func TestComputeFamilyPrice(t *testing.T) {
	b := ComputeFamilyPrice(50000, 2, 1, "JPY", "JAL")

	assert.Equal(t, 50000.0, b.AdultUnitPrice)
	assert.Equal(t, 5000.0, b.InfantUnitPrice)
	assert.Equal(t, 2, b.AdultCount)
	assert.Equal(t, 1, b.InfantCount)
	assert.Equal(t, 100000.0, b.AdultTotal)
	assert.Equal(t, 5000.0, b.InfantTotal)
	assert.Equal(t, 105000.0, b.GrandTotal)
	assert.Equal(t, "JPY", b.Currency)
}

func TestComputeFamilyPrice_Additivity(t *testing.T) {
	fares := []float64{0, 100, 35000, 50000, 120000}
	counts := []int{0, 1, 2, 5}

	for _, adultFare := range fares {
		for _, adults := range counts {
			for _, infants := range counts {
				b := ComputeFamilyPrice(adultFare, adults, infants, "JPY", "SQ")

				wantInfant := DeriveInfantFare(adultFare, "SQ")
				want := adultFare*float64(adults) + wantInfant*float64(infants)
				assert.Equal(t, want, b.GrandTotal)
			}
		}
	}
}

func TestComputeFamilyPrice_Permissive(t *testing.T) {
	b := ComputeFamilyPrice(0, 2, 1, "JPY", "")
	assert.Equal(t, 0.0, b.GrandTotal)

	// negative counts clamp to zero rather than failing
	b = ComputeFamilyPrice(50000, -1, -1, "JPY", "")
	assert.Equal(t, 0.0, b.GrandTotal)
	assert.Equal(t, 0, b.AdultCount)
	assert.Equal(t, 0, b.InfantCount)
}
