package certificate

import (
	"bytes"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenhalal/backend/internal/enrich"
	"greenhalal/backend/internal/scoring"
)

func meatRecord() scoring.Record {
	return scoring.Record{
		CompanyName:    "EcoMeat Ltd",
		ProductName:    "Lamb Mince",
		Category:       scoring.CategoryMeat,
		ZabihaRequired: true,
		HalalCertified: true,
	}
}

func TestFromResult(t *testing.T) {
	ref := &enrich.Entry{CompanyName: "EcoMeat Ltd", CertificationID: "H12345"}
	res := scoring.Result{GreenHalalScore: 93, Rating: scoring.RatingExcellent}

	data := FromResult(meatRecord(), res, ref)
	assert.Equal(t, "EcoMeat Ltd", data.CompanyName)
	assert.Equal(t, "Lamb Mince", data.ProductName)
	assert.Equal(t, 93.0, data.GreenHalalScore)
	assert.True(t, data.ZabihaVerified)
	assert.Equal(t, "H12345", data.CertificationID)
	assert.NotEmpty(t, data.Serial)
	assert.False(t, data.IssuedAt.IsZero())
	assert.True(t, data.Eligible())
}

func TestZabihaAnnotationRequiresCertification(t *testing.T) {
	rec := meatRecord()
	rec.HalalCertified = false
	data := FromResult(rec, scoring.Result{Rating: scoring.RatingExcellent}, nil)
	assert.False(t, data.ZabihaVerified)
	assert.Empty(t, data.CertificationID)
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name     string
		company  string
		product  string
		expected string
	}{
		{"with product", "EcoMeat Ltd", "Lamb Mince", "EcoMeat Ltd_Lamb Mince_GreenHalal.pdf"},
		{"without product", "PureFoods Co", "", "PureFoods Co_GreenHalal.pdf"},
		{"blank product", "PureFoods Co", "  ", "PureFoods Co_GreenHalal.pdf"},
		{"path separators replaced", "A/B Foods", "x\\y", "A-B Foods_x-y_GreenHalal.pdf"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := Data{CompanyName: tc.company, ProductName: tc.product}
			assert.Equal(t, tc.expected, d.Filename())
		})
	}
}

func TestRenderProducesPDF(t *testing.T) {
	data := Data{
		CompanyName:     "EcoMeat Ltd",
		ProductName:     "Lamb Mince",
		GreenHalalScore: 92.2,
		Rating:          scoring.RatingExcellent,
		ZabihaVerified:  true,
		CertificationID: "H12345",
		Serial:          "serial-1",
		IssuedAt:        time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, data))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 500)
}

func TestRenderNonLatinNames(t *testing.T) {
	tests := []struct {
		name    string
		company string
		product string
	}{
		{"arabic", "شركة الواحة", "لحم ضأن"},
		{"cyrillic", "Халяль Продукт", "Баранина"},
		{"latin accents", "Épicerie Crème", "Pâté"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data := Data{
				CompanyName:     tc.company,
				ProductName:     tc.product,
				GreenHalalScore: 93,
				Rating:          scoring.RatingExcellent,
				Serial:          "serial-2",
				IssuedAt:        time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			}

			var buf bytes.Buffer
			require.NoError(t, Render(&buf, data))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
			assert.Contains(t, buf.String(), "/Identity-H")
		})
	}
}

func TestRenderRejectsIneligible(t *testing.T) {
	for _, rating := range []scoring.Rating{scoring.RatingGood, scoring.RatingNeedsImprovement} {
		var buf bytes.Buffer
		err := Render(&buf, Data{CompanyName: "X", Rating: rating})
		require.Error(t, err)
		assert.True(t, eris.Is(err, ErrNotEligible))
		assert.Zero(t, buf.Len())
	}
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "93", formatScore(93))
	assert.Equal(t, "92.2", formatScore(92.2))
	assert.Equal(t, "80.01", formatScore(80.01))
}
