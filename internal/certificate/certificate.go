package certificate

import (
	_ "embed"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"greenhalal/backend/internal/enrich"
	"greenhalal/backend/internal/scoring"
)

// DejaVu Sans Condensed covers Latin, Cyrillic and Arabic code points. fpdf
// embeds glyphs as-is, so Arabic text is neither shaped nor reordered.
var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	fontRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	fontBold []byte
	//go:embed fonts/DejaVuSansCondensed-Oblique.ttf
	fontOblique []byte
)

const fontFamily = "DejaVu"

// ErrNotEligible is returned when a certificate is requested for a non-Excellent result.
var ErrNotEligible = eris.New("certificate is only issued for an Excellent rating")

// Data is the field contract handed to the renderer.
type Data struct {
	CompanyName     string         `json:"company_name"`
	ProductName     string         `json:"product_name,omitempty"`
	GreenHalalScore float64        `json:"greenhalal_score"`
	Rating          scoring.Rating `json:"rating"`
	ZabihaVerified  bool           `json:"zabiha_verified"`
	CertificationID string         `json:"certification_id,omitempty"`
	Serial          string         `json:"serial"`
	IssuedAt        time.Time      `json:"issued_at"`
}

// FromResult assembles certificate data from a scored record and its reference entry, if any.
func FromResult(rec scoring.Record, res scoring.Result, ref *enrich.Entry) Data {
	data := Data{
		CompanyName:     strings.TrimSpace(rec.CompanyName),
		ProductName:     strings.TrimSpace(rec.ProductName),
		GreenHalalScore: res.GreenHalalScore,
		Rating:          res.Rating,
		ZabihaVerified:  rec.ZabihaVerified(),
		Serial:          uuid.NewString(),
		IssuedAt:        time.Now().UTC(),
	}
	if ref != nil {
		data.CertificationID = ref.CertificationID
	}
	return data
}

// Eligible reports whether the data qualifies for a certificate.
func (d Data) Eligible() bool {
	return d.Rating == scoring.RatingExcellent
}

// Filename derives the download name, omitting the product segment when it is empty.
func (d Data) Filename() string {
	parts := []string{sanitize(d.CompanyName)}
	if product := sanitize(d.ProductName); product != "" {
		parts = append(parts, product)
	}
	parts = append(parts, "GreenHalal.pdf")
	return strings.Join(parts, "_")
}

// Render writes a single A4 page certificate to w.
func Render(w io.Writer, d Data) error {
	if !d.Eligible() {
		return eris.Wrapf(ErrNotEligible, "rating %q", d.Rating)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("GreenHalal.AI Certificate", true)
	pdf.SetAuthor("GreenHalal.AI", true)
	pdf.SetCreator("greenhalal", true)
	pdf.SetCreationDate(d.IssuedAt)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddUTF8FontFromBytes(fontFamily, "", fontRegular)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", fontBold)
	pdf.AddUTF8FontFromBytes(fontFamily, "I", fontOblique)
	pdf.AddPage()

	width, height := pdf.GetPageSize()
	centered := func(y float64, style string, size float64, text string) {
		pdf.SetFont(fontFamily, style, size)
		pdf.SetXY(0, y)
		pdf.CellFormat(width, 10, text, "", 0, "C", false, 0, "")
	}

	centered(35, "B", 22, "GreenHalal.AI Certificate")
	centered(55, "", 14, fmt.Sprintf("This certifies that %s", d.CompanyName))
	y := 66.0
	if d.ProductName != "" {
		centered(y, "", 14, fmt.Sprintf("for the product %s", d.ProductName))
		y += 11
	}
	centered(y, "", 14, "has achieved an Excellent Green Halal Compliance Score.")
	centered(y+18, "B", 16, fmt.Sprintf("Compliance Score: %s%%", formatScore(d.GreenHalalScore)))
	y += 36
	if d.ZabihaVerified {
		centered(y, "", 12, "Zabiha compliance verified")
		y += 10
	}
	if d.CertificationID != "" {
		centered(y, "", 12, fmt.Sprintf("Halal certification ID: %s", d.CertificationID))
		y += 10
	}
	centered(y+8, "", 12, "Awarded by GreenHalal.AI - Promoting Ethical and Sustainable Halal Practices")

	centered(height-50, "", 9, fmt.Sprintf("Serial %s | Issued %s", d.Serial, d.IssuedAt.Format("2 January 2006")))
	centered(height-40, "I", 10, fmt.Sprintf("© %d GreenHalal.AI | Prototype Demo", d.IssuedAt.Year()))

	if err := pdf.Output(w); err != nil {
		return eris.Wrap(err, "render certificate")
	}
	return nil
}

func formatScore(score float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", score), "0"), ".")
}

func sanitize(name string) string {
	name = strings.TrimSpace(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '"':
			return '-'
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, name)
}
