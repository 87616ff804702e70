package document

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"agency_quotes/internal/domain/entities"
	"agency_quotes/internal/infrastructure/logger"
	"agency_quotes/internal/usecase/interfaces"

	"github.com/go-pdf/fpdf"
	"github.com/sirupsen/logrus"
)

// Issuer is the agency identity printed in the right party column and footer.
type Issuer struct {
	Name    string
	Address string
	Email   string
	Phone   string
	SIRET   string
}

// Page geometry in millimetres. Every block is placed at a fixed position so
// the signed variant only adds content inside the signature zone.
const (
	pageMargin   = 15.0
	contentWidth = 180.0
	columnWidth  = 85.0
	rightColumnX = 110.0

	headerY  = 15.0
	partiesY = 48.0
	pricingY = 95.0
	pricingH = 80.0
	totalY   = 182.0
	paymentY = 196.0

	signatureX = 110.0
	signatureY = 222.0
	signatureW = 85.0
	signatureH = 40.0
	stampY     = signatureY + signatureH + 2

	maxServiceLines = 6

	logoRetryInterval = time.Minute
)

const (
	defaultHeadline   = "Création de site web sur mesure"
	maintenanceNotice = "Maintenance incluse : 12 mois de maintenance corrective et de mises à jour de sécurité offerts."
	paymentNotice     = "Règlement : un acompte est demandé à la signature, payable en ligne via un lien de paiement sécurisé. Le solde est dû à la livraison."
	signatureCaption  = "Bon pour accord - signature du client"
)

var defaultBundle = []string{
	"Maquettes et design responsive",
	"Intégration et développement",
	"Optimisation SEO de base",
	"Mise en ligne et hébergement la première année",
}

// PDFRenderer renders quote documents as single-page A4 PDFs.
type PDFRenderer struct {
	issuer   Issuer
	logos    *LogoLoader
	location *time.Location
	compress bool
	log      logrus.FieldLogger

	// A missing logo is looked up again once logoRetry has elapsed.
	logoMu    sync.Mutex
	logo      *Logo
	logoTried time.Time
	logoRetry time.Duration
}

var _ interfaces.IDocumentRenderer = (*PDFRenderer)(nil)

// NewPDFRenderer builds the renderer. Dates are printed in loc (UTC when nil).
func NewPDFRenderer(issuer Issuer, logoPath, logoURL string, loc *time.Location) *PDFRenderer {
	if loc == nil {
		loc = time.UTC
	}
	log := logger.Get().WithField("module", "document")
	return &PDFRenderer{
		issuer:   issuer,
		logos:    &LogoLoader{Path: logoPath, URL: logoURL, log: log},
		location: loc,
		compress:  true,
		log:       log,
		logoRetry: logoRetryInterval,
	}
}

func (r *PDFRenderer) Render(ctx context.Context, doc entities.QuoteDocument) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logo := r.currentLogo(ctx)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(doc.IssuedAt)
	if doc.Signature != nil {
		pdf.SetModificationDate(doc.Signature.SignedAt)
	} else {
		pdf.SetModificationDate(doc.IssuedAt)
	}
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	number := entities.FormatQuoteNumber(doc.Number)
	pdf.SetTitle(tr("Devis N° "+number), false)
	pdf.SetAuthor(tr(r.issuer.Name), false)
	pdf.SetCreator("agency-quotes", false)
	pdf.AddPage()

	r.header(pdf, tr, logo, number, doc.IssuedAt)
	r.parties(pdf, tr, doc.Client)
	r.pricing(pdf, tr, doc)
	r.totals(pdf, tr, doc.Amount)
	r.signatureZone(pdf, tr, doc.Signature)
	r.footer(pdf, tr)

	if pdf.Err() {
		return nil, pdf.Error()
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	r.log.WithFields(logrus.Fields{"number": number, "signed": doc.Signature != nil, "size": buf.Len()}).Debug("document rendered")
	return buf.Bytes(), nil
}

// currentLogo returns the cached logo, loading it on first use and again after
// a failed attempt once logoRetry has passed. The lookup outlives the request.
func (r *PDFRenderer) currentLogo(ctx context.Context) *Logo {
	r.logoMu.Lock()
	defer r.logoMu.Unlock()
	if r.logo != nil {
		return r.logo
	}
	if !r.logoTried.IsZero() && time.Since(r.logoTried) < r.logoRetry {
		return nil
	}
	r.logoTried = time.Now()
	r.logo = r.logos.Load(context.WithoutCancel(ctx))
	return r.logo
}

func (r *PDFRenderer) header(pdf *fpdf.Fpdf, tr func(string) string, logo *Logo, number string, issuedAt time.Time) {
	if logo != nil {
		opts := fpdf.ImageOptions{ImageType: logo.Type}
		pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(logo.Data))
		pdf.ImageOptions("logo", pageMargin, headerY, 0, 18, false, opts, 0, "")
	} else {
		pdf.SetXY(pageMargin, headerY+4)
		pdf.SetFont("Helvetica", "B", 18)
		pdf.SetTextColor(33, 37, 41)
		pdf.CellFormat(columnWidth, 10, tr(r.issuer.Name), "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(33, 37, 41)
	pdf.SetXY(rightColumnX, headerY)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(columnWidth, 9, tr("DEVIS N° "+number), "", 2, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(columnWidth, 6, "Date : "+issuedAt.In(r.location).Format("02/01/2006"), "", 2, "R", false, 0, "")
	pdf.CellFormat(columnWidth, 6, tr("Validité : 30 jours"), "", 0, "R", false, 0, "")

	pdf.SetDrawColor(206, 212, 218)
	pdf.Line(pageMargin, partiesY-6, pageMargin+contentWidth, partiesY-6)
}

func (r *PDFRenderer) parties(pdf *fpdf.Fpdf, tr func(string) string, c entities.ClientParty) {
	client := []string{c.Name, c.Email}
	if p := FormatPhone(c.Phone); p != "" {
		client = append(client, p)
	}
	if c.Company != "" {
		client = append(client, c.Company)
	}
	partyColumn(pdf, tr, pageMargin, "Client", client)

	issuer := []string{r.issuer.Name}
	for _, line := range []string{r.issuer.Address, r.issuer.Email, FormatPhone(r.issuer.Phone)} {
		if line != "" {
			issuer = append(issuer, line)
		}
	}
	partyColumn(pdf, tr, rightColumnX, "Émetteur", issuer)
}

func partyColumn(pdf *fpdf.Fpdf, tr func(string) string, x float64, title string, lines []string) {
	pdf.SetXY(x, partiesY)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(73, 80, 87)
	pdf.CellFormat(columnWidth, 7, tr(strings.ToUpper(title)), "", 2, "L", false, 0, "")
	pdf.SetTextColor(33, 37, 41)
	for i, line := range lines {
		style := ""
		if i == 0 {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(columnWidth, 6, tr(line), "", 2, "L", false, 0, "")
	}
}

func (r *PDFRenderer) pricing(pdf *fpdf.Fpdf, tr func(string) string, doc entities.QuoteDocument) {
	pdf.SetFillColor(248, 249, 250)
	pdf.SetDrawColor(222, 226, 230)
	pdf.Rect(pageMargin, pricingY, contentWidth, pricingH, "FD")

	headline, rest := defaultHeadline, defaultBundle
	if len(doc.Services) > 0 {
		headline, rest = doc.Services[0], doc.Services[1:]
		if len(rest) == 0 {
			rest = defaultBundle
		}
	}
	if len(rest) > maxServiceLines {
		rest = rest[:maxServiceLines]
	}

	pdf.SetXY(pageMargin+5, pricingY+5)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentWidth-60, 8, tr(headline), "", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, tr(FormatEuro(doc.Amount)), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	y := pricingY + 16
	for _, s := range rest {
		pdf.SetXY(pageMargin+8, y)
		pdf.CellFormat(contentWidth-16, 6, tr("• "+s), "", 0, "L", false, 0, "")
		y += 6
	}

	if doc.Delay != "" {
		pdf.SetXY(pageMargin+5, pricingY+pricingH-24)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentWidth-10, 6, tr("Délai de réalisation : "+doc.Delay), "", 0, "L", false, 0, "")
	}

	pdf.SetXY(pageMargin+5, pricingY+pricingH-16)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(contentWidth-10, 5, tr(maintenanceNotice), "", "L", false)
}

func (r *PDFRenderer) totals(pdf *fpdf.Fpdf, tr func(string) string, amount int64) {
	pdf.SetXY(rightColumnX, totalY)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetFillColor(33, 37, 41)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(columnWidth/2, 10, "Total TTC", "", 0, "L", true, 0, "")
	pdf.CellFormat(columnWidth/2, 10, tr(FormatEuro(amount)), "", 0, "R", true, 0, "")
	pdf.SetTextColor(33, 37, 41)

	pdf.SetXY(pageMargin, paymentY)
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(contentWidth, 5, tr(paymentNotice), "", "L", false)
}

func (r *PDFRenderer) signatureZone(pdf *fpdf.Fpdf, tr func(string) string, sig *entities.DocumentSignature) {
	pdf.SetXY(signatureX, signatureY-7)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(signatureW, 6, tr(signatureCaption), "", 0, "L", false, 0, "")
	pdf.SetDrawColor(173, 181, 189)
	pdf.Rect(signatureX, signatureY, signatureW, signatureH, "D")

	if sig == nil {
		return
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	info := pdf.RegisterImageOptionsReader("signature", opts, bytes.NewReader(sig.PNG))
	if info == nil || pdf.Err() {
		return
	}
	x, y, w, h := fitBox(info.Width(), info.Height(), signatureX+2, signatureY+2, signatureW-4, signatureH-4)
	pdf.ImageOptions("signature", x, y, w, h, false, opts, 0, "")

	at := sig.SignedAt.In(r.location)
	pdf.SetXY(signatureX, stampY)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(signatureW, 5, tr(fmt.Sprintf("Signé électroniquement le %s à %s", at.Format("02/01/2006"), at.Format("15:04"))), "", 0, "L", false, 0, "")
}

func (r *PDFRenderer) footer(pdf *fpdf.Fpdf, tr func(string) string) {
	line := r.issuer.Name
	if r.issuer.SIRET != "" {
		line += " - SIRET " + r.issuer.SIRET
	}
	pdf.SetXY(pageMargin, 285)
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(134, 142, 150)
	pdf.CellFormat(contentWidth, 4, tr(line), "", 0, "C", false, 0, "")
}

// fitBox scales a w×h image into the box, preserving aspect ratio, centered.
func fitBox(imgW, imgH, boxX, boxY, boxW, boxH float64) (x, y, w, h float64) {
	if imgW <= 0 || imgH <= 0 {
		return boxX, boxY, boxW, boxH
	}
	scale := boxW / imgW
	if s := boxH / imgH; s < scale {
		scale = s
	}
	w, h = imgW*scale, imgH*scale
	return boxX + (boxW-w)/2, boxY + (boxH-h)/2, w, h
}
