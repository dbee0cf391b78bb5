// Package gemini implements claim extraction using Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lithoslabs/evidence"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Prompt budgets keep requests inside the model's context window. Section
// content is denser than page text, so it gets a smaller budget.
const (
	pagePromptBudget    = 100_000
	sectionPromptBudget = 80_000
)

const systemInstruction = `You extract key data from mining technical reports and financial filings.
For every field you report, include the exact verbatim quote from the document that supports it.
Respond with JSON only, using null for fields the document does not state.`

// Ensure Extractor implements evidence.ClaimExtractor at compile time.
var _ evidence.ClaimExtractor = (*Extractor)(nil)

// Extractor implements evidence.ClaimExtractor using Google Gemini.
type Extractor struct {
	client  *genai.Client
	limiter *rate.Limiter
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithRateLimit caps outbound model calls at rps requests per second.
func WithRateLimit(rps float64) Option {
	return func(e *Extractor) {
		e.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(client *genai.Client, opts ...Option) *Extractor {
	e := &Extractor{client: client}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractFromPages extracts claims from ranked page excerpts of a PDF report.
func (e *Extractor) ExtractFromPages(ctx context.Context, excerpts []evidence.PageExcerpt) (*evidence.Extraction, error) {
	if len(excerpts) == 0 {
		return nil, evidence.Errorf(evidence.EINVALID, "page excerpts required")
	}
	return e.generate(ctx, BuildPagePrompt(excerpts))
}

// ExtractFromSections extracts claims from filing sections, seeded with any
// company identity already read from structured tags.
func (e *Extractor) ExtractFromSections(ctx context.Context, info *evidence.CompanyInfo, sections []*evidence.Section) (*evidence.Extraction, error) {
	if len(sections) == 0 {
		return nil, evidence.Errorf(evidence.EINVALID, "sections required")
	}
	return e.generate(ctx, BuildSectionPrompt(info, sections))
}

func (e *Extractor) generate(ctx context.Context, prompt string) (*evidence.Extraction, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	result, err := e.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, evidence.Errorf(evidence.EINTERNAL, "gemini returned nil result")
	}

	return DecodeExtraction(result.Text())
}

// BuildConfig returns the GenerateContentConfig for extraction calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

// BuildPagePrompt assembles page excerpts into a single prompt, tagging each
// with its page number so quotes can be traced back. Pages past the budget
// are dropped.
func BuildPagePrompt(excerpts []evidence.PageExcerpt) string {
	var sb strings.Builder
	sb.WriteString("Extract the key project data from these report pages.\n\n")
	for _, ex := range excerpts {
		if sb.Len()+len(ex.Text) > pagePromptBudget {
			break
		}
		fmt.Fprintf(&sb, "[Page %d]\n%s\n\n---\n\n", ex.Page, ex.Text)
	}
	sb.WriteString(schemaInstruction)
	return sb.String()
}

// BuildSectionPrompt assembles filing sections, tagging each with its element
// id and listing its tables so the model can cite table ids in quotes.
func BuildSectionPrompt(info *evidence.CompanyInfo, sections []*evidence.Section) string {
	var sb strings.Builder
	sb.WriteString("Extract the key company and financial data from these filing sections.\n\n")
	if info != nil && info.CompanyName != nil {
		fmt.Fprintf(&sb, "Registrant: %s\n\n", info.CompanyName.Text)
	}
	for _, sec := range sections {
		if sb.Len()+len(sec.Text) > sectionPromptBudget {
			break
		}
		fmt.Fprintf(&sb, "[SectionId: %s] %s\n%s\n", sec.ID, sec.Title, sec.Text)
		for _, tbl := range sec.Tables {
			fmt.Fprintf(&sb, "[TableId: %s]\n%s\n", tbl.Label, strings.Join(tbl.Rows, "\n"))
		}
		sb.WriteString("\n---\n\n")
	}
	sb.WriteString(schemaInstruction)
	return sb.String()
}

const schemaInstruction = `Return a JSON object with these optional fields, each an object holding
"text" (the exact supporting quote), "value" (the parsed value), and where known
"page", "sectionId" or "tableId":
companyName, location, commodities, npv, irr, capex, opex, resources, reserves, production.`

// DecodeExtraction parses the model's JSON response into an Extraction.
func DecodeExtraction(text string) (*evidence.Extraction, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, evidence.Errorf(evidence.EINTERNAL, "extractor returned no content")
	}

	var ext evidence.Extraction
	if err := json.Unmarshal([]byte(text), &ext); err != nil {
		return nil, evidence.Errorf(evidence.EINTERNAL, "decode extraction: %v", err)
	}
	return &ext, nil
}
