package resumeapi

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

const ComparePath = "/compare/"

// Comparison modes understood by the backend.
const (
	CompareWord    = "word"
	CompareSkill   = "skill"
	CompareOverall = "overall"
)

// Backend defaults mirrored on the client so a reset always lands on the
// documented values.
const (
	DefaultMaxPDFPages  = 40
	DefaultTopNKeywords = 10
)

// ResumeFile is one uploadable document.
type ResumeFile struct {
	Name    string
	Size    int64
	Content []byte
}

// LoadFile reads a document from disk into a ResumeFile.
func LoadFile(path string) (*ResumeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading resume file: %w", err)
	}

	return &ResumeFile{
		Name:    filepath.Base(path),
		Size:    int64(len(data)),
		Content: data,
	}, nil
}

type jdKind int

const (
	jdUnset jdKind = iota
	jdText
	jdFile
)

// JobDescription is a tagged variant: the source is either pasted text or a
// single file, never both. The zero value means "not provided yet".
type JobDescription struct {
	kind jdKind
	text string
	file *ResumeFile
}

func JDFromText(text string) JobDescription {
	return JobDescription{kind: jdText, text: text}
}

func JDFromFile(file *ResumeFile) JobDescription {
	return JobDescription{kind: jdFile, file: file}
}

func (jd JobDescription) IsText() bool { return jd.kind == jdText }

func (jd JobDescription) IsFile() bool { return jd.kind == jdFile }

func (jd JobDescription) Text() string { return jd.text }

func (jd JobDescription) File() *ResumeFile { return jd.file }

// CompareRequest holds everything needed for one comparison submission.
// TopNKeywords nil means "no limit": the field is left out of the payload so
// the backend applies its own default.
type CompareRequest struct {
	Resumes      []*ResumeFile
	JD           JobDescription
	Type         string
	ReturnText   bool
	MaxPDFPages  int
	TopNKeywords *int
}

// NewCompareRequest returns a request populated with the documented defaults.
func NewCompareRequest() *CompareRequest {
	topN := DefaultTopNKeywords

	return &CompareRequest{
		Type:         CompareOverall,
		ReturnText:   true,
		MaxPDFPages:  DefaultMaxPDFPages,
		TopNKeywords: &topN,
	}
}

// Validate checks the request before any network call and returns the first
// violated rule as a human-readable error.
func (r *CompareRequest) Validate() error {
	if len(r.Resumes) == 0 {
		return errors.New("add at least one resume")
	}

	switch r.JD.kind {
	case jdText:
		if strings.TrimSpace(r.JD.text) == "" {
			return errors.New("job description text is empty")
		}
	case jdFile:
		if r.JD.file == nil {
			return errors.New("job description file is required")
		}
	default:
		return errors.New("job description is required")
	}

	if r.MaxPDFPages < 1 {
		return errors.New("max pdf pages must be a positive integer")
	}

	if r.TopNKeywords != nil && *r.TopNKeywords < 0 {
		return errors.New("top n keywords must be a non-negative integer")
	}

	return nil
}

// payload serializes the request into a multipart body. Resumes go under a
// repeated "resumes" field; the job description becomes either a "jd_file"
// part or a "jd_text" field, never both.
func (r *CompareRequest) payload() (body *bytes.Buffer, contentType string, err error) {
	buf, w := writeMultipart()

	for _, f := range r.Resumes {
		part, err := w.CreateFormFile("resumes", f.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, "", err
		}
	}

	switch r.JD.kind {
	case jdFile:
		part, err := w.CreateFormFile("jd_file", r.JD.file.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(r.JD.file.Content); err != nil {
			return nil, "", err
		}
	case jdText:
		if err := w.WriteField("jd_text", r.JD.text); err != nil {
			return nil, "", err
		}
	}

	fields := map[string]string{
		"comparison_type": r.Type,
		"return_text":     strconv.FormatBool(r.ReturnText),
		"max_pdf_pages":   strconv.Itoa(r.MaxPDFPages),
	}
	if r.TopNKeywords != nil {
		fields["top_n_keywords"] = strconv.Itoa(*r.TopNKeywords)
	}

	for key, val := range fields {
		if err := w.WriteField(key, val); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return buf, w.FormDataContentType(), nil
}

// ResumeMatch is the backend's verdict for a single resume. A per-file error
// marks only this entry as failed; the rest of the results stay valid.
type ResumeMatch struct {
	FileName          string   `json:"fileName"`
	MatchPercentage   *float64 `json:"match_percentage"`
	MatchedKeywords   []string `json:"matched_keywords"`
	UnmatchedKeywords []string `json:"unmatched_keywords"`
	ResumeText        string   `json:"resume_text"`
	Error             string   `json:"error"`
}

func (m *ResumeMatch) Failed() bool { return m.Error != "" }

// BestMatch identifies the highest scoring resume of a run.
type BestMatch struct {
	FileName        string  `mapstructure:"fileName"`
	MatchPercentage float64 `mapstructure:"match_percentage"`
}

// Summary holds the aggregate stats of a comparison run.
type Summary struct {
	Count             int        `mapstructure:"count"`
	AverageMatch      *float64   `mapstructure:"average_match"`
	BestMatch         *BestMatch `mapstructure:"best_match"`
	ComparisonType    string     `mapstructure:"comparison_type"`
	ProcessedMs       int        `mapstructure:"processed_ms"`
	TruncatedPDFPages int        `mapstructure:"truncated_pdf_pages"`
}

// CompareResponse is the decoded backend response. The summary arrives as a
// loose JSON object and is decoded separately into Stats.
type CompareResponse struct {
	JDText     string         `json:"jd_text"`
	Results    []*ResumeMatch `json:"results"`
	RawSummary map[string]any `json:"summary"`

	Stats *Summary `json:"-"`
}

func (r *CompareResponse) Len() int { return len(r.Results) }

// Compare validates and submits the request, returning the decoded response.
func (c *Client) Compare(req *CompareRequest) (*CompareResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body, contentType, err := req.payload()
	if err != nil {
		return nil, fmt.Errorf("building multipart payload: %w", err)
	}

	url := fmt.Sprintf("%s%s", c.APIURL, ComparePath)

	var resp CompareResponse
	if err := c.postMultipart(url, body, contentType, &resp); err != nil {
		return nil, err
	}

	stats, err := decodeSummary(resp.RawSummary)
	if err != nil {
		return nil, fmt.Errorf("decoding summary: %w", err)
	}
	resp.Stats = stats

	return &resp, nil
}

// decodeSummary converts the loose summary map into a typed Summary. JSON
// numbers come in as float64, hence the weakly typed decode.
func decodeSummary(raw map[string]any) (*Summary, error) {
	summary := &Summary{}
	if raw == nil {
		return summary, nil
	}

	cfg := &mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           summary,
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, err
	}

	return summary, nil
}
