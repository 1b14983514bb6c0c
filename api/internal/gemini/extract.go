package gemini

import "errors"

// Each link of candidates[0].content.parts[0].text has its own failure.
var (
	ErrNoCandidates = errors.New("gemini: response has no candidates")
	ErrNoContent    = errors.New("gemini: first candidate has no content")
	ErrNoParts      = errors.New("gemini: candidate content has no parts")
	ErrEmptyText    = errors.New("gemini: first part has no text")
)

// Extract returns the text of the first part of the first candidate.
func Extract(resp *GenerateResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrNoCandidates
	}
	c := resp.Candidates[0]
	if c.Content == nil {
		return "", ErrNoContent
	}
	if len(c.Content.Parts) == 0 {
		return "", ErrNoParts
	}
	if c.Content.Parts[0].Text == "" {
		return "", ErrEmptyText
	}
	return c.Content.Parts[0].Text, nil
}
