package report

import (
	"encoding/json"
	"encoding/xml"
)

type responseBuilder struct{}

// NewResponseBuilder creates a builder for rendering score reports.
func NewResponseBuilder() *responseBuilder { return &responseBuilder{} }

// BuildJSON serializes a report to indented JSON.
func (rb *responseBuilder) BuildJSON(r *ScoreReport) []byte {
	b, _ := json.MarshalIndent(r, "", "  ")
	return b
}

// BuildXML serializes a report to XML with a document header.
func (rb *responseBuilder) BuildXML(r *ScoreReport) []byte {
	b, _ := xml.MarshalIndent(r, "", "  ")
	return append([]byte(xml.Header), b...)
}
