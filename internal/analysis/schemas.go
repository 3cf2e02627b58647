package analysis

import "veracity/internal/schema"

// Report shapes are data, not code: each analysis flow pairs a prompt
// template with one of these descriptors, so variant shapes (flat 0-100
// score vs. multi-aspect 1-5 rating) are configuration, not code paths.

var articleVerdicts = []string{"Likely Real", "Likely Fake", "Uncertain"}

var mediaVerdicts = []string{"Likely Authentic", "Potential AI/Manipulation", "Uncertain"}

var articleSchema = schema.Schema{
	"overallScore": {Type: schema.Number, Required: true},
	"verdict":      {Type: schema.String, Required: true, Allowed: articleVerdicts},
	"summary":      {Type: schema.String, Required: true},
	"reasoning":    {Type: schema.String, Required: true},
	"sources":      {Type: schema.StringArray},
}

var deepArticleSchema = schema.Schema{
	"credibilityRating": {Type: schema.Number, Required: true},
	"verdict":           {Type: schema.String, Required: true, Allowed: articleVerdicts},
	"summary":           {Type: schema.String, Required: true},
	"aspects": {
		Type:     schema.ObjectArray,
		Required: true,
		Fields: schema.Schema{
			"aspect":     {Type: schema.String, Required: true},
			"rating":     {Type: schema.Number, Required: true},
			"commentary": {Type: schema.String, Required: true},
		},
	},
	"sources": {Type: schema.StringArray},
}

var imageSchema = schema.Schema{
	"authenticityScore": {Type: schema.Number, Required: true},
	"verdict":           {Type: schema.String, Required: true, Allowed: mediaVerdicts},
	"summary":           {Type: schema.String, Required: true},
	"forensics":         {Type: schema.String, Required: true},
	"detectedText":      {Type: schema.String},
}

var audioSchema = schema.Schema{
	"authenticityScore": {Type: schema.Number, Required: true},
	"verdict":           {Type: schema.String, Required: true, Allowed: mediaVerdicts},
	"summary":           {Type: schema.String, Required: true},
	"forensics":         {Type: schema.String, Required: true},
	"transcript":        {Type: schema.String},
}

// Video shares the audio shape.
var videoSchema = audioSchema
