// Package schemas embeds the JSON Schemas for rule files, user input and recommendation responses.
package schemas

import "embed"

// Schema file names.
const (
	RulesSchema           = "rules.schema.json"
	UserInputSchema       = "user_input.schema.json"
	RecommendationsSchema = "recommendations.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the contents of an embedded schema file.
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}

// MustRead returns the contents of an embedded schema file, panicking if it is missing.
func MustRead(name string) string {
	data, err := Read(name)
	if err != nil {
		panic("schema not embedded: " + name)
	}
	return string(data)
}
