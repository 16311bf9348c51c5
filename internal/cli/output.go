package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Identity:
		fmt.Printf("Welcome, %s\n", v.DisplayName())
		if v.Username != "" {
			fmt.Printf("  Username: %s\n", v.Username)
		}
		fmt.Printf("  Email:    %s\n", v.Email)
	case Document:
		fmt.Printf("Document: %s\n", v.Name)
		fmt.Printf("  ID:      %s\n", v.ID)
		fmt.Printf("  Owner:   %s\n", v.OwnerEmail)
		fmt.Printf("  Updated: %s\n", v.UpdatedAt)
	case []Document:
		if len(v) == 0 {
			fmt.Println("No documents.")
			return
		}
		for _, doc := range v {
			fmt.Printf("%s  %s (updated %s)\n", doc.ID, doc.Name, doc.UpdatedAt)
		}
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}
