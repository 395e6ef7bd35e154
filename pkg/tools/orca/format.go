package orca

import (
	"fmt"
	"strings"

	"github.com/justinmccuistion/orca-ai-mcp/pkg/hunt"
)

// formatResult renders a search result as readable text, one block per
// matched document.
func formatResult(result *hunt.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Hunt results for %q:\n\n", result.Query)

	if len(result.HuntDocuments) == 0 {
		sb.WriteString("No matches found.\n")
		return sb.String()
	}

	for i, doc := range result.HuntDocuments {
		fmt.Fprintf(&sb, "Match #%d:\n", i+1)
		fmt.Fprintf(&sb, "Name: %s\n", doc.PrimaryName)
		if len(doc.Names) > 0 {
			fmt.Fprintf(&sb, "Also known as: %s\n", strings.Join(doc.Names, ", "))
		}
		fmt.Fprintf(&sb, "ID: %s\n", doc.ID)
		fmt.Fprintf(&sb, "Dataset: %s\n", datasetLine(doc.Dataset, doc.DatasetID))
		if len(doc.Values) > 0 {
			fmt.Fprintf(&sb, "Values: %s\n", strings.Join(doc.Values, ", "))
		}
		if doc.RawData != "" {
			fmt.Fprintf(&sb, "Details: %s\n", doc.RawData)
		}
		if doc.TabularData != nil && len(doc.TabularData.Headers) > 0 {
			writeTable(&sb, doc.TabularData)
		}
		sb.WriteString("----------------------------------------\n")
	}

	if result.NextToken != "" {
		fmt.Fprintf(&sb, "\nMore results available. Call again with nextToken %q.\n", result.NextToken)
	}
	return sb.String()
}

func datasetLine(ds hunt.Dataset, datasetID string) string {
	parts := []string{}
	if ds.ExactListName != "" {
		parts = append(parts, ds.ExactListName)
	} else if datasetID != "" {
		parts = append(parts, datasetID)
	}
	if ds.Section != "" {
		parts = append(parts, "section "+ds.Section)
	}
	if ds.ImplementingOrganization != "" {
		parts = append(parts, ds.ImplementingOrganization)
	}
	if len(ds.Authorities) > 0 {
		parts = append(parts, "authorities: "+strings.Join(ds.Authorities, ", "))
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, " | ")
}

func writeTable(sb *strings.Builder, table *hunt.TabularData) {
	sb.WriteString("Table:\n")
	fmt.Fprintf(sb, "  %s\n", strings.Join(table.Headers, " | "))
	for _, row := range table.Fields {
		fmt.Fprintf(sb, "  %s\n", strings.Join(row, " | "))
	}
}
