package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/briefing/internal/core/domain"
	"github.com/custodia-labs/briefing/internal/core/ports/driving"
)

var (
	pdfFindJSON          bool
	pdfFindCaseSensitive bool
)

var pdfCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Search and read PDF documents",
	Long: `Search the text of a PDF document and print its pages.

Text is extracted with poppler's pdftotext, which must be installed.`,
}

var pdfFindCmd = &cobra.Command{
	Use:   "find [file] [query]",
	Short: "List the pages containing some text",
	Args:  cobra.ExactArgs(2),
	RunE:  runPDFFind,
}

var pdfPageCmd = &cobra.Command{
	Use:   "page [file] [number]",
	Short: "Print the text of one page",
	Args:  cobra.ExactArgs(2),
	RunE:  runPDFPage,
}

func init() {
	pdfFindCmd.Flags().BoolVar(&pdfFindJSON, "json", false, "output matches as JSON")
	pdfFindCmd.Flags().BoolVar(&pdfFindCaseSensitive, "case-sensitive", false, "match letter case exactly")
	pdfCmd.AddCommand(pdfFindCmd)
	pdfCmd.AddCommand(pdfPageCmd)
	rootCmd.AddCommand(pdfCmd)
}

func runPDFFind(cmd *cobra.Command, args []string) error {
	if pdfOpener == nil {
		return errors.New("pdf search not configured")
	}

	doc, err := pdfOpener(cmd.Context(), args[0], driving.PDFOpenOptions{CaseSensitive: pdfFindCaseSensitive})
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}
	defer doc.Close()

	matches, err := doc.Find(cmd.Context(), args[1])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if pdfFindJSON {
		data, err := json.MarshalIndent(matches, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal matches: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	return outputPageMatches(cmd, matches)
}

func outputPageMatches(cmd *cobra.Command, matches []domain.PageMatch) error {
	if len(matches) == 0 {
		cmd.Println("No matches found.")
		return nil
	}

	for _, m := range matches {
		cmd.Printf("  Page %d\n", m.Page)
		if m.Snippet != "" {
			cmd.Printf("      %s\n", m.Snippet)
		}
	}
	cmd.Printf("\n%d page(s) found.\n", len(matches))
	return nil
}

func runPDFPage(cmd *cobra.Command, args []string) error {
	if pdfOpener == nil {
		return errors.New("pdf search not configured")
	}

	page, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: page must be a number: %q", domain.ErrInvalidInput, args[1])
	}

	doc, err := pdfOpener(cmd.Context(), args[0], driving.PDFOpenOptions{})
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}
	defer doc.Close()

	text, err := doc.PageText(page)
	if err != nil {
		return fmt.Errorf("page %d of %d: %w", page, doc.PageCount(), err)
	}

	cmd.Print(text)
	return nil
}
