package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/zxrys/weak-accept/internal/reviews"
)

// Truncation lengths for the list view, in characters.
const (
	AuthorsMaxLen  = 80
	AbstractMaxLen = 150
)

// noInterest is shown when a paper has no interest tag.
const noInterest = "N/A"

// output renders command results as text, or as JSON with --json.
type output struct {
	w        io.Writer
	jsonMode bool
}

// JSON writes a value as indented JSON.
func (o *output) JSON(v any) error {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// truncateString shortens s to maxLen characters, appending "..." if it was
// cut. Characters are counted as runes so multi-byte text is never split.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}

func interestOrNA(p reviews.Paper) string {
	if p.Interest == nil {
		return noInterest
	}
	return *p.Interest
}

// printPaperList prints the list view.
func printPaperList(w io.Writer, papers []reviews.Paper) {
	if len(papers) == 0 {
		fmt.Fprintln(w, "No papers found")
		return
	}

	fmt.Fprintf(w, "Found %d papers:\n\n", len(papers))
	for i, p := range papers {
		fmt.Fprintf(w, "%d. %s\n", i+1, p.Title)
		fmt.Fprintf(w, "   Paper ID: %s\n", p.PaperKey)
		fmt.Fprintf(w, "   Categories: %s\n", p.Categories)
		fmt.Fprintf(w, "   Authors: %s\n", truncateString(p.Authors, AuthorsMaxLen))
		fmt.Fprintf(w, "   Abstract: %s\n", truncateString(p.Abstract, AbstractMaxLen))
		fmt.Fprintf(w, "   Submitted: %s\n", p.FirstSubmittedDate)
		fmt.Fprintf(w, "   Announced: %s\n", p.FirstAnnouncedDate)
		fmt.Fprintf(w, "   Interest: %s\n", interestOrNA(p))
		fmt.Fprintln(w)
	}
}

// printPaperDetail prints a single paper with its comments, if any.
func printPaperDetail(w io.Writer, p *reviews.Paper) {
	fmt.Fprintf(w, "Title: %s\n", p.Title)
	fmt.Fprintf(w, "Paper ID: %s\n", p.PaperKey)
	fmt.Fprintf(w, "Categories: %s\n", p.Categories)
	fmt.Fprintf(w, "Authors: %s\n", p.Authors)
	fmt.Fprintf(w, "Submitted: %s\n", p.FirstSubmittedDate)
	fmt.Fprintf(w, "Announced: %s\n", p.FirstAnnouncedDate)
	fmt.Fprintf(w, "Interest: %s\n", interestOrNA(*p))
	fmt.Fprintf(w, "\nAbstract:\n%s\n", p.Abstract)

	if len(p.Comments) == 0 {
		return
	}
	fmt.Fprintf(w, "\nComments (%d):\n", len(p.Comments))
	for _, c := range p.Comments {
		printComment(w, c)
	}
}

// printComments prints the comment list view.
func printComments(w io.Writer, comments []reviews.Comment) {
	if len(comments) == 0 {
		fmt.Fprintln(w, "No comments")
		return
	}

	fmt.Fprintf(w, "%d comments:\n\n", len(comments))
	for _, c := range comments {
		printComment(w, c)
		fmt.Fprintln(w)
	}
}

func printComment(w io.Writer, c reviews.Comment) {
	fmt.Fprintf(w, "- %s (%s):\n", c.SourceName, c.CreatedAt)
	fmt.Fprintf(w, "  %s\n", c.Content)
}

// printCommentCreated echoes the comment exactly as the server stored it.
func printCommentCreated(w io.Writer, c *reviews.Comment) {
	fmt.Fprintln(w, "Comment added!")
	fmt.Fprintf(w, "Comment ID: %s\n", c.ID)
	fmt.Fprintf(w, "Author: %s\n", c.SourceName)
	fmt.Fprintf(w, "Content: %s\n", c.Content)
	fmt.Fprintf(w, "Time: %s\n", c.CreatedAt)
}
