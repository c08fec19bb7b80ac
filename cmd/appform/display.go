package main

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/jobkit/appform/pkg/schema"
)

var textPolicy = bluemonday.StrictPolicy()

// sanitize strips markup from backend-provided rich text so it can be printed
// to a terminal.
func sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

// printListing writes the job header: title, role facts, compensation, and
// the sanitized description.
func printListing(w io.Writer, listing schema.JobListing) {
	fmt.Fprintf(w, "%s\n%s\n\n", listing.JobTitle, strings.Repeat("=", len(listing.JobTitle)))

	if listing.Role != "" {
		fmt.Fprintf(w, "Role: %s\n", listing.Role)
	}
	if listing.EmploymentType != "" {
		fmt.Fprintf(w, "Employment: %s\n", listing.EmploymentType)
	}
	if loc := listing.Location; loc != nil {
		fmt.Fprintf(w, "Location: %s\n", formatLocation(*loc))
	}
	if exp := listing.ExperienceRequired; exp != nil && exp.Max > 0 {
		fmt.Fprintf(w, "Experience: %d-%d %s\n", exp.Min, exp.Max, exp.Unit)
	}
	if salary := listing.Salary; salary != nil && salary.Max > 0 {
		fmt.Fprintf(w, "Salary: %s\n", formatSalary(*salary))
	}
	if len(listing.Qualifications) > 0 {
		fmt.Fprintln(w, "Qualifications:")
		for _, q := range listing.Qualifications {
			fmt.Fprintf(w, "  - %s\n", sanitize(q))
		}
	}
	if description := sanitize(listing.JobDescription); description != "" {
		fmt.Fprintf(w, "\n%s\n", description)
	}
	if media := listing.SortedMedia(); len(media) > 0 {
		fmt.Fprintln(w, "\nAttachments:")
		for _, m := range media {
			caption := m.Caption
			if caption == "" {
				caption = m.Filename
			}
			fmt.Fprintf(w, "  - %s (%s)\n", caption, m.URL)
		}
	}
	fmt.Fprintln(w)
}

func formatLocation(loc schema.Location) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{loc.City, loc.State, loc.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	out := strings.Join(parts, ", ")
	if loc.IsRemote {
		if out == "" {
			return "Remote"
		}
		out += " (remote friendly)"
	}
	return out
}

func formatSalary(salary schema.Salary) string {
	out := fmt.Sprintf("%d-%d %s", salary.Min, salary.Max, salary.Currency)
	if salary.Period != "" {
		out += " per " + salary.Period
	}
	if salary.IsNegotiable {
		out += " (negotiable)"
	}
	return out
}
