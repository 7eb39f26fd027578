package notifier

import (
	"fmt"
	"html"
	"strings"

	"pubwatch/internal/domain/entity"
)

// Subject returns the notification subject line for a publication.
func Subject(pub *entity.Publication) string {
	return fmt.Sprintf("New Publication: %s!", pub.Title)
}

// BuildHTMLBody renders the notification body for one enriched
// publication. The body always uses that record's own review artifacts;
// absent artifacts render as an explicit note instead of leaking a
// neighbouring record's text.
//
// Title and URL are plain values and get escaped. Summary and
// suggestion come back from the model as display-ready text (the
// suggestion prompt explicitly requests HTML) and are embedded as-is.
func BuildHTMLBody(ep *entity.EnrichedPublication) string {
	pub := ep.Publication

	summary := ep.Review.Summary
	if summary == "" {
		summary = "<em>No summary could be generated for this publication.</em>"
	}
	suggestion := ep.Review.Suggestion
	if suggestion == "" {
		suggestion = "<em>No suggestions could be generated for this publication.</em>"
	}

	link := html.EscapeString(pub.DocumentURL)
	linkBlock := "<p><em>No document link is available for this publication.</em></p>"
	if pub.DocumentURL != "" {
		linkBlock = fmt.Sprintf("<p><strong>Link:</strong> <a href='%s'>%s</a></p>", link, link)
	}

	var sb strings.Builder
	sb.WriteString("<html><body>")
	sb.WriteString("<p>Hello there,</p>")
	sb.WriteString(fmt.Sprintf("<p><strong>Joseph published something new:</strong> %s</p>",
		html.EscapeString(pub.Title)))
	sb.WriteString(fmt.Sprintf("<p><strong>Here is a Summary (written for a five-year-old):</strong><br>%s</p>",
		summary))
	sb.WriteString(linkBlock)
	sb.WriteString(fmt.Sprintf("<p><strong>Here is an email draft to Joseph, with some suggestions for improvement:</strong><br>%s</p>",
		suggestion))
	sb.WriteString("</body></html>")
	return sb.String()
}
